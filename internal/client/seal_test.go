package client

import (
	"encoding/json"
	"testing"

	"github.com/mdouchement/paperflow/pkg/libpf"
	"github.com/stretchr/testify/assert"
)

func TestSealRoundTrip(t *testing.T) {
	payload, err := json.Marshal(exportPayload{
		Config: Config{Endpoint: "https://papers.conf.lan", Database: "paperflow.db"},
		Session: libpf.Session{
			Email:       "george.abitbol@nowhere.lan",
			Role:        libpf.RoleAuthor,
			AccessToken: "token42",
			TokenType:   "Bearer",
		},
	})
	assert.NoError(t, err)

	ciphertext, err := seal(payload, []byte("passphrase42"))
	assert.NoError(t, err)
	assert.NotContains(t, string(ciphertext), "token42")

	plaintext, err := unseal(ciphertext, []byte("passphrase42"))
	assert.NoError(t, err)
	assert.Equal(t, payload, plaintext)

	var export exportPayload
	assert.NoError(t, json.Unmarshal(plaintext, &export))
	assert.True(t, export.Session.Defined())
}

func TestSealWrongPassphrase(t *testing.T) {
	ciphertext, err := seal([]byte(`{"session":{}}`), []byte("passphrase42"))
	assert.NoError(t, err)

	_, err = unseal(ciphertext, []byte("nope"))
	assert.Error(t, err)
}

func TestUnsealTruncated(t *testing.T) {
	_, err := unseal([]byte("too short"), []byte("passphrase42"))
	assert.Error(t, err)
}

func TestSealUniqueCiphertexts(t *testing.T) {
	a, err := seal([]byte("payload"), []byte("passphrase42"))
	assert.NoError(t, err)
	b, err := seal([]byte("payload"), []byte("passphrase42"))
	assert.NoError(t, err)

	// Fresh salt and nonce every time.
	assert.NotEqual(t, a, b)
}
