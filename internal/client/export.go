package client

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/chzyer/readline"
	sargon2 "github.com/mdouchement/simple-argon2"
	"github.com/mdouchement/paperflow/pkg/libpf"
	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const saltKeyLength = 16

// exportPayload is what gets sealed: enough to move the session to another machine.
type exportPayload struct {
	Config  Config        `json:"config"`
	Session libpf.Session `json:"session"`
}

// Export writes a passphrase-sealed copy of the configuration and the current
// session in the current directory.
func Export() error {
	cfg, store, _, err := open()
	if err != nil {
		return err
	}
	defer store.Close()

	session := store.Current()
	if !session.Defined() {
		return errors.New("could not export because no session is defined")
	}

	payload, err := json.Marshal(exportPayload{Config: cfg, Session: session})
	if err != nil {
		return errors.Wrap(err, "could not serialize credentials")
	}

	passphrase, err := readline.Password("passphrase: ")
	if err != nil {
		return errors.Wrap(err, "could not read passphrase from stdin")
	}

	ciphertext, err := seal(payload, passphrase)
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("credentials_%s.pfc", time.Now().Format("20060102150405"))
	fmt.Println("Storing sealed credentials as " + filename)

	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", filename)
	}
	defer f.Close()

	if _, err = f.Write(ciphertext); err != nil {
		return errors.Wrap(err, "could not store credentials")
	}

	return errors.Wrap(f.Sync(), "could not store credentials")
}

// seal encrypts the payload with a key derived from the passphrase.
// Layout: salt | nonce | ciphertext.
func seal(payload, passphrase []byte) ([]byte, error) {
	salt, err := sargon2.GenerateRandomBytes(saltKeyLength)
	if err != nil {
		return nil, errors.Wrap(err, "could not generate salt for credentials")
	}
	hash := argon2.IDKey(passphrase, salt, 3, 64<<10, 2, 32)

	aead, err := chacha20poly1305.NewX(hash)
	if err != nil {
		return nil, errors.Wrap(err, "could not create AEAD")
	}
	nonce, err := sargon2.GenerateRandomBytes(uint32(aead.NonceSize()))
	if err != nil {
		return nil, errors.Wrap(err, "could not generate nonce for credentials")
	}

	ciphertext := aead.Seal(nil, nonce, payload, nil)
	ciphertext = append(nonce, ciphertext...)
	return append(salt, ciphertext...), nil
}

// unseal decrypts a sealed export.
func unseal(ciphertext, passphrase []byte) ([]byte, error) {
	if len(ciphertext) <= saltKeyLength+chacha20poly1305.NonceSizeX {
		return nil, errors.New("sealed credentials are truncated")
	}

	salt := ciphertext[:saltKeyLength]
	ciphertext = ciphertext[saltKeyLength:]
	hash := argon2.IDKey(passphrase, salt, 3, 64<<10, 2, 32)

	aead, err := chacha20poly1305.NewX(hash)
	if err != nil {
		return nil, errors.Wrap(err, "could not create AEAD")
	}

	nonce := ciphertext[:aead.NonceSize()]
	ciphertext = ciphertext[aead.NonceSize():]

	payload, err := aead.Open(nil, nonce, ciphertext, nil)
	return payload, errors.Wrap(err, "could not decrypt credentials")
}
