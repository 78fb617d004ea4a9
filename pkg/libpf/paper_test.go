package libpf_test

import (
	"testing"
	"time"

	"github.com/mdouchement/paperflow/pkg/libpf"
	"github.com/stretchr/testify/assert"
)

func TestParseDecision(t *testing.T) {
	data := []struct {
		input    string
		decision libpf.Decision
		status   libpf.Status
		fails    bool
	}{
		{input: "accept", decision: libpf.DecisionAccept, status: libpf.StatusAccepted},
		{input: "reject", decision: libpf.DecisionReject, status: libpf.StatusRejected},
		{input: "revise", decision: libpf.DecisionRevise, status: libpf.StatusRevise},
		{input: "accepted", fails: true},
		{input: "", fails: true},
	}

	for _, d := range data {
		decision, err := libpf.ParseDecision(d.input)
		if d.fails {
			assert.Error(t, err, d.input)
			continue
		}
		assert.NoError(t, err, d.input)
		assert.Equal(t, d.decision, decision)
		assert.Equal(t, d.status, decision.Status())
	}
}

func TestPaper_UploadedTime(t *testing.T) {
	paper := libpf.Paper{UploadedAt: "2025-08-21"}
	assert.Equal(t, time.Date(2025, 8, 21, 0, 0, 0, 0, time.UTC), paper.UploadedTime())

	paper.UploadedAt = "2025-08-21T14:30:12Z"
	assert.Equal(t, time.Date(2025, 8, 21, 14, 30, 12, 0, time.UTC), paper.UploadedTime())

	paper.UploadedAt = "not a date"
	assert.True(t, paper.UploadedTime().IsZero())

	paper.UploadedAt = ""
	assert.True(t, paper.UploadedTime().IsZero())
}
