package libpf

import (
	"io"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
)

// A Status is the review state of a paper.
type Status string

const (
	// StatusPending means no reviewer has been assigned yet.
	StatusPending Status = "pending"
	// StatusUnderReview means a reviewer is assigned but has not decided.
	StatusUnderReview Status = "under_review"
	// StatusAccepted means the paper has been accepted.
	StatusAccepted Status = "accepted"
	// StatusRejected means the paper has been rejected.
	StatusRejected Status = "rejected"
	// StatusRevise means the reviewer asked for a new version.
	StatusRevise Status = "revise"
)

// A Decision is the outcome a reviewer submits for an assigned paper.
type Decision string

const (
	// DecisionAccept accepts the paper.
	DecisionAccept Decision = "accept"
	// DecisionReject rejects the paper.
	DecisionReject Decision = "reject"
	// DecisionRevise requests a revised version.
	DecisionRevise Decision = "revise"
)

// ParseDecision converts the given string into a Decision.
func ParseDecision(s string) (Decision, error) {
	decision := Decision(s)
	switch decision {
	case DecisionAccept, DecisionReject, DecisionRevise:
		return decision, nil
	}
	return "", errors.Errorf("unknown decision: %s", s)
}

// Status returns the paper status resulting from the decision.
func (d Decision) Status() Status {
	switch d {
	case DecisionAccept:
		return StatusAccepted
	case DecisionReject:
		return StatusRejected
	}
	return StatusRevise
}

// A Paper is the portal's representation of a submission.
type Paper struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Abstract         string `json:"abstract"`
	Keywords         string `json:"keywords"`
	Authors          string `json:"authors"`
	Status           Status `json:"status"`
	Version          int    `json:"version"`
	FileURL          string `json:"file_url"`
	UploadedAt       string `json:"uploaded_at"`
	AssignedReviewer string `json:"assigned_reviewer,omitempty"`
}

// UploadedTime parses the upload date of the paper.
// The portal emits both date-only and RFC3339 forms depending on the endpoint.
// A zero time is returned when the field cannot be parsed.
func (p Paper) UploadedTime() time.Time {
	t, err := dateparse.ParseAny(p.UploadedAt)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// A Reviewer is a portal user an admin can assign papers to.
type Reviewer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Expertise string `json:"expertise"`
	Workload  int    `json:"workload"`
}

// A Submission holds everything needed to submit a new paper.
type Submission struct {
	Title    string
	Abstract string
	Keywords string
	Filename string
	File     io.Reader
}
