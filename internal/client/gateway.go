package client

import (
	"io"

	"github.com/mdouchement/paperflow/pkg/libpf"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// A Gateway performs credential exchange with the portal and keeps the
// session store consistent with the outcome. Every authenticated call goes
// through it so token-expiry handling stays uniform: a 401 forces a logout
// and surfaces ErrAuthenticationFailed, never the original response.
// The gateway holds no per-call state; single-flight of login attempts is
// the calling form's job.
type Gateway struct {
	store  *Store
	client libpf.Client
	log    logrus.FieldLogger
}

// NewGateway returns a Gateway wiring the portal client to the session store.
func NewGateway(client libpf.Client, store *Store) *Gateway {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return &Gateway{
		store:  store,
		client: client,
		log:    log,
	}
}

// SetLogger defines the logger used for auth lifecycle events.
func (g *Gateway) SetLogger(log logrus.FieldLogger) {
	g.log = log
}

// Login exchanges credentials for a session and installs it in the store.
// On failure the store is untouched. The role is returned so the caller can
// navigate to the role's landing page.
func (g *Gateway) Login(email, password string) (libpf.Role, error) {
	session, err := g.client.Login(email, password)
	if err != nil {
		return "", err
	}

	if err = g.store.Set(session); err != nil {
		return "", errors.Wrap(err, "could not persist session")
	}

	g.log.WithField("role", session.Role).Info("logged in")
	return session.Role, nil
}

// Logout clears the session locally. The portal has no revocation endpoint,
// no network call happens. It is idempotent.
func (g *Gateway) Logout() error {
	g.client.SetSession(libpf.Session{})
	return g.store.Clear()
}

// Register creates a new account. It does not auto-login: a nil error is the
// distinct "registration succeeded" outcome the caller routes on.
func (g *Gateway) Register(email, password string, role libpf.Role) error {
	return g.client.Register(email, password, role)
}

// Papers lists the papers visible to the current role.
func (g *Gateway) Papers() ([]libpf.Paper, error) {
	g.install()
	papers, err := g.client.Papers()
	return papers, g.intercept(err)
}

// SubmitPaper uploads a new paper.
func (g *Gateway) SubmitPaper(submission libpf.Submission) (libpf.Paper, error) {
	g.install()
	paper, err := g.client.SubmitPaper(submission)
	return paper, g.intercept(err)
}

// Reviewers lists the reviewers known to the portal.
func (g *Gateway) Reviewers() ([]libpf.Reviewer, error) {
	g.install()
	reviewers, err := g.client.Reviewers()
	return reviewers, g.intercept(err)
}

// AssignReviewer assigns a reviewer to a paper.
func (g *Gateway) AssignReviewer(paperID, reviewerID string) error {
	g.install()
	return g.intercept(g.client.AssignReviewer(paperID, reviewerID))
}

// SubmitDecision records a review decision on a paper.
func (g *Gateway) SubmitDecision(paperID string, decision libpf.Decision, comments string) (libpf.Paper, error) {
	g.install()
	paper, err := g.client.SubmitDecision(paperID, decision, comments)
	return paper, g.intercept(err)
}

// install pushes the stored session onto the client before an authenticated call.
func (g *Gateway) install() {
	g.client.SetSession(g.store.Current())
}

// intercept turns the portal's invalid-token signal into a forced logout.
// Callers must not retry, a retried call would fail the same way and loop.
func (g *Gateway) intercept(err error) error {
	if err == nil || !libpf.IsAuthenticationFailure(err) {
		return err
	}

	g.log.Warn("token rejected by the portal, logging out")
	if cerr := g.store.Clear(); cerr != nil {
		g.log.Warnf("could not clear session: %s", cerr)
	}
	g.client.SetSession(libpf.Session{})

	return libpf.ErrAuthenticationFailed
}
