package libpf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultTimeout bounds every request performed by the default client.
// The portal has no cancellation story, a hung login must not hang the caller.
const DefaultTimeout = 30 * time.Second

type (
	// A Client defines all interactions that can be performed on a conference portal.
	Client interface {
		// Login exchanges credentials for a session.
		// The session is installed on the client and returned.
		Login(email, password string) (Session, error)
		// Register creates a new account with the given role.
		// It does not log the new account in.
		Register(email, password string, role Role) error
		// Papers returns the papers visible to the current session's role.
		Papers() ([]Paper, error)
		// SubmitPaper uploads a new paper (author role).
		SubmitPaper(submission Submission) (Paper, error)
		// Reviewers returns the reviewers known to the portal (admin role).
		Reviewers() ([]Reviewer, error)
		// AssignReviewer assigns a reviewer to a paper (admin role).
		AssignReviewer(paperID, reviewerID string) error
		// SubmitDecision records a review decision on a paper (reviewer role).
		SubmitDecision(paperID string, decision Decision, comments string) (Paper, error)
		// BearerToken returns the token attached to authenticated requests.
		BearerToken() string
		// SetBearerToken sets the token attached to authenticated requests.
		SetBearerToken(token string)
		// Session returns the session used for authentication.
		Session() Session
		// SetSession sets the session used for authentication.
		// It also uses its access token as the bearer token.
		SetSession(session Session)
	}

	p      map[string]any
	client struct {
		http     *http.Client
		endpoint string
		bearer   string
		session  Session
	}
)

// NewDefaultClient returns a new Client with a timeout-bounded HTTP client.
func NewDefaultClient(endpoint string) (Client, error) {
	return NewClient(&http.Client{Timeout: DefaultTimeout}, endpoint)
}

// NewClient returns a new Client.
func NewClient(c *http.Client, endpoint string) (Client, error) {
	_, err := url.Parse(endpoint)
	return &client{endpoint: endpoint, http: c}, errors.Wrap(err, "could not parse endpoint")
}

func (c *client) Login(email, password string) (Session, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", email) // The portal uses `username' for the email.
	form.Set("password", password)

	req, err := c.request(http.MethodPost, "/api/users/login_user", strings.NewReader(form.Encode()))
	if err != nil {
		return Session{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var session Session
	if err = c.perform(req, &session); err != nil {
		return Session{}, err
	}

	if session.TokenType == "" {
		session.TokenType = DefaultTokenType
	}
	if !session.Defined() {
		return Session{}, errors.New("portal returned an incomplete session")
	}

	c.SetSession(session)
	return session, nil
}

func (c *client) Register(email, password string, role Role) error {
	if !role.Valid() {
		return errors.Errorf("unknown role: %s", role)
	}

	body, err := json.Marshal(p{"email": email, "password": password, "role": role})
	if err != nil {
		return errors.Wrap(err, "could not serialize registration details")
	}

	req, err := c.request(http.MethodPost, "/api/users/create_user", bytes.NewReader(body))
	if err != nil {
		return err
	}

	return c.perform(req, nil)
}

// papersPath returns the role-scoped listing endpoint.
func papersPath(role Role) (string, error) {
	switch role {
	case RoleAdmin:
		return "/api/admins/papers", nil
	case RoleAuthor:
		return "/api/authors/papers", nil
	case RoleReviewer:
		return "/api/reviewers/papers", nil
	}
	return "", errors.New("no role defined, login first")
}

func (c *client) Papers() ([]Paper, error) {
	endpoint, err := papersPath(c.session.Role)
	if err != nil {
		return nil, err
	}

	req, err := c.request(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var papers []Paper
	err = c.perform(req, &papers)
	return papers, err
}

func (c *client) SubmitPaper(submission Submission) (Paper, error) {
	var paper Paper

	buf := new(bytes.Buffer)
	form := multipart.NewWriter(buf)
	part, err := form.CreateFormFile("file", submission.Filename)
	if err != nil {
		return paper, errors.Wrap(err, "could not build upload form")
	}
	if _, err = io.Copy(part, submission.File); err != nil {
		return paper, errors.Wrap(err, "could not read paper file")
	}
	if err = form.Close(); err != nil {
		return paper, errors.Wrap(err, "could not finalize upload form")
	}

	// Metadata travels in the query string, only the file is in the body.
	query := url.Values{}
	query.Set("title", submission.Title)
	query.Set("abstract", submission.Abstract)
	query.Set("keywords", submission.Keywords)

	req, err := c.request(http.MethodPost, "/api/authors/papers", buf)
	if err != nil {
		return paper, err
	}
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Content-Type", form.FormDataContentType())

	err = c.perform(req, &paper)
	return paper, err
}

func (c *client) Reviewers() ([]Reviewer, error) {
	req, err := c.request(http.MethodGet, "/api/admins/reviewers", nil)
	if err != nil {
		return nil, err
	}

	// Some deployments wrap the listing, some don't.
	var payload struct {
		Reviewers []Reviewer `json:"reviewers"`
	}
	res, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "could not read response")
	}

	if err = json.Unmarshal(body, &payload.Reviewers); err == nil {
		return payload.Reviewers, nil
	}
	err = json.Unmarshal(body, &payload)
	return payload.Reviewers, errors.Wrap(err, "could not parse response")
}

func (c *client) AssignReviewer(paperID, reviewerID string) error {
	body, err := json.Marshal(p{"paper_id": paperID, "reviewer_id": reviewerID})
	if err != nil {
		return errors.Wrap(err, "could not serialize assignment")
	}

	req, err := c.request(http.MethodPost, "/api/admins/assign", bytes.NewReader(body))
	if err != nil {
		return err
	}

	return c.perform(req, nil)
}

func (c *client) SubmitDecision(paperID string, decision Decision, comments string) (Paper, error) {
	var paper Paper

	body, err := json.Marshal(p{"status": decision.Status(), "comments": comments})
	if err != nil {
		return paper, errors.Wrap(err, "could not serialize decision")
	}

	req, err := c.request(http.MethodPatch, "/api/reviewers/papers/"+paperID+"/status", bytes.NewReader(body))
	if err != nil {
		return paper, err
	}

	err = c.perform(req, &paper)
	return paper, err
}

func (c *client) BearerToken() string {
	return c.bearer
}

func (c *client) SetBearerToken(token string) {
	c.bearer = token
}

func (c *client) Session() Session {
	return c.session
}

func (c *client) SetSession(session Session) {
	c.session = session
	c.bearer = c.session.AccessToken
}

// request builds a request against the portal endpoint.
func (c *client) request(method, endpoint string, body io.Reader) (*http.Request, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse endpoint")
	}
	u.Path = path.Join(u.Path, endpoint)

	req, err := http.NewRequest(method, u.String(), body)
	if err != nil {
		return nil, errors.Wrap(err, "could not build request")
	}
	req.Close = true
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	if c.bearer != "" {
		req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.bearer))
	}

	return req, nil
}

// do performs the request and converts HTTP-level failures to typed errors.
func (c *client) do(req *http.Request) (*http.Response, error) {
	res, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "could not perform request")
	}

	if res.StatusCode >= 400 {
		defer res.Body.Close()
		return nil, parseAPIError(res.Body, res.StatusCode)
	}

	return res, nil
}

// perform runs the request and decodes the response into v when provided.
func (c *client) perform(req *http.Request, v any) error {
	res, err := c.do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if v == nil {
		return nil
	}

	dec := json.NewDecoder(res.Body)
	return errors.Wrap(dec.Decode(v), "could not parse response")
}
