package client_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mdouchement/paperflow/internal/client"
	"github.com/mdouchement/paperflow/pkg/libpf"
	"github.com/stretchr/testify/assert"
)

// fakePortal is an in-process conference API with a couple of fixed accounts.
// It exists so gateway tests exercise the real HTTP path.
type fakePortal struct {
	engine *echo.Echo
	tokens map[string]account // token -> account
	users  map[string]account // email -> account
}

type account struct {
	email    string
	password string
	role     string
}

func newFakePortal() *fakePortal {
	pt := &fakePortal{
		engine: echo.New(),
		tokens: map[string]account{},
		users: map[string]account{
			"admin@test.com":    {email: "admin@test.com", password: "password42", role: "admin"},
			"reviewer@test.com": {email: "reviewer@test.com", password: "password42", role: "reviewer"},
			"author@test.com":   {email: "author@test.com", password: "password42", role: "author"},
		},
	}

	pt.engine.Use(middleware.Recover())

	pt.engine.POST("/api/users/login_user", func(c echo.Context) error {
		user, ok := pt.users[c.FormValue("username")]
		if c.FormValue("grant_type") != "password" || !ok || user.password != c.FormValue("password") {
			return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Incorrect email or password"})
		}

		token := uuid.Must(uuid.NewV4()).String()
		pt.tokens[token] = user

		return c.JSON(http.StatusOK, echo.Map{
			"email":        user.email,
			"role":         user.role,
			"access_token": token,
			"token_type":   "Bearer",
		})
	})

	pt.engine.POST("/api/users/create_user", func(c echo.Context) error {
		var details struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if err := c.Bind(&details); err != nil || details.Email == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "Invalid payload"})
		}
		if _, ok := pt.users[details.Email]; ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "Email already registered"})
		}

		pt.users[details.Email] = account{email: details.Email, password: details.Password, role: details.Role}
		return c.JSON(http.StatusCreated, echo.Map{"email": details.Email, "role": details.Role})
	})

	restricted := pt.engine.Group("", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if len(header) <= len("Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Not authenticated"})
			}
			user, ok := pt.tokens[header[len("Bearer "):]]
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Could not validate credentials"})
			}
			c.Set("current_user", user)
			return next(c)
		}
	})

	papers := func(c echo.Context) error {
		return c.JSON(http.StatusOK, []echo.Map{
			{"id": "p1", "title": "AI in Education", "status": "pending", "version": 1, "uploaded_at": "2025-08-21"},
		})
	}
	restricted.GET("/api/admins/papers", papers)
	restricted.GET("/api/authors/papers", papers)
	restricted.GET("/api/reviewers/papers", papers)

	restricted.GET("/api/admins/reviewers", func(c echo.Context) error {
		return c.JSON(http.StatusOK, []echo.Map{
			{"id": "r1", "email": "reviewer@test.com", "expertise": "AI"},
		})
	})

	restricted.POST("/api/admins/assign", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"detail": "assigned"})
	})

	restricted.PATCH("/api/reviewers/papers/:id/status", func(c echo.Context) error {
		var patch map[string]string
		if err := c.Bind(&patch); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "Invalid payload"})
		}
		return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id"), "status": patch["status"]})
	})

	return pt
}

// revoke invalidates a token, simulating server-side expiry.
func (pt *fakePortal) revoke(token string) {
	delete(pt.tokens, token)
}

// newGateway wires a store and a gateway against a fake portal instance.
func newGateway(t *testing.T) (*fakePortal, *client.Store, *client.Gateway, func()) {
	t.Helper()

	pt := newFakePortal()
	ts := httptest.NewServer(pt.engine)

	store := newStore(t)
	assert.NoError(t, store.Initialize())

	pf, err := libpf.NewDefaultClient(ts.URL)
	assert.NoError(t, err)

	gateway := client.NewGateway(pf, store)

	return pt, store, gateway, func() {
		store.Close()
		ts.Close()
	}
}
