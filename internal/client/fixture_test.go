package client_test

import (
	"net/http"
	"testing"

	"github.com/appleboy/gofight/v2"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fastjson"
)

// The gateway tests stand or fall with the fake portal, so the fixture
// itself is checked against the portal's wire contract.
func TestFakePortal(t *testing.T) {
	pt := newFakePortal()
	r := gofight.New()

	var token string
	r.POST("/api/users/login_user").
		SetForm(gofight.H{
			"grant_type": "password",
			"username":   "author@test.com",
			"password":   "password42",
		}).
		Run(pt.engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusOK, r.Code)

			payload := r.Body.Bytes()
			assert.Equal(t, "author@test.com", fastjson.GetString(payload, "email"))
			assert.Equal(t, "author", fastjson.GetString(payload, "role"))
			assert.Equal(t, "Bearer", fastjson.GetString(payload, "token_type"))

			token = fastjson.GetString(payload, "access_token")
			assert.NotEmpty(t, token)
		})

	r.POST("/api/users/login_user").
		SetForm(gofight.H{
			"grant_type": "password",
			"username":   "author@test.com",
			"password":   "nope",
		}).
		Run(pt.engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusUnauthorized, r.Code)
			assert.Equal(t, "Incorrect email or password", fastjson.GetString(r.Body.Bytes(), "detail"))
		})

	r.GET("/api/authors/papers").
		Run(pt.engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusUnauthorized, r.Code)
			assert.Equal(t, "Not authenticated", fastjson.GetString(r.Body.Bytes(), "detail"))
		})

	r.GET("/api/authors/papers").
		SetHeader(gofight.H{"Authorization": "Bearer " + token}).
		Run(pt.engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusOK, r.Code)
			assert.Equal(t, "p1", fastjson.GetString(r.Body.Bytes(), "0", "id"))
		})

	pt.revoke(token)
	r.GET("/api/authors/papers").
		SetHeader(gofight.H{"Authorization": "Bearer " + token}).
		Run(pt.engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusUnauthorized, r.Code)
			assert.Equal(t, "Could not validate credentials", fastjson.GetString(r.Body.Bytes(), "detail"))
		})
}
