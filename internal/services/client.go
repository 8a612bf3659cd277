package services

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// NewHTTPClient returns the client used for backend calls.
//
// A non-empty token is sent as a bearer token on every request. A zero timeout means requests
// only end when the server answers or the request context is cancelled.
func NewHTTPClient(token string, timeout time.Duration) *http.Client {
	var client *http.Client
	if token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
		client = oauth2.NewClient(context.Background(), src)
	} else {
		client = &http.Client{}
	}
	client.Timeout = timeout
	return client
}
