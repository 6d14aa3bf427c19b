// ABOUTME: Identity endpoints of the Movierama API
// ABOUTME: Current user lookup, sign-in, sign-up and availability checks

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/johnys190/movierama/internal/constants"
)

// User is the authenticated principal as reported by the identity provider.
type User struct {
	ID       string `json:"sub"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// SignInRequest is the body of POST /signin
type SignInRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

// AuthResponse carries the issued credential
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

// SignUpRequest is the body of POST /signup
type SignUpRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// APIResponse is the generic acknowledgement returned by write endpoints
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type availability struct {
	Available bool `json:"available"`
}

// CurrentUser calls GET {auth}/oauth2/userInfo with the stored credential.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, c.authURL+constants.CurrentUserURL, nil, &u); err != nil {
		return nil, err
	}
	if u.Username == "" {
		return nil, fmt.Errorf("invalid response from identity provider: missing username")
	}
	return &u, nil
}

// SignIn calls POST /signin
func (c *Client) SignIn(ctx context.Context, in SignInRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL+constants.AuthSignInURL, in, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, fmt.Errorf("invalid response from backend: missing access token")
	}
	return &out, nil
}

// SignUp calls POST /signup
func (c *Client) SignUp(ctx context.Context, in SignUpRequest) (*APIResponse, error) {
	var out APIResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL+constants.AuthSignUpURL, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckUsernameAvailability reports whether a username is free.
func (c *Client) CheckUsernameAvailability(ctx context.Context, username string) (bool, error) {
	return c.available(ctx, constants.CheckUsernameAvailabilityURL+url.QueryEscape(username))
}

// CheckEmailAvailability reports whether an email address is free.
func (c *Client) CheckEmailAvailability(ctx context.Context, email string) (bool, error) {
	return c.available(ctx, constants.CheckEmailAvailabilityURL+url.QueryEscape(email))
}

func (c *Client) available(ctx context.Context, path string) (bool, error) {
	var out availability
	if err := c.do(ctx, http.MethodGet, c.baseURL+path, nil, &out); err != nil {
		return false, err
	}
	return out.Available, nil
}
