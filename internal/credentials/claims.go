// ABOUTME: Reads claims from a stored access token without verifying it
// ABOUTME: Used to show who is logged in and when the token expires

package credentials

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of token claims the client displays.
type Claims struct {
	Subject   string
	Username  string
	ExpiresAt time.Time
}

// Expired reports whether the token had expired at now. Tokens without an
// exp claim never expire.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// ParseClaims decodes the payload of a JWT. The signature is NOT checked;
// the backend is the authority, this is for display only.
func ParseClaims(token string) (*Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return nil, fmt.Errorf("malformed access token: %w", err)
	}

	c := &Claims{}
	if sub, err := mc.GetSubject(); err == nil {
		c.Subject = sub
	}
	// Cognito access tokens carry "username", ID tokens "cognito:username"
	for _, k := range []string{"username", "cognito:username", "preferred_username"} {
		if v, ok := mc[k].(string); ok && v != "" {
			c.Username = v
			break
		}
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}
