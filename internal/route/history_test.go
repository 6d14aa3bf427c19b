package route

import (
	"testing"

	"github.com/johnys190/movierama/internal/session"
	"github.com/stretchr/testify/assert"
)

var _ session.Navigator = (*History)(nil)

func TestHistory(t *testing.T) {
	h := NewHistory("/")
	h.Navigate("login")
	h.Navigate("/users/alice/")

	assert.Equal(t, "/users/alice", h.Current())
	assert.True(t, h.Back())
	assert.Equal(t, "/login", h.Current())
	assert.True(t, h.Back())
	assert.Equal(t, "/", h.Current())
	assert.False(t, h.Back(), "no further history")
}

func TestHistory_ZeroValue(t *testing.T) {
	var h History
	assert.Equal(t, "/", h.Current())

	h.Navigate("/signup")
	assert.Equal(t, []string{"/signup"}, h.Entries())
}

func TestHistory_Replace(t *testing.T) {
	h := NewHistory("/")
	h.Navigate("/movies/new")
	h.Replace("/login")

	assert.Equal(t, "/login", h.Current())
	assert.Equal(t, []string{"/", "/login"}, h.Entries())

	var empty History
	empty.Replace("signup")
	assert.Equal(t, "/signup", empty.Current())
}
