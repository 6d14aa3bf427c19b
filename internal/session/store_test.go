package session

import (
	"sync"
	"testing"

	"github.com/johnys190/movierama/internal/client"
	"github.com/stretchr/testify/assert"
)

func TestStore_InitialPhaseIsBootstrapping(t *testing.T) {
	s := NewStore()
	assert.Equal(t, Bootstrapping, s.Phase())
	assert.Equal(t, State{}, s.State())
}

func TestStore_PhaseTransitions(t *testing.T) {
	s := NewStore()
	alice := &client.User{Username: "alice"}

	t1 := s.Begin()
	assert.Equal(t, Bootstrapping, s.Phase())
	assert.True(t, s.Resolve(t1, UserLoaded{User: alice}))
	assert.Equal(t, Authenticated, s.Phase())

	t2 := s.Begin()
	assert.Equal(t, Bootstrapping, s.Phase(), "re-bootstrap reports loading")
	assert.True(t, s.Resolve(t2, UserLoadFailed{}))
	assert.Equal(t, Anonymous, s.Phase())

	s.SignOut()
	assert.Equal(t, Anonymous, s.Phase())
}

func TestStore_LatestStartedWins(t *testing.T) {
	s := NewStore()
	alice := &client.User{Username: "alice"}
	bob := &client.User{Username: "bob"}

	first := s.Begin()
	second := s.Begin()
	assert.Greater(t, second.Generation(), first.Generation())

	assert.True(t, s.Resolve(second, UserLoaded{User: bob}))
	assert.False(t, s.Resolve(first, UserLoaded{User: alice}), "superseded attempt must be dropped")
	assert.Equal(t, "bob", s.State().Username())
}

func TestStore_SignOutSupersedesOutstandingBootstrap(t *testing.T) {
	s := NewStore()
	ticket := s.Begin()

	s.SignOut()
	assert.False(t, s.State().IsLoading)

	assert.False(t, s.Resolve(ticket, UserLoaded{User: &client.User{Username: "alice"}}))
	assert.False(t, s.State().IsAuthenticated, "late result must not resurrect a signed-out session")
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Resolve(s.Begin(), UserLoaded{User: &client.User{Username: "u"}})
		}()
		go func() {
			defer wg.Done()
			st := s.State()
			assert.Equal(t, st.IsAuthenticated, st.CurrentUser != nil)
		}()
	}
	wg.Wait()
}
