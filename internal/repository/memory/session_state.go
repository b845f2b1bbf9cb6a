package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// TurnState is transient per-session runtime state from the latest exchange:
// the gate decision and the sources that grounded the reply. Never
// authoritative; the transcript in the file store is.
type TurnState struct {
	SessionID string
	Grounded  bool
	Sources   []string
}

// SessionStateRepository keeps TurnState in an expiring in-memory cache.
type SessionStateRepository struct {
	cache *cache.Cache
}

func NewSessionStateRepository() *SessionStateRepository {
	// Entries expire after an hour of inactivity, purged every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionStateRepository{cache: c}
}

func (r *SessionStateRepository) Save(state *TurnState) {
	r.cache.Set(state.SessionID, state, cache.DefaultExpiration)
}

func (r *SessionStateRepository) Get(sessionID string) (*TurnState, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*TurnState), true
	}
	return nil, false
}

func (r *SessionStateRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
