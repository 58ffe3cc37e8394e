// Package state tracks the progress of the running job.
package state

import (
	"fmt"
	"sync"
	"time"
)

type Phase int

const (
	IDLE Phase = iota
	RENDERING
	PUBLISHING
	INDEXING
	DONE
	FAILED
)

func (p Phase) String() string {
	switch p {
	case IDLE:
		return "idle"
	case RENDERING:
		return "rendering"
	case PUBLISHING:
		return "publishing"
	case INDEXING:
		return "indexing"
	case DONE:
		return "done"
	case FAILED:
		return "failed"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

type Counters struct {
	Rendered  int
	Published int
	Skipped   int
	Submitted int
	Failed    int
}

type State struct {
	Action   string
	Phase    Phase
	Started  time.Time
	Finished time.Time
	Counters Counters
	Err      string
}

// Store guards a State. All methods are safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore(action string) *Store {
	return &Store{state: State{Action: action, Phase: IDLE}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetPhase(phase Phase) {
	store.mu.Lock()
	if store.state.Started.IsZero() && phase != IDLE {
		store.state.Started = time.Now()
	}
	store.state.Phase = phase
	store.mu.Unlock()
}

// Update applies fn to the counters under the lock.
func (store *Store) Update(fn func(*Counters)) {
	store.mu.Lock()
	fn(&store.state.Counters)
	store.mu.Unlock()
}

// Finish moves to DONE, or FAILED when err is non-nil.
func (store *Store) Finish(err error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.state.Finished = time.Now()
	if err != nil {
		store.state.Phase = FAILED
		store.state.Err = err.Error()
		return
	}
	store.state.Phase = DONE
}

// Elapsed is the time between the first phase change and Finish, or now
// while the job runs.
func (s State) Elapsed() time.Duration {
	if s.Started.IsZero() {
		return 0
	}
	end := s.Finished
	if end.IsZero() {
		end = time.Now()
	}
	return end.Sub(s.Started)
}
