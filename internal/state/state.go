package state

import (
	"sync"
	"time"

	"github.com/rook-computer/analogclock/internal/render/layout"
)

type Phase int

const (
	BOOTING Phase = iota
	MOUNTED
	STOPPED
	ERROR
)

func (p Phase) String() string {
	switch p {
	case BOOTING:
		return "booting"
	case MOUNTED:
		return "mounted"
	case STOPPED:
		return "stopped"
	case ERROR:
		return "error"
	default:
		return "unknown"
	}
}

type FrameInfo struct {
	Count    uint64
	Resizes  uint64
	Last     time.Time
	LastDraw time.Duration // time spent drawing and presenting the last frame
	Err      string
}

type State struct {
	Phase    Phase
	Viewport layout.Viewport
	Frames   FrameInfo
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Phase: BOOTING}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetPhase(phase Phase) {
	store.mu.Lock()
	store.state.Phase = phase
	store.mu.Unlock()
}

func (store *Store) SetViewport(viewport layout.Viewport) {
	store.mu.Lock()
	if store.state.Viewport != viewport && store.state.Frames.Count > 0 {
		store.state.Frames.Resizes++
	}
	store.state.Viewport = viewport
	store.mu.Unlock()
}

// RecordFrame notes a presented frame. A nil err clears the last error.
func (store *Store) RecordFrame(at time.Time, took time.Duration, err error) {
	store.mu.Lock()
	store.state.Frames.Count++
	store.state.Frames.Last = at
	store.state.Frames.LastDraw = took
	if err != nil {
		store.state.Frames.Err = err.Error()
	} else {
		store.state.Frames.Err = ""
	}
	store.mu.Unlock()
}
