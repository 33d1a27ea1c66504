package websocket

import (
	"sync"

	"github.com/rs/zerolog"
)

// Journal keeps the most recent changes so a console that reconnects can tell
// whether it missed anything.
type Journal struct {
	hub      *Hub
	capacity int
	listener chan *Change

	mu      sync.RWMutex
	entries []Change

	logger zerolog.Logger
}

// NewJournal creates a Journal that remembers up to capacity changes
func NewJournal(hub *Hub, capacity int, logger zerolog.Logger) *Journal {
	if capacity <= 0 {
		capacity = 500
	}
	return &Journal{
		hub:      hub,
		capacity: capacity,
		entries:  make([]Change, 0, capacity),
		logger:   logger,
	}
}

// Start subscribes to the hub
func (j *Journal) Start() {
	j.listener = make(chan *Change, 64)
	j.hub.AddListener(j.listener)
	go j.record(j.listener)
}

// Stop unsubscribes from the hub
func (j *Journal) Stop() {
	if j.listener == nil {
		return
	}
	j.hub.RemoveListener(j.listener)
	close(j.listener)
	j.listener = nil
}

func (j *Journal) record(changes <-chan *Change) {
	for change := range changes {
		j.append(*change)
		j.logger.Debug().
			Uint64("seq", change.Seq).
			Str("collection", change.Collection).
			Str("action", change.Action).
			Str("id", change.ID).
			Msg("Change journaled")
	}
}

func (j *Journal) append(change Change) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if len(j.entries) == j.capacity {
		copy(j.entries, j.entries[1:])
		j.entries = j.entries[:len(j.entries)-1]
	}
	j.entries = append(j.entries, change)
}

// Since returns the remembered changes with Seq greater than seq, oldest first
func (j *Journal) Since(seq uint64) []Change {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := []Change{}
	for _, c := range j.entries {
		if c.Seq > seq {
			out = append(out, c)
		}
	}
	return out
}
