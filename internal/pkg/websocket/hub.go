package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Sync states shown by the console's indicator
const (
	StateSyncing = "syncing"
	StateSynced  = "synced"
)

var stateLabels = map[string]string{
	StateSyncing: "正在云端同步",
	StateSynced:  "云端同步正常",
}

// Change is one store mutation announced to connected consoles
type Change struct {
	// Seq increases by one for every change, starting at 1
	Seq uint64 `json:"seq"`

	// Collection that changed: students, talks, inspections, honors, stories, counselor
	Collection string `json:"collection"`

	// Action performed: created, updated, deleted, imported
	Action string `json:"action"`

	// ID of the affected entity; empty for batch changes
	ID string `json:"id,omitempty"`

	// Count of affected entities for batch changes
	Count int `json:"count,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// Status is the state of the sync indicator
type Status struct {
	State      string     `json:"state" example:"synced"`
	Label      string     `json:"label" example:"云端同步正常"`
	Seq        uint64     `json:"seq"`
	LastChange *time.Time `json:"lastChange,omitempty"`
	Clients    int        `json:"clients"`
}

// Hub maintains the set of active clients and broadcasts changes to them
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Changes waiting to be fanned out
	broadcast chan *Change

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Closed by Stop
	done     chan struct{}
	stopOnce sync.Once

	// Guards clients, seq and lastChange
	mu         sync.RWMutex
	seq        uint64
	lastChange time.Time

	// Mutex for change listeners
	listenersMu sync.RWMutex

	// Change listeners
	listeners []chan *Change

	// Changes within this window keep the indicator on "syncing"
	settleWindow time.Duration

	now func() time.Time

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(settleWindow time.Duration, logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:    make(chan *Change, 256),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		done:         make(chan struct{}),
		clients:      make(map[*Client]bool),
		listeners:    []chan *Change{},
		settleWindow: settleWindow,
		now:          time.Now,
		logger:       logger,
	}
}

// Run starts the hub, handling client registrations and broadcasts, until Stop is called
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case change := <-h.broadcast:
			h.broadcastChange(change)

		case <-h.done:
			h.closeAll()
			return
		}
	}
}

// Stop ends Run and disconnects every client
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	h.logger.Info().Str("addr", client.remoteAddr()).Int("clients", len(h.clients)).Msg("Sync client registered")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.dropLocked(client)
}

func (h *Hub) dropLocked(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	h.logger.Info().Str("addr", client.remoteAddr()).Int("clients", len(h.clients)).Msg("Sync client unregistered")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		h.dropLocked(client)
	}
}

// broadcastChange sends a change to every client and listener
func (h *Hub) broadcastChange(change *Change) {
	h.notifyListeners(change)

	data, err := json.Marshal(change)
	if err != nil {
		h.logger.Error().Err(err).Uint64("seq", change.Seq).Msg("Failed to marshal change for broadcast")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			// Slow consumer; it reloads everything when it reconnects.
			h.dropLocked(client)
		}
	}

	h.logger.Debug().Uint64("seq", change.Seq).Int("clientCount", len(h.clients)).Msg("Change broadcasted")
}

// notifyListeners sends a change to all registered listeners
func (h *Hub) notifyListeners(change *Change) {
	h.listenersMu.RLock()
	defer h.listenersMu.RUnlock()

	for _, listener := range h.listeners {
		select {
		case listener <- change:
		default:
			h.logger.Warn().Uint64("seq", change.Seq).Msg("Skipped slow change listener")
		}
	}
}

// Notify records a store mutation and queues it for broadcast. It never blocks:
// when the queue is full the change is still counted but not pushed.
func (h *Hub) Notify(collection, action, id string, count int) {
	h.mu.Lock()
	h.seq++
	h.lastChange = h.now()
	change := &Change{
		Seq:        h.seq,
		Collection: collection,
		Action:     action,
		ID:         id,
		Count:      count,
		Timestamp:  h.lastChange,
	}
	h.mu.Unlock()

	select {
	case h.broadcast <- change:
	default:
		h.logger.Warn().Uint64("seq", change.Seq).Str("collection", collection).Msg("Change queue full, broadcast skipped")
	}
}

// Status reports "syncing" until the settle window after the last change has passed
func (h *Hub) Status() Status {
	h.mu.RLock()
	defer h.mu.RUnlock()

	st := Status{State: StateSynced, Seq: h.seq, Clients: len(h.clients)}
	if !h.lastChange.IsZero() {
		last := h.lastChange
		st.LastChange = &last
		if h.now().Sub(last) < h.settleWindow {
			st.State = StateSyncing
		}
	}
	st.Label = stateLabels[st.State]
	return st
}

// GetClientsCount returns the number of connected clients
func (h *Hub) GetClientsCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// AddListener registers a channel to receive all changes
func (h *Hub) AddListener(listener chan *Change) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	h.listeners = append(h.listeners, listener)
}

// RemoveListener removes a listener from the hub
func (h *Hub) RemoveListener(listener chan *Change) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	for i, l := range h.listeners {
		if l == listener {
			h.listeners[i] = h.listeners[len(h.listeners)-1]
			h.listeners = h.listeners[:len(h.listeners)-1]
			break
		}
	}
}
