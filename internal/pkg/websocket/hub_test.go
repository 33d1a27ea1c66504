package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusSettlesAfterWindow(t *testing.T) {
	hub := NewHub(800*time.Millisecond, zerolog.Nop())
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	hub.now = func() time.Time { return clock }

	st := hub.Status()
	assert.Equal(t, StateSynced, st.State)
	assert.Equal(t, "云端同步正常", st.Label)
	assert.Nil(t, st.LastChange)

	hub.Notify("students", "created", "s1", 0)
	clock = clock.Add(500 * time.Millisecond)
	st = hub.Status()
	assert.Equal(t, StateSyncing, st.State)
	assert.Equal(t, "正在云端同步", st.Label)
	assert.Equal(t, uint64(1), st.Seq)

	clock = clock.Add(400 * time.Millisecond)
	assert.Equal(t, StateSynced, hub.Status().State)
}

func TestNotifyNeverBlocksWithoutRun(t *testing.T) {
	hub := NewHub(time.Second, zerolog.Nop())
	for i := 0; i < 1000; i++ {
		hub.Notify("talks", "created", "", 0)
	}
	assert.Equal(t, uint64(1000), hub.Status().Seq)
}

func TestJournalRecordsBroadcasts(t *testing.T) {
	hub := NewHub(time.Second, zerolog.Nop())
	go hub.Run()
	defer hub.Stop()

	journal := NewJournal(hub, 2, zerolog.Nop())
	journal.Start()
	defer journal.Stop()

	hub.Notify("students", "created", "a", 0)
	hub.Notify("students", "updated", "a", 0)
	hub.Notify("students", "deleted", "a", 0)

	require.Eventually(t, func() bool { return len(journal.Since(0)) == 2 }, time.Second, 5*time.Millisecond)
	changes := journal.Since(0)
	assert.Equal(t, "updated", changes[0].Action)
	assert.Equal(t, "deleted", changes[1].Action)
	assert.Len(t, journal.Since(2), 1)
}

func TestWebSocketReceivesChanges(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub(time.Second, zerolog.Nop())
	go hub.Run()
	defer hub.Stop()
	journal := NewJournal(hub, 10, zerolog.Nop())

	h := NewHandler(hub, journal, []string{"*"}, zerolog.Nop())
	router := gin.New()
	router.GET("/sync/ws", h.HandleConnection)
	router.GET("/sync/status", h.HandleStatus)
	srv := httptest.NewServer(router)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/sync/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.GetClientsCount() == 1 }, time.Second, 5*time.Millisecond)
	hub.Notify("inspections", "created", "i1", 0)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var change Change
	require.NoError(t, json.Unmarshal(data, &change))
	assert.Equal(t, uint64(1), change.Seq)
	assert.Equal(t, "inspections", change.Collection)
	assert.Equal(t, "i1", change.ID)

	resp, err := http.Get(srv.URL + "/sync/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	var body struct {
		Data Status `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Data.Clients)
	assert.Equal(t, StateSyncing, body.Data.State)
}

func TestCheckOriginHonoursAllowList(t *testing.T) {
	hub := NewHub(time.Second, zerolog.Nop())
	h := NewHandler(hub, NewJournal(hub, 1, zerolog.Nop()), []string{"http://desk.test"}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/sync/ws", nil)
	req.Header.Set("Origin", "http://desk.test")
	assert.True(t, h.upgrader.CheckOrigin(req))

	req.Header.Set("Origin", "http://evil.test")
	assert.False(t, h.upgrader.CheckOrigin(req))
}
