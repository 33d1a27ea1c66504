package websocket

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/yigit/counselordesk/internal/app/models/dto"
)

// Handler serves the sync endpoints
type Handler struct {
	hub      *Hub
	journal  *Journal
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewHandler creates a new sync handler. allowOrigins follows the CORS
// setting; "*" accepts any origin.
func NewHandler(hub *Hub, journal *Journal, allowOrigins []string, logger zerolog.Logger) *Handler {
	allowed := make(map[string]bool, len(allowOrigins))
	for _, o := range allowOrigins {
		allowed[o] = true
	}
	return &Handler{
		hub:     hub,
		journal: journal,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
		logger: logger,
	}
}

// HandleConnection godoc
// @Summary Subscribe to store changes
// @Description Upgrades to a WebSocket that receives one JSON change per store mutation
// @Tags sync
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Router /sync/ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Str("remoteAddr", c.ClientIP()).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		logger: h.logger,
	}
	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// HandleStatus godoc
// @Summary Sync indicator
// @Description Reports "syncing" for a short window after each change, "synced" otherwise
// @Tags sync
// @Produce json
// @Success 200 {object} dto.APIResponse{data=Status}
// @Router /sync/status [get]
func (h *Handler) HandleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(h.hub.Status(), ""))
}

// HandleChanges godoc
// @Summary Recent changes
// @Description Lists journaled changes with a sequence number above since
// @Tags sync
// @Produce json
// @Param since query int false "Last sequence number the caller has seen"
// @Success 200 {object} dto.APIResponse{data=[]Change}
// @Failure 400 {object} dto.ErrorResponse
// @Router /sync/changes [get]
func (h *Handler) HandleChanges(c *gin.Context) {
	since, err := strconv.ParseUint(c.DefaultQuery("since", "0"), 10, 64)
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "since must be a sequence number").WithField("since")
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(h.journal.Since(since), ""))
}
