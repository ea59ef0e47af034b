package handlers

import (
	"net/http"
	"strconv"
	"time"

	"forum_backend/apperrors"
	"forum_backend/logging"
	"forum_backend/models"
	"forum_backend/sensor"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const streamWriteTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // dashboard may be served from another origin
	},
}

type SensorHandler struct {
	feed *sensor.Feed
}

func NewSensorHandler(feed *sensor.Feed) *SensorHandler {
	return &SensorHandler{feed: feed}
}

// Data returns a fresh reading.
func (h *SensorHandler) Data(c *gin.Context) {
	dp, err := h.feed.Read(c.Request.Context())
	if err != nil {
		logging.Logger.Warn("Failed to record sensor reading", "error", err)
	}
	c.JSON(http.StatusOK, gin.H{"dataPoint": dp})
}

// History returns the readings of the last ?window= seconds, oldest first.
func (h *SensorHandler) History(c *gin.Context) {
	var window time.Duration
	if raw := c.Query("window"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			apperrors.Respond(c, apperrors.Validation("window must be a positive number of seconds"))
			return
		}
		window = time.Duration(seconds) * time.Second
	}

	points, err := h.feed.History(c.Request.Context(), window)
	if err != nil {
		apperrors.Respond(c, apperrors.Internal("Failed to load sensor history", err))
		return
	}
	if points == nil {
		points = []models.DataPoint{}
	}
	c.JSON(http.StatusOK, gin.H{"dataPoints": points})
}

// Stream upgrades to a websocket and pushes every feed reading as JSON until
// the client goes away or the feed stops.
func (h *SensorHandler) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Logger.Debug("Websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	readings, unsubscribe := h.feed.Subscribe()
	defer unsubscribe()

	// Read pump: only used to notice the client closing.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case dp, ok := <-readings:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "feed stopped"))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
			if err := conn.WriteJSON(dp); err != nil {
				return
			}
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}
