package handlers

import (
	"context"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"forum_backend/models"
	"forum_backend/sensor"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sensorEngine(feed *sensor.Feed) *gin.Engine {
	h := NewSensorHandler(feed)
	r := gin.New()
	r.GET("/api/data", h.Data)
	r.GET("/api/data/history", h.History)
	r.GET("/api/data/stream", h.Stream)
	return r
}

func newFeed(clock clockwork.Clock) *sensor.Feed {
	return sensor.NewFeed(
		sensor.NewSampler(rand.New(rand.NewPCG(3, 4)), clock),
		sensor.NewMemoryHistory(5*time.Minute),
		clock, time.Second, 5*time.Minute,
	)
}

func TestSensorData(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.UnixMilli(1_700_000_000_000))
	r := sensorEngine(newFeed(clock))

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/api/data", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[struct {
		DataPoint models.DataPoint `json:"dataPoint"`
	}](t, rec)
	assert.Equal(t, int64(1_700_000_000_000), body.DataPoint.Timestamp)
	assert.GreaterOrEqual(t, body.DataPoint.Value, 50)
	assert.LessOrEqual(t, body.DataPoint.Value, 149)
}

func TestSensorHistory(t *testing.T) {
	clock := clockwork.NewFakeClock()
	feed := newFeed(clock)
	for i := 0; i < 60; i++ {
		_, err := feed.Read(context.Background())
		require.NoError(t, err)
		clock.Advance(time.Second)
	}
	r := sensorEngine(feed)

	type historyBody struct {
		DataPoints []models.DataPoint `json:"dataPoints"`
	}

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/api/data/history?window=30", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	points := decode[historyBody](t, rec).DataPoints
	require.Len(t, points, 31)
	assert.Less(t, points[0].Timestamp, points[30].Timestamp)

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/api/data/history", nil))
	assert.Len(t, decode[historyBody](t, rec).DataPoints, 11)

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/api/data/history?window=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSensorStream(t *testing.T) {
	clock := clockwork.NewFakeClock()
	feed := newFeed(clock)
	srv := httptest.NewServer(sensorEngine(feed))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/data/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return feed.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	want, err := feed.Read(context.Background())
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got models.DataPoint
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, want, got)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return feed.Subscribers() == 0 }, time.Second, 10*time.Millisecond)
}

func TestSensorStream_FeedStopped(t *testing.T) {
	clock := clockwork.NewFakeClock()
	feed := newFeed(clock)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		feed.Run(ctx)
		close(done)
	}()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	cancel()
	<-done

	srv := httptest.NewServer(sensorEngine(feed))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/data/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}
