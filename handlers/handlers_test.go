package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"forum_backend/forum"
	"forum_backend/middleware"
	"forum_backend/moderation"
	"forum_backend/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type wordFilter map[string]bool

func (w wordFilter) IsProfane(text string) bool { return w[text] }

type fixedScorer map[string]float64

func (f fixedScorer) Score(_ context.Context, text string) (*moderation.Sentiment, error) {
	return &moderation.Sentiment{Score: f[text]}, nil
}

// asUser stands in for the JWT middleware. An empty name leaves the
// request anonymous.
func asUser(c *gin.Context) {
	if name := c.GetHeader("X-Test-User"); name != "" {
		c.Set(middleware.ContextUsername, name)
	}
	c.Next()
}

func newForum(s store.PostStore) *forum.Service {
	gate := moderation.NewGate(
		wordFilter{"darn": true, "heck": true},
		fixedScorer{"I hate this": -0.8},
	)
	return forum.NewService(s, gate, nil)
}

func doJSON(t *testing.T, r http.Handler, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
