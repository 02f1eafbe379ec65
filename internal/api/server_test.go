package api

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/splitview/internal/events"
	"github.com/hugo-lorenzo-mato/splitview/internal/logging"
	"github.com/hugo-lorenzo-mato/splitview/internal/splitview"
)

type testEnv struct {
	c      *splitview.Container
	bus    *events.EventBus
	server *Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := logging.NewNop().Slog()
	c := splitview.New(splitview.WithScheduler(splitview.NewManualScheduler()), splitview.WithLogger(logger))
	require.NoError(t, c.Mount(splitview.HostFunc(func() splitview.Size {
		return splitview.Size{Width: 400, Height: 30}
	})))
	for _, name := range []string{"left", "right"} {
		v, err := c.CreateView(splitview.WithName(name))
		require.NoError(t, err)
		_, err = c.AppendView(v)
		require.NoError(t, err)
	}

	bus := events.New(16)
	stop := events.Forward(c, bus)
	t.Cleanup(func() {
		stop()
		bus.Close()
		c.Destroy()
	})

	return &testEnv{c: c, bus: bus, server: NewServer(c, bus, WithLogger(logger))}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"healthy"`)
}

func TestGetLayout(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/v1/layout", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp LayoutResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, env.c.ID(), resp.ContainerID)
	assert.Equal(t, "row", resp.Direction)
	assert.Equal(t, 400, resp.Size)
	assert.Equal(t, 30, resp.Height)
	require.Len(t, resp.Views, 2)
	assert.Equal(t, "left", resp.Views[0].Name)
	assert.Equal(t, 200, resp.Views[0].Size)
	assert.False(t, resp.Views[0].HandleVisible)
	assert.Equal(t, 200, resp.Views[1].Offset)
	assert.True(t, resp.Views[1].HandleVisible)
	assert.Equal(t, splitview.DefaultMax, resp.Views[1].Max)
}

func TestSetViewSize(t *testing.T) {
	tests := []struct {
		name       string
		view       string
		body       string
		status     int
		wantSize   int
		unresolved int
	}{
		{"by name", "left", `{"size": 300}`, http.StatusOK, 300, 0},
		{"partial", "left", `{"size": 380}`, http.StatusOK, 350, 30},
		{"missing size", "left", `{}`, http.StatusUnprocessableEntity, 0, 0},
		{"bad json", "left", `{`, http.StatusBadRequest, 0, 0},
		{"unknown view", "middle", `{"size": 10}`, http.StatusNotFound, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			rec := env.do(t, http.MethodPut, "/api/v1/views/"+tt.view+"/size", tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.status != http.StatusOK {
				return
			}
			var resp SetSizeResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.wantSize, resp.Size)
			assert.Equal(t, tt.unresolved, resp.Unresolved)
		})
	}
}

func TestSetViewSize_ByID(t *testing.T) {
	env := newTestEnv(t)
	id := env.c.LastView().ID()

	rec := env.do(t, http.MethodPut, "/api/v1/views/"+id+"/size", `{"size": 120}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 280, env.c.FirstView().Size())
}

func TestSetViewSize_DuringDrag(t *testing.T) {
	env := newTestEnv(t)
	d, err := env.c.BeginDrag(env.c.LastView(), splitview.Point{X: 200})
	require.NoError(t, err)
	defer d.End()

	rec := env.do(t, http.MethodPut, "/api/v1/views/left/size", `{"size": 250}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"size": 200, "unresolved": 50}`, rec.Body.String())
}

func TestSetDirection(t *testing.T) {
	env := newTestEnv(t)
	ch := env.bus.Subscribe(events.TypeDirectionChanged)

	rec := env.do(t, http.MethodPut, "/api/v1/direction", `{"direction": "column"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp LayoutResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "column", resp.Direction)
	assert.Equal(t, 30, resp.Size)

	select {
	case ev := <-ch:
		assert.Equal(t, "column", ev.(events.DirectionChangedEvent).Direction)
	case <-time.After(time.Second):
		t.Fatal("direction_changed not published")
	}

	rec = env.do(t, http.MethodPut, "/api/v1/direction", `{"direction": "diagonal"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_DIRECTION")
}

func TestResetView(t *testing.T) {
	env := newTestEnv(t)
	ch := env.bus.SubscribePriority(events.TypeResetRequested)

	rec := env.do(t, http.MethodPost, "/api/v1/views/right/reset", "")
	require.Equal(t, http.StatusAccepted, rec.Code)

	select {
	case ev := <-ch:
		assert.Equal(t, "right", ev.(events.ResetRequestedEvent).ViewName)
	case <-time.After(time.Second):
		t.Fatal("reset_requested not published")
	}

	rec = env.do(t, http.MethodPost, "/api/v1/views/nope/reset", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/layout", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSSE(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.server.Handler())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	next := func() string {
		for lines.Scan() {
			if line := lines.Text(); strings.HasPrefix(line, "event: ") {
				require.True(t, lines.Scan())
				return strings.TrimPrefix(line, "event: ") + " " + lines.Text()
			}
		}
		t.Fatalf("stream ended: %v", lines.Err())
		return ""
	}

	first := next()
	assert.True(t, strings.HasPrefix(first, "layout data: "), first)

	_, err = env.c.FirstView().SetSize(250)
	require.NoError(t, err)

	ev := next()
	assert.True(t, strings.HasPrefix(ev, "view_size_changed data: "), ev)
	assert.Contains(t, ev, `"view_name":"left"`)
	assert.Contains(t, ev, `"size":250`)
}

func TestHTTPStatusForDomainError(t *testing.T) {
	_, ok := httpStatusForDomainError(assert.AnError)
	assert.False(t, ok)

	rec := httptest.NewRecorder()
	respondDomainError(rec, assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
