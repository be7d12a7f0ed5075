package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indicadores/internal/config"
	"indicadores/internal/shared/testutil"
	"indicadores/pkg/contracts/domain"
	"indicadores/pkg/contracts/events"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T, dataFile string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Server.ShutdownTimeout = 5 * time.Second
	cfg.Security.RateLimit.Enabled = false
	cfg.Data.File = dataFile
	cfg.Data.Debounce = 20 * time.Millisecond
	cfg.Telemetry.TracingEnabled = false
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config) *Application {
	t.Helper()
	a, err := New(cfg, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.OTelProviders.Shutdown(context.Background()) })
	return a
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp.StatusCode
}

func TestRouter_Dashboard(t *testing.T) {
	a := newTestApp(t, testConfig(t, testutil.WriteCSV(t, testutil.SampleRows...)))
	_, err := a.Store.Load(context.Background())
	require.NoError(t, err)

	srv := httptest.NewServer(a.Router)
	defer srv.Close()

	var dash domain.Dashboard
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/dashboard?developer=Ana", &dash))
	assert.Equal(t, []string{"Ana"}, dash.Selection)
	assert.Equal(t, []string{"Ana", "Bea"}, dash.Developers)
	assert.Equal(t, 2, dash.KPIs.AutomationCount)
	assert.InDelta(t, 12.0, dash.KPIs.TotalHoursSaved, 1e-9)
	assert.Equal(t, 3, dash.Dataset.Rows)
}

func TestRouter_NotLoaded(t *testing.T) {
	a := newTestApp(t, testConfig(t, filepath.Join(t.TempDir(), "missing.xlsx")))

	srv := httptest.NewServer(a.Router)
	defer srv.Close()

	assert.Equal(t, http.StatusServiceUnavailable, getJSON(t, srv.URL+"/api/dashboard", nil))
	assert.Equal(t, http.StatusServiceUnavailable, getJSON(t, srv.URL+"/api/health/ready", nil))
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/health/live", nil))
}

func TestRouter_Headers(t *testing.T) {
	a := newTestApp(t, testConfig(t, testutil.WriteCSV(t, testutil.SampleRows...)))

	srv := httptest.NewServer(a.Router)
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "req-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "req-123", resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}

func TestRouter_NotFound(t *testing.T) {
	a := newTestApp(t, testConfig(t, testutil.WriteCSV(t, testutil.SampleRows...)))

	srv := httptest.NewServer(a.Router)
	defer srv.Close()

	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/nope", nil))
}

func TestRouter_Metrics(t *testing.T) {
	a := newTestApp(t, testConfig(t, testutil.WriteCSV(t, testutil.SampleRows...)))
	_, err := a.Store.Load(context.Background())
	require.NoError(t, err)

	srv := httptest.NewServer(a.Router)
	defer srv.Close()

	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/dashboard", nil))

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "http_requests_total")
}

func TestServe_LifecycleAndWatcher(t *testing.T) {
	path := testutil.WriteCSV(t, testutil.SampleRows...)
	cfg := testConfig(t, path)
	cfg.Data.Watch = true
	a := newTestApp(t, cfg)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	base := "http://" + ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- a.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/api/health/ready")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	var msg events.WebSocketMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, events.MessageTypeConnect, msg.Type)

	updated := testutil.CSV(append(testutil.SampleRows[:3:3], []string{"D", "Caio", "2", "1", "10"})...)

	// Keep rewriting until the watcher, started concurrently, has seen a change.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(updated), 0o644)
		return a.Watcher.Triggered() > 0
	}, 5*time.Second, 100*time.Millisecond)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == events.MessageTypeDatasetReloaded {
			break
		}
	}

	var devs struct {
		Developers []string `json:"developers"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, base+"/api/developers", &devs))
	assert.Equal(t, []string{"Ana", "Bea", "Caio"}, devs.Developers)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	_, err = http.Get(base + "/api/health")
	assert.Error(t, err)
}

func TestColumnsFrom(t *testing.T) {
	cols := ColumnsFrom(config.ColumnsConfig{Developer: "Dev"})
	assert.Equal(t, "Dev", cols.Developer)
	assert.True(t, strings.HasPrefix(cols.Automation, "Automa"))
}
