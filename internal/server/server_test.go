package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muneebk98/Maze-Adventures/internal/config"
	"github.com/muneebk98/Maze-Adventures/internal/domain"
	"github.com/muneebk98/Maze-Adventures/internal/engine"
	"github.com/muneebk98/Maze-Adventures/internal/hazard"
	"github.com/muneebk98/Maze-Adventures/internal/version"
	"github.com/muneebk98/Maze-Adventures/pkg/api"
	"github.com/muneebk98/Maze-Adventures/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) (*engine.Game, *httptest.Server) {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 7
	cfg.Levels = []domain.LevelSize{{Rows: 6, Columns: 6}}

	g, err := engine.New(cfg, engine.Options{})
	require.NoError(t, err)
	require.NoError(t, g.Start(0))

	ts := httptest.NewServer(New(g, "0").Handler())
	t.Cleanup(ts.Close)
	return g, ts
}

func dial(t *testing.T, ts *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) api.ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg api.ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestVersion(t *testing.T) {
	g, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/version")
	require.NoError(t, err)
	defer resp.Body.Close()

	var info version.VersionInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, version.BuildDate, info.BuildDate)
	require.NotNil(t, info.Runtime)
	assert.Equal(t, g.Seed(), info.Runtime.Seed)
	assert.Equal(t, g.Runtime().Fingerprint, info.Runtime.Fingerprint)
	assert.Regexp(t, `^mz-[0-9a-f]{16}$`, info.Runtime.Fingerprint)
}

func TestDebugEndpoints(t *testing.T) {
	g, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/debug/level")
	require.NoError(t, err)
	var view api.LevelView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	resp.Body.Close()
	assert.Equal(t, 6, view.Rows)
	assert.Len(t, view.Hazards, g.Field().Len())

	resp, err = http.Get(ts.URL + "/debug/hazards")
	require.NoError(t, err)
	var statuses []hazard.Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&statuses))
	resp.Body.Close()
	assert.Len(t, statuses, g.Field().Len())

	resp, err = http.Get(ts.URL + "/debug/reports")
	require.NoError(t, err)
	var reports []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reports))
	resp.Body.Close()
	assert.Len(t, reports, 3)
}

func TestWebSocket_SnapshotOnConnect(t *testing.T) {
	g, ts := newTestServer(t)
	conn := dial(t, ts, "alice")

	msg := readMessage(t, conn)
	require.Equal(t, api.MsgSnapshot, msg.Type)
	require.NotNil(t, msg.Snapshot)
	assert.Equal(t, g.Layout().PlayerStart, msg.Snapshot.Player)
	assert.Eventually(t, func() bool { return g.Hub().HasSubscriber("alice") }, time.Second, 10*time.Millisecond)
}

func TestWebSocket_InvalidCommandGetsError(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts, "bob")
	readMessage(t, conn)

	require.NoError(t, conn.WriteJSON(api.ClientCommand{Action: "DANCE"}))

	msg := readMessage(t, conn)
	assert.Equal(t, api.MsgError, msg.Type)
	assert.NotEmpty(t, msg.Error)
}

func TestWebSocket_ExitCommandReachesLoop(t *testing.T) {
	g, ts := newTestServer(t)
	conn := dial(t, ts, "carol")
	readMessage(t, conn)

	require.NoError(t, conn.WriteJSON(api.ClientCommand{Action: api.ActionExit}))

	// Команда попадает в очередь асинхронно: тикаем, пока цикл ее не заберет.
	assert.Eventually(t, func() bool {
		g.Step(10 * time.Millisecond)
		return g.Snapshot().Phase == "COMPLETE"
	}, 2*time.Second, 20*time.Millisecond)

	for {
		msg := readMessage(t, conn)
		if msg.Event != nil && msg.Event.Type == domain.EventAllLevelsComplete {
			break
		}
	}
}

func TestWebSocket_DisconnectUnregisters(t *testing.T) {
	g, ts := newTestServer(t)
	conn := dial(t, ts, "dave")
	readMessage(t, conn)
	require.True(t, g.Hub().HasSubscriber("dave"))

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return !g.Hub().HasSubscriber("dave") }, 2*time.Second, 10*time.Millisecond)
}
