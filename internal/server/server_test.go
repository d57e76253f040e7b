package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/physics2d/internal/core/physics"
	physicssys "github.com/zeusync/physics2d/internal/core/systems/physics"
)

type namedObject string

func (n namedObject) Name() string { return string(n) }

func newTestServer(t *testing.T, config Config) (*Server, *physicssys.System) {
	t.Helper()
	world := physics.NewWorld(physics.DefaultConfig())

	ground := physics.NewRigidbody(physics.BodyStatic)
	ground.SetAnchor(physics.NewPoint(physics.Vec2(0, 10)))
	groundCol, err := physics.NewBoxCollider(20, 1)
	require.NoError(t, err)
	groundCol.UserData = namedObject("ground")
	world.AddCollider(groundCol, world.AddRigidbody(ground))

	ball := physics.NewRigidbody(physics.BodyDynamic)
	ball.SetAnchor(physics.NewPoint(physics.Zero))
	ballCol, err := physics.NewCircleCollider(0.5)
	require.NoError(t, err)
	ballCol.UserData = namedObject("ball")
	world.AddCollider(ballCol, world.AddRigidbody(ball))

	sys := physicssys.New(world, nil, nil, physicssys.DefaultConfig())
	require.NoError(t, sys.Initialize(context.Background()))
	return NewServer(config, "test", sys, nil), sys
}

func TestCapture(t *testing.T) {
	_, sys := newTestServer(t, DefaultConfig())
	require.NoError(t, sys.FixedUpdate(1.0/60))

	var snap Snapshot
	sys.WithWorld(func(w *physics.World) { snap = Capture("test", w) })

	assert.Equal(t, "test", snap.Scene)
	assert.Equal(t, uint64(1), snap.Step)
	assert.Len(t, snap.Digest, 16)
	require.Len(t, snap.Bodies, 2)
	assert.Equal(t, "ground", snap.Bodies[0].Name)
	assert.Equal(t, "static", snap.Bodies[0].Type)
	assert.Equal(t, "ball", snap.Bodies[1].Name)
	assert.Greater(t, snap.Bodies[1].Velocity[1], float32(0))
	assert.Equal(t, 1, snap.Awake)
}

func TestHub_SlowSubscriberSeesNewest(t *testing.T) {
	h := NewHub()
	_, err := h.Latest()
	assert.ErrorIs(t, err, ErrNoSnapshot)

	updates, cancel := h.Subscribe()
	require.NoError(t, h.Publish(Snapshot{Step: 1}))
	require.NoError(t, h.Publish(Snapshot{Step: 2}))

	var snap Snapshot
	require.NoError(t, json.Unmarshal(<-updates, &snap))
	assert.Equal(t, uint64(2), snap.Step)
	assert.Equal(t, 1, h.Subscribers())

	cancel()
	cancel()
	_, ok := <-updates
	assert.False(t, ok)
	assert.Zero(t, h.Subscribers())

	late, cancelLate := h.Subscribe()
	defer cancelLate()
	require.NoError(t, json.Unmarshal(<-late, &snap))
	assert.Equal(t, uint64(2), snap.Step, "new subscribers start from the latest snapshot")
}

func TestFrames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte("hello")))
	require.NoError(t, WriteFrame(&buf, nil))

	got, err := ReadFrame(&buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
	got, err = ReadFrame(&buf)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ReadFrame(bytes.NewReader([]byte{0xff, 0xff, 0xff, 0xff}))
	assert.ErrorIs(t, err, ErrFrameTooLarge)
}

func TestHTTP_Snapshot(t *testing.T) {
	srv, _ := newTestServer(t, DefaultConfig())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/snapshot")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	require.NoError(t, srv.Publish())
	resp, err = http.Get(ts.URL + "/snapshot")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var snap Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Len(t, snap.Bodies, 2)

	resp, err = http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestWebSocket_StreamsSnapshots(t *testing.T) {
	srv, sys := newTestServer(t, DefaultConfig())
	require.NoError(t, srv.Publish())

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	defer conn.Close()

	var snap Snapshot
	require.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, uint64(0), snap.Step)

	require.NoError(t, sys.FixedUpdate(1.0/60))
	require.NoError(t, srv.Publish())
	require.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, uint64(1), snap.Step)
}

func TestQUIC_StreamsSnapshots(t *testing.T) {
	srv, _ := newTestServer(t, DefaultConfig())
	require.NoError(t, srv.Publish())

	ln, err := ListenQUIC("127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	go func() { _ = srv.ServeQUIC(ctx, ln) }()

	client, err := DialQUIC(ctx, ln.Addr().String())
	require.NoError(t, err)
	defer client.Close()

	snap, err := client.Next()
	require.NoError(t, err)
	assert.Equal(t, "test", snap.Scene)
	assert.Len(t, snap.Bodies, 2)
}

func TestServer_Run(t *testing.T) {
	config := DefaultConfig()
	config.HTTPAddr = "127.0.0.1:0"
	config.QUICAddr = ""
	config.TickRate = 200
	config.SnapshotRate = 50
	srv, sys := newTestServer(t, config)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	require.NoError(t, srv.Run(ctx))

	sys.WithWorld(func(w *physics.World) {
		assert.Greater(t, w.Steps(), uint64(0))
	})
	_, err := srv.Hub().Latest()
	assert.NoError(t, err)

	assert.ErrorIs(t, srv.Run(context.Background()), ErrServerAlreadyRunning)
}

func TestServer_RunRejectsBadConfig(t *testing.T) {
	srv, _ := newTestServer(t, Config{HTTPAddr: "127.0.0.1:0"})
	assert.ErrorIs(t, srv.Run(context.Background()), ErrInvalidConfig)
}
