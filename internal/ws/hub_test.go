package ws

import (
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

	"chartscout/internal/shared/testutil"
	"chartscout/pkg/contracts/domain"
)

func testClient(hub *Hub) *Client {
	return &Client{hub: hub, send: make(chan []byte, 8), id: "test-client"}
}

func recvMessage(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case raw := <-c.send:
		var msg Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return Message{}
	}
}

func TestHubBroadcast(t *testing.T) {
	logger, _ := testutil.NewTestLogger(nil)
	hub := NewHub(logger)
	hub.Start()
	defer hub.Stop()

	client := testClient(hub)
	hub.register <- client
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Broadcast(Message{Type: TypeRender, SurfaceID: "main"})

	msg := recvMessage(t, client)
	assert.Equal(t, TypeRender, msg.Type)
	assert.Equal(t, "main", msg.SurfaceID)
	assert.False(t, msg.Time.IsZero())
}

func TestHubDropsSlowConsumer(t *testing.T) {
	logger, _ := testutil.NewTestLogger(nil)
	hub := NewHub(logger)
	hub.Start()
	defer hub.Stop()

	slow := &Client{hub: hub, send: make(chan []byte), id: "slow"}
	hub.register <- slow
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	// Nothing reads slow.send; the first broadcast cannot be queued and
	// the client is evicted.
	hub.Broadcast(Message{Type: TypeRender})
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHubEngineLifecycleMessages(t *testing.T) {
	logger, _ := testutil.NewTestLogger(nil)
	hub := NewHub(logger)
	hub.Start()
	defer hub.Stop()

	client := testClient(hub)
	hub.register <- client
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	engine := NewHubEngine(hub, logger)
	spec := &domain.ChartSpec{Kind: domain.KindBar, Series: []domain.Series{{Name: "S", Points: []domain.Point{domain.Scalar(1)}}}}

	inst, err := engine.Create(context.Background(), "main", spec)
	require.NoError(t, err)
	msg := recvMessage(t, client)
	assert.Equal(t, TypeRender, msg.Type)
	assert.Equal(t, "main", msg.SurfaceID)

	require.NoError(t, inst.UpdateOptions(spec))
	assert.Equal(t, TypeUpdate, recvMessage(t, client).Type)

	require.NoError(t, inst.Destroy())
	assert.Equal(t, TypeDestroy, recvMessage(t, client).Type)

	// Destroy is idempotent and a destroyed instance goes quiet.
	require.NoError(t, inst.Destroy())
	require.NoError(t, inst.UpdateOptions(spec))
	select {
	case raw := <-client.send:
		t.Fatalf("unexpected message after destroy: %s", raw)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDiagnosticSinkEmits(t *testing.T) {
	logger, _ := testutil.NewTestLogger(nil)
	hub := NewHub(logger)
	hub.Start()
	defer hub.Stop()

	client := testClient(hub)
	hub.register <- client
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	sink := NewDiagnosticSink(hub)
	sink.Emit(domain.Diagnostic{Stage: domain.StageError, SurfaceID: "main", Cause: "fetch failed"})

	msg := recvMessage(t, client)
	assert.Equal(t, TypeDiagnostic, msg.Type)
	payload, err := json.Marshal(msg.Payload)
	require.NoError(t, err)
	assert.Contains(t, string(payload), "fetch failed")
}

func TestServeWSDelivers(t *testing.T) {
	logger, _ := testutil.NewTestLogger(nil)
	hub := NewHub(logger)
	hub.Start()
	defer hub.Stop()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWS(hub, w, r)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	hub.Broadcast(Message{Type: TypeRender, SurfaceID: "main"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(raw), TypeRender)
}
