package ws

import (
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/aurora/internal/domain/vfs"
	"github.com/GriffinCanCode/aurora/internal/infrastructure/logging"
	"github.com/GriffinCanCode/aurora/internal/infrastructure/storage"
	"github.com/GriffinCanCode/aurora/internal/shell"
)

type recorder struct {
	mu       sync.Mutex
	messages map[string]int
	open     int
}

func (r *recorder) RecordWSMessage(direction, msgType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[direction+":"+msgType]++
}

func (r *recorder) IncWSConnections() { r.mu.Lock(); r.open++; r.mu.Unlock() }
func (r *recorder) DecWSConnections() { r.mu.Lock(); r.open--; r.mu.Unlock() }

func (r *recorder) count(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.messages[key]
}

func setup(t *testing.T, opts ...Option) (*httptest.Server, *shell.Session, *recorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := vfs.NewStore(storage.NewMemory(), logging.NewNop())
	sessions := shell.NewManager(store, "")
	s, err := sessions.Create("user")
	require.NoError(t, err)

	rec := &recorder{messages: map[string]int{}}
	opts = append([]Option{WithMetrics(rec)}, opts...)
	h := NewHandler(sessions, shell.NewInterpreter(store, logging.NewNop()), logging.NewNop(), opts...)

	router := gin.New()
	router.GET("/sessions/:id/stream", h.HandleConnection)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, s, rec
}

func dial(t *testing.T, srv *httptest.Server, sid string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/sessions/" + sid + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, msg Message) Message {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
	var reply Message
	require.NoError(t, conn.ReadJSON(&reply))
	return reply
}

func TestStreamSession(t *testing.T) {
	srv, s, rec := setup(t)
	conn := dial(t, srv, s.ID.String())

	var hello Message
	require.NoError(t, conn.ReadJSON(&hello))
	assert.Equal(t, "connected", hello.Type)
	require.NotNil(t, hello.Session)
	assert.Equal(t, s.ID, hello.Session.ID)
	require.NotNil(t, hello.Input)
	assert.Equal(t, "user@aurora:~$ ", hello.Input.Prompt)

	reply := roundTrip(t, conn, Message{Type: "exec", Line: "cd /tmp"})
	assert.Equal(t, "result", reply.Type)
	require.NotNil(t, reply.Result)
	assert.Equal(t, "/tmp", reply.Result.Cwd)
	assert.Equal(t, "user@aurora:/tmp$ ", reply.Input.Prompt)

	reply = roundTrip(t, conn, Message{Type: "key", Key: "p"})
	assert.Equal(t, "key", reply.Type)
	require.NotNil(t, reply.Keys)
	assert.Equal(t, "p", reply.Keys.Line.Input)

	reply = roundTrip(t, conn, Message{Type: "ping"})
	assert.Equal(t, "pong", reply.Type)

	reply = roundTrip(t, conn, Message{Type: "launch"})
	assert.Equal(t, "error", reply.Type)
	assert.Equal(t, "unknown message type", reply.Message)

	assert.Equal(t, 1, rec.count("in:exec"))
	assert.Equal(t, 1, rec.count("out:connected"))
}

func TestStreamClosesOnExit(t *testing.T) {
	srv, s, _ := setup(t)
	conn := dial(t, srv, s.ID.String())

	var hello Message
	require.NoError(t, conn.ReadJSON(&hello))

	reply := roundTrip(t, conn, Message{Type: "exec", Line: "exit"})
	require.NotNil(t, reply.Result)
	assert.True(t, reply.Result.Closed)

	var closed Message
	require.NoError(t, conn.ReadJSON(&closed))
	assert.Equal(t, "closed", closed.Type)

	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure))
	assert.True(t, s.Closed())
}

func TestStreamUnknownSession(t *testing.T) {
	srv, _, _ := setup(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/sessions/missing/stream"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestStreamKeepsIdleClientAlive(t *testing.T) {
	srv, s, _ := setup(t, WithKeepalive(20*time.Millisecond, 150*time.Millisecond))
	conn := dial(t, srv, s.ID.String())

	var pings atomic.Int32
	conn.SetPingHandler(func(data string) error {
		pings.Add(1)
		return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(time.Second))
	})

	messages := make(chan Message, 4)
	go func() {
		defer close(messages)
		for {
			var msg Message
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			messages <- msg
		}
	}()

	hello := <-messages
	assert.Equal(t, "connected", hello.Type)

	time.Sleep(400 * time.Millisecond)
	assert.GreaterOrEqual(t, pings.Load(), int32(2))

	require.NoError(t, conn.WriteJSON(Message{Type: "exec", Line: "pwd"}))
	select {
	case reply, ok := <-messages:
		require.True(t, ok, "stream dropped while idle")
		assert.Equal(t, "result", reply.Type)
		require.NotNil(t, reply.Result)
		assert.Equal(t, []string{"/home/user"}, reply.Result.Output)
	case <-time.After(2 * time.Second):
		t.Fatal("no reply from idle stream")
	}
}
