package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebsocket_RequiresAuth(t *testing.T) {
	_, engine := newTestApp(t)
	server := httptest.NewServer(engine)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/calendar/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	if conn != nil {
		conn.Close()
	}
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebsocket_ReceivesToggleBroadcast(t *testing.T) {
	app, engine := newTestApp(t)
	createUser(t, app, "alice", "secret")
	cookie := login(t, engine, "alice", "secret")

	server := httptest.NewServer(engine)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/calendar/ws"
	header := http.Header{}
	header.Set("Cookie", cookie.Name+"="+cookie.Value)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer conn.Close()

	// The handler subscribes after the handshake; wait for it
	require.Eventually(t, func() bool { return app.hub.Count() == 1 },
		2*time.Second, 10*time.Millisecond)

	// Mutate through the HTTP API and expect the event on the socket
	date := futureDate(7)
	code, _ := doJSON(t, engine, http.MethodPost, "/calendar/api/toggle/"+date, cookie)
	require.Equal(t, http.StatusOK, code)

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var event struct {
		Type    string `json:"type"`
		Date    string `json:"date"`
		HasStar bool   `json:"has_star"`
	}
	require.NoError(t, json.Unmarshal(payload, &event))
	assert.Equal(t, "availability_update", event.Type)
	assert.Equal(t, date, event.Date)
	assert.False(t, event.HasStar)
}
