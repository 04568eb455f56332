package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"riskwatch/internal/model"
	"riskwatch/internal/repository/sqlstore"
	"riskwatch/internal/service"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDeliversAlerts(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	conn := &Connection{UserID: "c1", Role: model.RoleCounselor, Send: make(chan []byte, 4), Hub: hub}
	hub.Register(conn)

	a := model.Alert{ID: "a1", Kind: model.AlertCrisis, StudentName: "Ada", Message: "EMERGENCY ALERT: Mental health crisis detected for Ada."}
	require.NoError(t, hub.Deliver(context.Background(), a))

	select {
	case data := <-conn.Send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, MsgAlert, msg.Type)
		var got model.Alert
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, a.Message, got.Message)
	case <-time.After(time.Second):
		t.Fatal("alert not delivered")
	}

	hub.Unregister(conn)
	assert.Eventually(t, func() bool { return hub.ConnectionCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHubClosed(t *testing.T) {
	hub := NewHub()
	hub.Close()
	assert.ErrorIs(t, hub.Deliver(context.Background(), model.Alert{}), ErrHubClosed)
}

func TestAlertsWSRequiresStaffRole(t *testing.T) {
	ctx := context.Background()
	store, err := sqlstore.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer store.Close(ctx)

	auth := service.NewAuthService(store.Users, "secret", time.Hour)
	hub := NewHub()
	defer hub.Close()
	srv := httptest.NewServer(http.HandlerFunc(NewHandler(hub, auth).AlertsWS))
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	studentToken, err := auth.IssueToken(&model.User{ID: "s1", Role: model.RoleStudent})
	require.NoError(t, err)
	_, resp, err := websocket.DefaultDialer.Dial(url+"?token="+studentToken, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	counselorToken, err := auth.IssueToken(&model.User{ID: "c1", Role: model.RoleCounselor})
	require.NoError(t, err)
	ws, _, err := websocket.DefaultDialer.Dial(url+"?token="+counselorToken, nil)
	require.NoError(t, err)
	defer ws.Close()

	require.Eventually(t, func() bool { return hub.ConnectionCount() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, hub.Deliver(ctx, model.Alert{ID: "a1", Kind: model.AlertIntervention, Message: "ALERT"}))

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	require.NoError(t, ws.ReadJSON(&msg))
	assert.Equal(t, MsgAlert, msg.Type)
}
