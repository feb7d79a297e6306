package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Once the hub unregisters a client it closes the Send channel, so no other
// goroutine may ever send on it. The snapshot push writes to the connection
// directly before registration for exactly this reason.
func TestUnregisterClosesSend(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := &Client{Send: make(chan WSMessage, 1)}
	h.Register <- client
	h.Unregister <- client

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-client.Send:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond, "Send should be closed after unregister")
}

func TestNotifyAfterUnregisterDoesNotPanic(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := &Client{Send: make(chan WSMessage, 1)}
	h.Register <- client
	h.Unregister <- client

	assert.NotPanics(t, func() {
		h.Notify(EventTeamLocked, map[string]string{"team_id": "abc"})
	})
}
