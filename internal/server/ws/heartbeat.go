package ws

import (
	"time"

	"github.com/gorilla/websocket"
)

const pingInterval = 30 * time.Second

var pingPayload = mustMarshal(Message{Type: TypePing})

// writeWithHeartbeat drains send into conn and writes a ping message when
// nothing else went out for a full interval.
func writeWithHeartbeat(conn *websocket.Conn, send <-chan []byte, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	lastWrite := time.Now()

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < interval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, pingPayload); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
