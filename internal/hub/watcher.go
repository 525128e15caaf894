package hub

import (
	"time"

	"github.com/gorilla/websocket"
)

// Watcher is a read-only spectator connection. Watchers receive every state
// broadcast but cannot submit commands.
type Watcher struct {
	Hub     *Hub
	Conn    *websocket.Conn
	Receive chan []byte
	Close   chan error
}

func NewWatcher(hub *Hub, conn *websocket.Conn) *Watcher {
	return &Watcher{
		Hub:     hub,
		Conn:    conn,
		Receive: make(chan []byte, 8),
		Close:   make(chan error),
	}
}

// leave deregisters from the hub without blocking if the Run loop has
// already ended.
func (w *Watcher) leave() {
	select {
	case w.Hub.LeaveWatcher <- w:
	case <-w.Hub.done:
	}
}

func (w *Watcher) WriteUpdates() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		w.leave()
		_ = w.Conn.Close()
	}()
	for {
		select {
		case msg, ok := <-w.Receive:
			_ = w.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = w.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			writer, err := w.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			_, _ = writer.Write(msg)

			for i := 0; i < len(w.Receive); i++ {
				_, _ = writer.Write(newline)
				_, _ = writer.Write(<-w.Receive)
			}

			if err := writer.Close(); err != nil {
				return
			}
		case <-ticker.C:
			_ = w.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := w.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case closeErr := <-w.Close:
			closeMessage := websocket.FormatCloseMessage(websocket.CloseNormalClosure, closeErr.Error())
			writer, err := w.Conn.NextWriter(websocket.CloseMessage)
			if err != nil {
				return
			}
			_, _ = writer.Write(closeMessage)
			_ = writer.Close()
			return
		}
	}
}

// ReadLoop drains the socket so ping/pong control frames are processed. Any
// text the watcher sends is discarded.
func (w *Watcher) ReadLoop() {
	defer w.leave()

	w.Conn.SetReadLimit(maxMessageSize)
	_ = w.Conn.SetReadDeadline(time.Now().Add(pongWait))
	w.Conn.SetPongHandler(func(string) error {
		_ = w.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := w.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
