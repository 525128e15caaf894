package hub

import (
	json2 "encoding/json"
	"time"

	"github.com/gorilla/websocket"
)

// Keeper is an authenticated scorekeeper connection. Keepers submit commands
// and receive state updates on the same socket.
type Keeper struct {
	Hub     *Hub
	Conn    *websocket.Conn
	UserID  int64
	Receive chan []byte
	Close   chan error
}

func newKeeper(userID int64, hub *Hub, conn *websocket.Conn) *Keeper {
	return &Keeper{
		Hub:     hub,
		Conn:    conn,
		UserID:  userID,
		Receive: make(chan []byte, 8),
		Close:   make(chan error),
	}
}

// leave deregisters from the hub without blocking if the Run loop has
// already ended.
func (k *Keeper) leave() {
	select {
	case k.Hub.LeaveKeeper <- k:
	case <-k.Hub.done:
	}
}

func (k *Keeper) WriteUpdates() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		k.leave()
		_ = k.Conn.Close()
	}()
	for {
		select {
		case msg, ok := <-k.Receive:
			_ = k.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = k.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			writer, err := k.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				_ = k.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			_, _ = writer.Write(msg)

			for i := 0; i < len(k.Receive); i++ {
				_, _ = writer.Write(newline)
				_, _ = writer.Write(<-k.Receive)
			}

			if err := writer.Close(); err != nil {
				_ = k.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
		case <-ticker.C:
			_ = k.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := k.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case closeErr := <-k.Close:
			closeMessage := websocket.FormatCloseMessage(websocket.CloseNormalClosure, closeErr.Error())
			writer, err := k.Conn.NextWriter(websocket.CloseMessage)
			if err != nil {
				return
			}
			_, _ = writer.Write(closeMessage)
			_ = writer.Close()
			return
		}
	}
}

func (k *Keeper) ReadCommands() {
	defer k.leave()

	k.Conn.SetReadLimit(maxMessageSize)
	_ = k.Conn.SetReadDeadline(time.Now().Add(pongWait))
	k.Conn.SetPongHandler(func(string) error {
		_ = k.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, bytes, err := k.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				select {
				case k.Hub.Errors <- err:
				case <-k.Hub.done:
				}
			}
			return
		}

		var generic GenericCommand
		if err := json2.Unmarshal(bytes, &generic); err != nil {
			continue
		}

		// malformed commands are dropped; the connection stays up
		command, err := generic.parseCommand()
		if err != nil {
			continue
		}

		select {
		case k.Hub.Commands <- command:
		case <-k.Hub.done:
			return
		}
	}
}
