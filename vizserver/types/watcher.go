package types

import (
	"sync"

	"github.com/gorilla/websocket"
	uuid "github.com/satori/go.uuid"
)

// Watcher is a websocket client. Writes are serialized: replies to sweep
// requests and scene notifications come from different goroutines.
type Watcher struct {
	id   string
	conn *websocket.Conn
	lock *sync.Mutex
}

func NewWatcher(conn *websocket.Conn) *Watcher {
	return &Watcher{
		id:   uuid.NewV4().String(),
		conn: conn,
		lock: &sync.Mutex{},
	}
}

func (watcher *Watcher) GetId() string {
	return watcher.id
}

func (watcher *Watcher) Send(msg interface{}) error {
	watcher.lock.Lock()
	defer watcher.lock.Unlock()

	return watcher.conn.WriteJSON(msg)
}
