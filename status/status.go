// Package status broadcasts load and render progress to any connected
// viewer over websockets. Senders never block: events are dropped when no
// client keeps up.
package status

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	INFO = iota
	ERROR
	PROGRESS
)

type event struct {
	Message  string
	Time     time.Time
	Type     int
	Progress float32
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func (c *client) writePump() {
	ticker := time.NewTicker(time.Second * 30)
	defer func() {
		ticker.Stop()
		unregisterClient(c)
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(40 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("[status] ws write msg error: %v", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(40 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[status] ws write ping error: %v", err)
				return
			}
		}
	}
}

// NewClient registers a websocket connection and starts pushing events to
// it, beginning with the most recent one.
func NewClient(conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan []byte, 32)}
	registerClient(c)
	go c.writePump()
	globalLock.Lock()
	defer globalLock.Unlock()
	if lastMessage != nil {
		select {
		case c.send <- lastMessage:
		default:
		}
	}
}

var eventBroadcast chan *event
var broadcastList map[*client]bool
var globalLock sync.Mutex
var lastMessage []byte

func registerClient(c *client) {
	globalLock.Lock()
	defer globalLock.Unlock()
	broadcastList[c] = true
}

func unregisterClient(c *client) {
	globalLock.Lock()
	defer globalLock.Unlock()
	delete(broadcastList, c)
}

func init() {
	eventBroadcast = make(chan *event, 16)
	broadcastList = make(map[*client]bool)
	go func() {
		for e := range eventBroadcast {
			data, err := json.Marshal(e)
			if err != nil {
				log.Printf("[status] marshal error: %v", err)
				continue
			}
			globalLock.Lock()
			lastMessage = data
			for c := range broadcastList {
				select {
				case c.send <- data:
				default:
				}
			}
			globalLock.Unlock()
		}
	}()
}

func post(msg string, typ int, progress float32) {
	if math.IsNaN(float64(progress)) || math.IsInf(float64(progress), 0) {
		progress = 0
	}
	e := &event{
		Message:  msg,
		Time:     time.Now(),
		Type:     typ,
		Progress: progress,
	}
	select {
	case eventBroadcast <- e:
	default:
	}
}

func Infof(format string, a ...interface{}) {
	post(fmt.Sprintf(format, a...), INFO, 0.0)
}

func Errorf(format string, a ...interface{}) {
	post(fmt.Sprintf(format, a...), ERROR, 0.0)
}

func Progressf(progress float32, format string, a ...interface{}) {
	post(fmt.Sprintf(format, a...), PROGRESS, progress)
}
