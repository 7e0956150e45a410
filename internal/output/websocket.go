package output

import (
	"math"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/zeusync/trajsweep/internal/sweep"
)

// Message types sent over a sweep stream.
const (
	MessageRow   = "row"
	MessageDone  = "done"
	MessageError = "error"
)

// Message is the JSON frame of a sweep stream. The row columns are always
// present; Range and Airtime are null when the row is unresolved, since JSON
// has no NaN.
type Message struct {
	Type    string   `json:"type"`
	Angle   float64  `json:"angle"`
	RPM     float64  `json:"rpm"`
	Range   *float64 `json:"range"`
	Airtime *float64 `json:"airtime"`

	RunID      string `json:"run_id,omitempty"`
	Digest     string `json:"digest,omitempty"`
	Rows       int    `json:"rows,omitempty"`
	Resolved   int    `json:"resolved,omitempty"`
	Unresolved int    `json:"unresolved,omitempty"`
	Error      string `json:"error,omitempty"`
}

func RowMessage(row sweep.Row) Message {
	return Message{
		Type:    MessageRow,
		Angle:   row.Angle,
		RPM:     row.RPM,
		Range:   nullable(row.Range),
		Airtime: nullable(row.Airtime),
	}
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// WebSocketSink streams rows as JSON messages over a websocket connection.
// It does not own the connection.
type WebSocketSink struct {
	conn   *websocket.Conn
	mu     sync.Mutex
	closed bool
}

var _ Sink = (*WebSocketSink)(nil)

func NewWebSocketSink(conn *websocket.Conn) *WebSocketSink {
	return &WebSocketSink{conn: conn}
}

func (s *WebSocketSink) WriteRow(row sweep.Row) error {
	return s.Send(RowMessage(row))
}

// Send writes an arbitrary stream message.
func (s *WebSocketSink) Send(msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSinkClosed
	}
	return s.conn.WriteJSON(msg)
}

func (s *WebSocketSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
