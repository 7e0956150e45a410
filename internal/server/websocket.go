package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/zeusync/trajsweep/internal/core/observability/log"
	"github.com/zeusync/trajsweep/internal/output"
	"github.com/zeusync/trajsweep/internal/sweep"
)

// SweepRequest is the first message a client sends. Absent fields keep the
// server's configured values.
type SweepRequest struct {
	GoalHeight *float64     `json:"goal_height,omitempty"`
	Angle      *sweep.Range `json:"angle,omitempty"`
	RPM        *sweep.Range `json:"rpm,omitempty"`
}

func (req SweepRequest) apply(base *sweep.Config) *sweep.Config {
	cfg := base.Clone()
	if req.GoalHeight != nil {
		cfg.Grid.GoalHeight = *req.GoalHeight
	}
	if req.Angle != nil {
		cfg.Grid.Angle = *req.Angle
	}
	if req.RPM != nil {
		cfg.Grid.RPM = *req.RPM
	}
	return cfg
}

func (s *Server) authorize(r *http.Request) error {
	if s.config.Token == "" {
		return nil
	}
	if r.URL.Query().Get("token") != s.config.Token {
		return ErrUnauthorized
	}
	return nil
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	if err := s.authorize(r); err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Upgrade failed", log.Error(err))
		return
	}
	defer conn.Close()

	logger := s.logger.With(log.String("remote", conn.RemoteAddr().String()))
	sink := output.NewWebSocketSink(conn)
	defer sink.Close()

	var req SweepRequest
	if err := conn.ReadJSON(&req); err != nil {
		logger.Warn("Bad sweep request", log.Error(err))
		_ = sink.Send(output.Message{Type: output.MessageError, Error: fmt.Sprintf("%v: %v", ErrInvalidRequest, err)})
		return
	}

	cfg := req.apply(s.base)
	if err := s.checkSize(cfg); err != nil {
		_ = sink.Send(output.Message{Type: output.MessageError, Error: err.Error()})
		return
	}

	table, err := s.runner.Run(r.Context(), cfg)
	if err != nil {
		logger.Warn("Sweep failed", log.Error(err))
		_ = sink.Send(output.Message{Type: output.MessageError, Error: err.Error()})
		return
	}

	if s.config.WriteTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	}
	if err := output.WriteTable(sink, table); err != nil {
		logger.Warn("Stream interrupted", log.String("run_id", table.RunID), log.Error(err))
		return
	}

	stats := table.Stats()
	_ = sink.Send(output.Message{
		Type:       output.MessageDone,
		RunID:      table.RunID,
		Digest:     fmt.Sprintf("%016x", table.Digest()),
		Rows:       stats.Rows,
		Resolved:   stats.Resolved,
		Unresolved: stats.Unresolved,
	})
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	logger.Info("Sweep streamed", log.String("run_id", table.RunID), log.Int("rows", stats.Rows))
}

func (s *Server) checkSize(cfg *sweep.Config) error {
	rows, err := cfg.Grid.Rows()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGridTooLarge, err)
	}
	if s.config.MaxRows > 0 && rows > s.config.MaxRows {
		return fmt.Errorf("%w: %d > %d", ErrGridTooLarge, rows, s.config.MaxRows)
	}
	return nil
}
