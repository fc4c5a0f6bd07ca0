package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/olahol/melody"
	"github.com/tejashwikalptaru/playring/internal/domain"
)

// EventMessage is one websocket frame.
type EventMessage struct {
	Type domain.EventType `json:"type"`
	Time time.Time        `json:"time"`
	Data any              `json:"data"`
}

// streamed drops per-file scan progress, which would flood clients.
func streamed(e domain.Event) bool {
	return e.Type() != domain.EventScanProgress
}

func (s *Server) setupEvents() {
	s.subID = s.bus.SubscribeFiltered(streamed, s.broadcast)

	s.ws.HandleConnect(func(session *melody.Session) {
		s.logger.Debug("websocket client connected", slog.String("remote", session.Request.RemoteAddr))

		// Greet with the current state so a client does not need a second call.
		hello := EventMessage{
			Type: "hello",
			Time: time.Now(),
			Data: map[string]any{
				"impl":    s.playlist.Active(),
				"current": newCurrentResponse(s.playlist.Current()).Song,
			},
		}
		if data, err := json.Marshal(hello); err == nil {
			_ = session.Write(data)
		}
	})

	s.ws.HandleDisconnect(func(session *melody.Session) {
		s.logger.Debug("websocket client disconnected", slog.String("remote", session.Request.RemoteAddr))
	})

	s.ws.HandleMessage(func(session *melody.Session, msg []byte) {
		// ping command for heartbeat operation
		if bytes.Equal(bytes.TrimSpace(msg), []byte("ping")) {
			_ = session.Write([]byte("pong"))
		}
	})

	s.ws.HandleError(func(session *melody.Session, err error) {
		s.logger.Debug("websocket error", slog.String("error", err.Error()))
	})
}

func (s *Server) broadcast(e domain.Event) {
	if s.ws.IsClosed() || s.ws.Len() == 0 {
		return
	}

	data, err := json.Marshal(EventMessage{Type: e.Type(), Time: e.Timestamp(), Data: e})
	if err != nil {
		s.logger.Error("failed to encode event", slog.String("event_type", string(e.Type())), slog.String("error", err.Error()))
		return
	}
	if err := s.ws.Broadcast(data); err != nil {
		s.logger.Debug("broadcast failed", slog.String("error", err.Error()))
	}
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if err := s.ws.HandleRequest(w, r); err != nil {
		s.logger.Debug("websocket upgrade failed", slog.String("error", err.Error()))
	}
}
