package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// handleSSE streams bus events. The first message is a snapshot of the
// current layout so clients do not need a separate GET.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}
	if s.eventBus == nil {
		respondError(w, http.StatusServiceUnavailable, "event bus not available")
		return
	}

	ctx := r.Context()
	eventCh := s.eventBus.Subscribe()
	defer s.eventBus.Unsubscribe(eventCh)

	s.logger.Debug("SSE client connected", "remote_addr", r.RemoteAddr)
	s.sendSSEEvent(w, flusher, "layout", s.layout())

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("SSE client disconnected", "remote_addr", r.RemoteAddr)
			return
		case event, ok := <-eventCh:
			if !ok {
				return
			}
			s.sendSSEEvent(w, flusher, event.EventType(), event)
		}
	}
}

// sendSSEEvent writes one event in "event: type\ndata: json\n\n" form.
func (s *Server) sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, eventType string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("failed to marshal SSE data", "error", err)
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
	flusher.Flush()
}
