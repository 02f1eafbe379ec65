package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hugo-lorenzo-mato/splitview/internal/core"
	"github.com/hugo-lorenzo-mato/splitview/internal/events"
	"github.com/hugo-lorenzo-mato/splitview/internal/splitview"
)

// ViewResponse describes one view.
type ViewResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name,omitempty"`
	Min           int    `json:"min"`
	Max           int    `json:"max"`
	Size          int    `json:"size"`
	Offset        int    `json:"offset"`
	HandleVisible bool   `json:"handle_visible"`
	Highlighted   bool   `json:"highlighted"`
}

// LayoutResponse is the body of GET /api/v1/layout.
type LayoutResponse struct {
	ContainerID string         `json:"container_id"`
	Direction   string         `json:"direction"`
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	Size        int            `json:"size"`
	FreeSize    int            `json:"free_size"`
	Resizing    bool           `json:"resizing"`
	Views       []ViewResponse `json:"views"`
}

// SetSizeRequest is the body of PUT /api/v1/views/{viewID}/size.
type SetSizeRequest struct {
	Size *float64 `json:"size"`
}

// SetSizeResponse reports the achieved size and what could not be granted.
type SetSizeResponse struct {
	Size       int `json:"size"`
	Unresolved int `json:"unresolved"`
}

// SetDirectionRequest is the body of PUT /api/v1/direction.
type SetDirectionRequest struct {
	Direction string `json:"direction"`
}

func (s *Server) layout() LayoutResponse {
	snap := s.container.Snapshot()

	resp := LayoutResponse{
		ContainerID: s.container.ID(),
		Direction:   snap.Direction.String(),
		Width:       snap.Host.Width,
		Height:      snap.Host.Height,
		Size:        snap.Size,
		FreeSize:    snap.FreeSize,
		Resizing:    snap.Resizing,
		Views:       []ViewResponse{},
	}
	for _, p := range snap.Placements {
		resp.Views = append(resp.Views, ViewResponse{
			ID:            p.View.ID(),
			Name:          p.View.Name(),
			Min:           p.View.Min(),
			Max:           p.View.Max(),
			Size:          p.Size,
			Offset:        p.Offset,
			HandleVisible: p.HandleVisible,
			Highlighted:   p.Highlighted,
		})
	}
	return resp
}

func (s *Server) handleGetLayout(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.layout())
}

// findView resolves a linked view by id or name.
func (s *Server) findView(key string) (*splitview.View, error) {
	for _, v := range s.container.Views() {
		if v.ID() == key || (v.Name() != "" && v.Name() == key) {
			return v, nil
		}
	}
	return nil, core.ErrNotFound("view", key)
}

func (s *Server) handleSetViewSize(w http.ResponseWriter, r *http.Request) {
	v, err := s.findView(chi.URLParam(r, "viewID"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	var req SetSizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Size == nil {
		respondDomainError(w, core.ErrValidation(core.CodeInvalidArgument, "size is required"))
		return
	}

	unresolved, err := v.SetSize(*req.Size)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, SetSizeResponse{Size: v.Size(), Unresolved: unresolved})
}

func (s *Server) handleSetDirection(w http.ResponseWriter, r *http.Request) {
	var req SetDirectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := splitview.ParseDirection(req.Direction)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	previous := s.container.Direction()
	if err := s.container.SetDirection(d); err != nil {
		respondDomainError(w, err)
		return
	}
	if previous != d && s.eventBus != nil {
		s.eventBus.Publish(events.NewDirectionChangedEvent(s.container.ID(), d.String()))
	}
	respondJSON(w, http.StatusOK, s.layout())
}

func (s *Server) handleResetView(w http.ResponseWriter, r *http.Request) {
	v, err := s.findView(chi.URLParam(r, "viewID"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if err := s.container.RequestReset(v); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "reset requested"})
}
