package server

import (
	"net/http"
	"time"

	"offsite/internal/content"

	"github.com/go-chi/render"
)

// SnapshotResponse is the JSON form of one provider snapshot.
type SnapshotResponse[T any] struct {
	Items   []T    `json:"items"`
	Loading bool   `json:"loading"`
	Status  string `json:"status"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// apiSnapshot serves a provider snapshot as JSON. A failed fetch answers 503
// with an empty item list.
func apiSnapshot[T any](s *Server, newProvider func() *content.Provider[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := newProvider()
		scope := s.mount(r, p)
		defer scope.Close()

		snap := p.Snapshot()
		status := http.StatusOK
		switch {
		case snap.Loading:
			status = http.StatusAccepted
		case snap.Status == content.StatusFailed:
			status = http.StatusServiceUnavailable
		}

		render.Status(r, status)
		render.JSON(w, r, SnapshotResponse[T]{
			Items:   snap.Items,
			Loading: snap.Loading,
			Status:  snap.Status.String(),
		})
	}
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
