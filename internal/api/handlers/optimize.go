package handlers

import (
	"context"
	"delivery-route-optimizer/internal/api/dto"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/platform/obs"
	"delivery-route-optimizer/internal/services"
	"encoding/json"
	"io"
	"log"
	"net/http"
)

const maxBodyBytes = 1 << 20

// RouteOptimizer is the pipeline the handler drives.
type RouteOptimizer interface {
	Optimize(ctx context.Context, inputs []domain.WaypointInput) (*domain.OptimizedRoute, error)
}

type OptimizeHandler struct {
	Optimizer RouteOptimizer
}

// Optimize decodes the waypoints, runs the optimization pipeline and
// returns the route or a single classified error.
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeKindError(w, r, http.StatusBadRequest, services.KindInvalidInput, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeKindError(w, r, http.StatusBadRequest, services.KindInvalidInput, "body must contain only one JSON object")
		return
	}

	inputs := make([]domain.WaypointInput, 0, len(req.Waypoints))
	for _, wp := range req.Waypoints {
		inputs = append(inputs, domain.WaypointInput{Label: wp.Label, Lat: wp.Lat, Lon: wp.Lon})
	}

	route, err := h.Optimizer.Optimize(r.Context(), inputs)
	if err != nil {
		kind := services.ErrorKind(err)
		switch kind {
		case services.KindInvalidInput:
			writeKindError(w, r, http.StatusBadRequest, kind, err.Error())
		case services.KindProviderUnavailable:
			log.Printf("req_id=%s optimize failed: kind=%s err=%v", obs.RequestID(r.Context()), kind, err)
			writeKindError(w, r, http.StatusServiceUnavailable, kind, "route provider unavailable")
		default:
			log.Printf("req_id=%s optimize failed: kind=%s err=%v", obs.RequestID(r.Context()), kind, err)
			writeKindError(w, r, http.StatusInternalServerError, kind, "internal server error")
		}
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewOptimizeResponse(route))
}
