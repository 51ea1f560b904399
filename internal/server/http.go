package server

import (
	"encoding/json"
	"net/http"

	"clan-dashboard/internal/domain"
	"clan-dashboard/internal/middleware"

	"github.com/rs/zerolog"
)

// PageResponse carries either a dashboard or the error panel that replaces it.
type PageResponse struct {
	Dashboard *domain.Dashboard  `json:"dashboard,omitempty"`
	Error     *domain.ErrorPanel `json:"error,omitempty"`
}

func (s *DashboardServer) requestFromQuery(r *http.Request) domain.Request {
	q := r.URL.Query()
	return s.request(DashboardRequest{
		Realm:  q.Get("realm"),
		ClanID: q.Get("clan_id"),
		Player: q.Get("player"),
	})
}

// handlePage renders the full page model. Failures are rendered as an error panel
// with status 200 and keep the request controls so the client can correct the
// clan id or realm and retry.
func (s *DashboardServer) handlePage(w http.ResponseWriter, r *http.Request) {
	req := s.requestFromQuery(r)

	dash, err := s.svc.Build(r.Context(), req)
	if err != nil {
		s.logFailure(r.Context(), err)
		code, msg := classify(err)
		writeJSON(w, r, http.StatusOK, PageResponse{Error: &domain.ErrorPanel{
			Code:      code.String(),
			Message:   msg,
			RequestID: middleware.GetRequestID(r.Context()),
			Controls:  req.Controls(),
		}})
		return
	}

	writeJSON(w, r, http.StatusOK, PageResponse{Dashboard: dash})
}

func (s *DashboardServer) handleRefresh(w http.ResponseWriter, r *http.Request) {
	dash, err := s.svc.Build(r.Context(), s.requestFromQuery(r))
	if err != nil {
		s.logFailure(r.Context(), err)
		code, msg := classify(err)
		writeJSON(w, r, httpStatus(code), map[string]any{
			"error": map[string]any{
				"code":    code.String(),
				"message": msg,
			},
		})
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, r, http.StatusOK, dash.Refresh())
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("failed to write response")
	}
}
