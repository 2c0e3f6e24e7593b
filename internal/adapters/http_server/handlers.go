package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mandatedisrael/basefly/internal/app"
	"github.com/mandatedisrael/basefly/internal/domain"
)

type Handlers struct{ S *app.SearchService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/flights/search", h.searchFlights)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

type searchRequest struct {
	Text    string                `json:"text"`
	Context domain.RequestContext `json:"context"`
}

// searchFlights is the host surface of the pipeline. Pipeline-level
// failures (invalid plan, no offers, collaborator errors) are not HTTP
// errors: the caller always gets a 200 with success=false and a fixed
// user-facing message.
func (h *Handlers) searchFlights(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "could not read request body")
		return
	}

	var req searchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", "body must be a JSON object")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeProblem(w, http.StatusBadRequest, "Missing Text", "text is required")
		return
	}

	res := h.S.Handle(r.Context(), req.Text, req.Context)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.Error().Err(err).Msg("failed to write search response")
	}
}
