package web

import (
	"net/http"
	"strings"

	"github.com/JonMunkholm/inventory/internal/core"
)

// handleHealth reports liveness and the size of the current inventory.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "ok",
		Records: s.engine.Inventory().Len(),
		Loading: s.engine.Loading(),
	}
	if at := s.engine.LoadedAt(); !at.IsZero() {
		resp.LoadedAt = &at
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// handleLoad loads a directory, replacing the inventory if at least one
// file is accepted. Body: {"directory": "..."}, optional when the server
// has a configured inventory directory.
func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Directory string `json:"directory"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	dir := strings.TrimSpace(req.Directory)
	if dir == "" {
		dir = s.opts.InventoryDir
	}
	if dir == "" {
		writeError(w, r, http.StatusBadRequest, "directory is required")
		return
	}

	ctx := core.ContextWithTrigger(r.Context(), core.TriggerAPI)
	ctx = core.ContextWithRemoteAddr(ctx, clientIP(r))

	_, summary, err := s.engine.Load(ctx, dir)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	// No valid files is a completed load that changed nothing.
	writeJSON(w, r, http.StatusOK, loadResponse(summary))
}

// handleLastLoad returns the summary of the most recent load attempt.
func (s *Server) handleLastLoad(w http.ResponseWriter, r *http.Request) {
	summary, ok := s.engine.LastLoad()
	if !ok {
		writeError(w, r, http.StatusNotFound, "no load has run yet")
		return
	}
	writeJSON(w, r, http.StatusOK, loadResponse(summary))
}
