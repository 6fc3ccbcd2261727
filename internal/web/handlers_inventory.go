package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/inventory/internal/core"
	"github.com/JonMunkholm/inventory/internal/web/templates"
)

// handleInventoryPage renders the inventory, optionally filtered by ?term=
// (product name) or ?category=.
func (s *Server) handleInventoryPage(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")
	category := r.URL.Query().Get("category")

	current := s.engine.Inventory()
	view := templates.InventoryView{
		Term:     term,
		Category: category,
		Total:    current.Len(),
		LoadedAt: s.engine.LoadedAt(),
	}
	if last, ok := s.engine.LastLoad(); ok {
		view.LastLoad = &last
	}

	var (
		records core.Inventory
		err     error
	)
	switch {
	case strings.TrimSpace(term) != "":
		records, err = current.SearchByName(term)
	case strings.TrimSpace(category) != "":
		records, err = current.FilterByCategory(category)
	default:
		records, err = current.All()
	}

	// An empty inventory renders as an empty table.
	if err != nil && !errors.Is(err, core.ErrEmptyInventory) {
		msg := core.MapError(err)
		view.Error = &msg
	}
	view.Records = records

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.InventoryPage(view).Render(r.Context(), w)
}

// handleListInventory returns every record.
func (s *Server) handleListInventory(w http.ResponseWriter, r *http.Request) {
	inv, err := s.engine.All()
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, inventoryResponse(inv))
}

// handleSearch returns records whose product name contains ?term=.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	inv, err := s.engine.SearchByName(r.URL.Query().Get("term"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, inventoryResponse(inv))
}

// handleCategory returns records whose category contains ?term=.
func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	inv, err := s.engine.FilterByCategory(r.URL.Query().Get("term"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, inventoryResponse(inv))
}

// handlePriceRange returns records with ?min= <= unit price <= ?max=.
func (s *Server) handlePriceRange(w http.ResponseWriter, r *http.Request) {
	lo, hi, err := core.ParsePriceRange(r.URL.Query().Get("min"), r.URL.Query().Get("max"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	inv, err := s.engine.FilterByPriceRange(lo, hi)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, inventoryResponse(inv))
}

// handleQuantityRange returns records with ?min= <= quantity <= ?max=.
func (s *Server) handleQuantityRange(w http.ResponseWriter, r *http.Request) {
	lo, hi, err := core.ParseQuantityRange(r.URL.Query().Get("min"), r.URL.Query().Get("max"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	inv, err := s.engine.FilterByQuantityRange(lo, hi)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, inventoryResponse(inv))
}
