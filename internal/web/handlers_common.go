package web

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/JonMunkholm/inventory/internal/core"
)

// maxBodySize bounds JSON request bodies.
const maxBodySize = 1 << 20

// InventoryResponse is the JSON body of every query endpoint.
type InventoryResponse struct {
	Count   int           `json:"count"`
	Records []core.Record `json:"records"`
}

func inventoryResponse(inv core.Inventory) InventoryResponse {
	records := []core.Record(inv)
	if records == nil {
		records = []core.Record{}
	}
	return InventoryResponse{Count: len(records), Records: records}
}

// LoadResponse is the JSON body of a load.
type LoadResponse struct {
	core.LoadSummary
	DurationMS int64 `json:"duration_ms"`
	Replaced   bool  `json:"replaced"`
}

func loadResponse(summary core.LoadSummary) LoadResponse {
	return LoadResponse{
		LoadSummary: summary,
		DurationMS:  summary.Duration.Milliseconds(),
		Replaced:    !summary.NoValidFiles(),
	}
}

// HealthResponse is the JSON body of GET /api/health.
type HealthResponse struct {
	Status   string     `json:"status"`
	Records  int        `json:"records"`
	Loading  bool       `json:"loading"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
}

// decodeJSON decodes an optional JSON body into v. An empty body leaves v
// untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// clientIP returns the host part of RemoteAddr.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
