package web

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JonMunkholm/inventory/internal/core"
	"github.com/JonMunkholm/inventory/internal/logging"
	"github.com/JonMunkholm/inventory/internal/web/templates"
)

// handleReportPage renders the category report.
func (s *Server) handleReportPage(w http.ResponseWriter, r *http.Request) {
	report, err := s.engine.Report()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err != nil {
		msg := core.MapError(err)
		templates.ReportPage(core.CategoryReport{}, &msg).Render(r.Context(), w)
		return
	}
	templates.ReportPage(report, nil).Render(r.Context(), w)
}

// handleReport returns the category report as JSON.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.engine.Report()
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}

// handleReportDownload streams the category report as a CSV attachment.
func (s *Server) handleReportDownload(w http.ResponseWriter, r *http.Request) {
	report, err := s.engine.Report()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	filename := fmt.Sprintf("rapport_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	// Headers are sent; a write error can only be logged
	if err := core.WriteReport(w, report); err != nil {
		logging.FromContext(r.Context()).Error("report download failed", "error", err)
	}
}

// handleReportExport writes the category report under the export directory.
// Body: {"filename": "..."}; a timestamped name is used when omitted.
func (s *Server) handleReportExport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Filename string `json:"filename"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	name, err := exportFilename(req.Filename)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.engine.Report()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := os.MkdirAll(s.opts.ExportDir, 0o755); err != nil {
		s.respondError(w, r, &core.Error{Kind: core.KindExport, Op: "export", Path: s.opts.ExportDir, Msg: "export failed", Err: err})
		return
	}

	path := filepath.Join(s.opts.ExportDir, name)
	if err := s.engine.ExportReport(report, path); err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, map[string]any{
		"path":       path,
		"categories": report.Len(),
	})
}

var errBadFilename = errors.New("filename must be a plain .csv file name")

// exportFilename validates a client-supplied export file name. Names are
// confined to the export directory.
func exportFilename(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Sprintf("rapport_%s.csv", time.Now().Format("20060102_150405")), nil
	}
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", errBadFilename
	}
	if !strings.HasSuffix(strings.ToLower(name), ".csv") {
		name += ".csv"
	}
	return name, nil
}
