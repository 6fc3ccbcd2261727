package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/inventory/internal/core"
	"golang.org/x/text/encoding/charmap"
)

const csvHeader = "nom du produit,catégorie,quantité,prix unitaire\n"

func writeLatin1(t *testing.T, dir, name, content string) {
	t.Helper()
	encoded, err := core.EncodeString(content, charmap.ISO8859_1)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(encoded), 0o644); err != nil {
		t.Fatal(err)
	}
}

// newTestServer returns a server whose inventory dir holds one valid file.
func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	writeLatin1(t, dir, "stock.csv", csvHeader+
		"Produit1,Cat1,10,100\nProduit2,Cat1,20,200\nGâteau,Cat2,5,50\n")

	loader, err := core.NewLoader(core.DefaultLoaderConfig())
	if err != nil {
		t.Fatal(err)
	}
	engine := core.NewEngine(loader, time.Second)
	srv := NewServer(engine, Options{
		InventoryDir: dir,
		ExportDir:    filepath.Join(t.TempDir(), "exports"),
		EnableCSP:    true,
	})
	return srv, dir
}

func do(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func loadDefault(t *testing.T, srv *Server) {
	t.Helper()
	rec := do(t, srv, http.MethodPost, "/api/load", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /api/load = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode[HealthResponse](t, rec)
	if resp.Status != "ok" || resp.Records != 0 || resp.LoadedAt != nil {
		t.Errorf("health = %+v", resp)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing")
	}
	if rec.Header().Get("Content-Security-Policy") == "" {
		t.Error("CSP header missing")
	}
}

func TestLoad(t *testing.T) {
	srv, dir := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/load", `{"directory":"`+dir+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[LoadResponse](t, rec)
	if resp.Accepted != 1 || resp.TotalRows != 3 || !resp.Replaced {
		t.Errorf("load = %+v", resp)
	}
	if resp.Trigger != core.TriggerAPI {
		t.Errorf("trigger = %q, want %q", resp.Trigger, core.TriggerAPI)
	}

	rec = do(t, srv, http.MethodGet, "/api/load/last", "")
	if last := decode[LoadResponse](t, rec); last.ID != resp.ID {
		t.Errorf("last load ID = %q, want %q", last.ID, resp.ID)
	}
}

func TestLoad_Errors(t *testing.T) {
	srv, dir := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"missing directory", `{"directory":"` + filepath.Join(dir, "nope") + `"}`, http.StatusNotFound, "LOAD001"},
		{"malformed body", `{"directory":`, http.StatusBadRequest, ""},
		{"unknown field", `{"dir":"x"}`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/api/load", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if resp := decode[ErrorResponse](t, rec); resp.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Code, tt.wantCode)
			}
		})
	}

	if rec := do(t, srv, http.MethodGet, "/api/load/last", ""); rec.Code != http.StatusOK {
		t.Errorf("last load after failed load = %d, want 200", rec.Code)
	}
}

func TestLoad_NoValidFilesKeepsInventory(t *testing.T) {
	srv, _ := newTestServer(t)
	loadDefault(t, srv)

	bad := t.TempDir()
	writeLatin1(t, bad, "bad.csv", "nom du produit\nRiz\n")
	rec := do(t, srv, http.MethodPost, "/api/load", `{"directory":"`+bad+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode[LoadResponse](t, rec)
	if resp.Replaced || resp.Rejected != 1 {
		t.Errorf("load = %+v", resp)
	}
	if len(resp.Files) != 1 || len(resp.Files[0].MissingColumns) != 3 {
		t.Errorf("files = %+v", resp.Files)
	}

	inv := decode[InventoryResponse](t, do(t, srv, http.MethodGet, "/api/inventory", ""))
	if inv.Count != 3 {
		t.Errorf("inventory count = %d, want 3", inv.Count)
	}
}

func TestQueries(t *testing.T) {
	srv, _ := newTestServer(t)
	loadDefault(t, srv)

	tests := []struct {
		target    string
		wantCount int
	}{
		{"/api/inventory", 3},
		{"/api/search?term=produit", 2},
		{"/api/search?term=G%C3%82TEAU", 1},
		{"/api/search?term=absent", 0},
		{"/api/category?term=cat1", 2},
		{"/api/price?min=50&max=100", 2},
		{"/api/price?min=300&max=100", 0},
		{"/api/quantity?min=10&max=20", 2},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, tt.target, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
			}
			resp := decode[InventoryResponse](t, rec)
			if resp.Count != tt.wantCount || len(resp.Records) != tt.wantCount {
				t.Errorf("count = %d, records = %d, want %d", resp.Count, len(resp.Records), tt.wantCount)
			}
		})
	}
}

func TestQueries_Errors(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		target     string
		wantStatus int
		wantCode   string
	}{
		{"/api/inventory", http.StatusConflict, "INV001"},
		{"/api/search?term=x", http.StatusConflict, "INV001"},
		{"/api/search?term=%20", http.StatusBadRequest, "INV002"},
		{"/api/category", http.StatusBadRequest, "INV002"},
		{"/api/price?min=abc&max=10", http.StatusBadRequest, "QRY001"},
		{"/api/quantity?min=1.5&max=10", http.StatusBadRequest, "QRY001"},
		{"/api/report", http.StatusConflict, "INV001"},
		{"/api/report/export", http.StatusConflict, "INV001"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, tt.target, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if resp := decode[ErrorResponse](t, rec); resp.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestReport(t *testing.T) {
	srv, _ := newTestServer(t)
	loadDefault(t, srv)

	report := decode[core.CategoryReport](t, do(t, srv, http.MethodGet, "/api/report", ""))
	c, ok := report.Lookup("Cat1")
	if !ok || c.QuantitySum != 30 || c.QuantityCount != 2 || c.PriceMean != 150 {
		t.Errorf("Cat1 = %+v, %v", c, ok)
	}

	rec := do(t, srv, http.MethodGet, "/api/report/export", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("download status = %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Disposition"), "attachment;") {
		t.Errorf("Content-Disposition = %q", rec.Header().Get("Content-Disposition"))
	}
	parsed, err := core.ParseReport(rec.Body)
	if err != nil {
		t.Fatalf("ParseReport() error = %v", err)
	}
	if parsed.Len() != 2 {
		t.Errorf("downloaded report has %d categories, want 2", parsed.Len())
	}
}

func TestReportExport(t *testing.T) {
	srv, _ := newTestServer(t)
	loadDefault(t, srv)

	rec := do(t, srv, http.MethodPost, "/api/report/export", `{"filename":"rapport"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[map[string]any](t, rec)
	path, _ := resp["path"].(string)
	if filepath.Base(path) != "rapport.csv" {
		t.Errorf("path = %q, want rapport.csv", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("exported file: %v", err)
	}

	rec = do(t, srv, http.MethodPost, "/api/report/export", `{"filename":"../escape.csv"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("traversal status = %d, want 400", rec.Code)
	}
}

func TestExportFilename(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"rapport.csv", "rapport.csv", false},
		{"rapport", "rapport.csv", false},
		{"RAPPORT.CSV", "RAPPORT.CSV", false},
		{"../x.csv", "", true},
		{"a/b.csv", "", true},
		{`a\b.csv`, "", true},
		{"..", "", true},
	}

	for _, tt := range tests {
		got, err := exportFilename(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("exportFilename(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("exportFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if got, _ := exportFilename(""); !strings.HasPrefix(got, "rapport_") {
		t.Errorf("default name = %q", got)
	}
}

func TestPages(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Aucun inventaire chargé") {
		t.Errorf("empty inventory page = %d", rec.Code)
	}
	rec = do(t, srv, http.MethodGet, "/report", "")
	if !strings.Contains(rec.Body.String(), "INV001") {
		t.Error("empty report page missing INV001")
	}

	loadDefault(t, srv)

	rec = do(t, srv, http.MethodGet, "/?term=g%C3%A2teau", "")
	body := rec.Body.String()
	if !strings.Contains(body, "Gâteau") || strings.Contains(body, "Produit1") {
		t.Errorf("filtered page wrong: %s", body)
	}
	rec = do(t, srv, http.MethodGet, "/?category=cat1", "")
	if strings.Contains(rec.Body.String(), "Gâteau") {
		t.Error("category page includes Cat2 product")
	}
	rec = do(t, srv, http.MethodGet, "/report", "")
	if !strings.Contains(rec.Body.String(), "<td>Cat2</td>") {
		t.Error("report page missing Cat2")
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{core.ErrEmptyInventory, http.StatusConflict},
		{core.ErrEmptyTerm, http.StatusBadRequest},
		{core.ErrLoadInProgress, http.StatusConflict},
		{&core.Error{Kind: core.KindNotFound}, http.StatusNotFound},
		{&core.Error{Kind: core.KindParse}, http.StatusUnprocessableEntity},
		{&core.Error{Kind: core.KindExport}, http.StatusInternalServerError},
		{os.ErrPermission, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(2, time.Minute)
	defer rl.stop()

	if !rl.allow("1.1.1.1") || !rl.allow("1.1.1.1") {
		t.Fatal("first two requests rejected")
	}
	if rl.allow("1.1.1.1") {
		t.Error("third request allowed")
	}
	if !rl.allow("2.2.2.2") {
		t.Error("other client rejected")
	}
}
