package core

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

// csvHeader is a valid header row in canonical order.
const csvHeader = "nom du produit,catégorie,quantité,prix unitaire\n"

// writeLatin1 writes content to dir/name encoded as ISO-8859-1.
func writeLatin1(t *testing.T, dir, name, content string) string {
	t.Helper()
	encoded, err := EncodeString(content, charmap.ISO8859_1)
	if err != nil {
		t.Fatalf("encode %s: %v", name, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(encoded), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// newTestLoader returns a loader with default settings.
func newTestLoader(t *testing.T) *Loader {
	t.Helper()
	l, err := NewLoader(DefaultLoaderConfig())
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}
	return l
}

// sampleInventory returns a small inventory for query and report tests.
func sampleInventory() Inventory {
	return Inventory{
		{ProductName: "Produit1", Category: "Cat1", Quantity: 10, UnitPrice: 100, SourceFile: "a.csv"},
		{ProductName: "Produit2", Category: "Cat1", Quantity: 20, UnitPrice: 200, SourceFile: "a.csv"},
		{ProductName: "Gâteau", Category: "Cat2", Quantity: 5, UnitPrice: 50, SourceFile: "b.csv"},
	}
}

func names(inv Inventory) []string {
	out := make([]string, len(inv))
	for i, r := range inv {
		out[i] = r.ProductName
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
