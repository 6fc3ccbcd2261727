package core

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

// ============================================================================
// Conversion Benchmarks
// ============================================================================

// BenchmarkParseNumber benchmarks quantity/price cell conversion, the hot
// path of every loaded row.
func BenchmarkParseNumber(b *testing.B) {
	testCases := []string{
		"123",
		"-456.78",
		"1 234,50",
		"(123.45)",
		"$1,234.56",
		"  999.99  ",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, tc := range testCases {
			ParseNumber(tc)
		}
	}
}

// ============================================================================
// Loader Benchmarks
// ============================================================================

// generateInventoryCSV builds a Latin-1 encoded inventory file of n rows.
func generateInventoryCSV(b *testing.B, n int) []byte {
	b.Helper()
	var sb strings.Builder
	sb.WriteString(csvHeader)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "Produit %d,Catégorie %d,%d,%d.%02d\n", i, i%20, i%500, i%1000, i%100)
	}
	encoded, err := EncodeString(sb.String(), charmap.ISO8859_1)
	if err != nil {
		b.Fatal(err)
	}
	return []byte(encoded)
}

func benchmarkParse(b *testing.B, rows int) {
	data := generateInventoryCSV(b, rows)
	l, err := NewLoader(DefaultLoaderConfig())
	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var outcome FileOutcome
		if _, err := l.parse(bytes.NewReader(data), "bench.csv", &outcome); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParse_1kRows(b *testing.B)   { benchmarkParse(b, 1000) }
func BenchmarkParse_100kRows(b *testing.B) { benchmarkParse(b, 100000) }

// BenchmarkLoad_Directory benchmarks a full directory load of 10 files.
func BenchmarkLoad_Directory(b *testing.B) {
	dir := b.TempDir()
	data := generateInventoryCSV(b, 5000)
	for i := 0; i < 10; i++ {
		if err := os.WriteFile(filepath.Join(dir, fmt.Sprintf("stock_%02d.csv", i)), data, 0o644); err != nil {
			b.Fatal(err)
		}
	}
	l, err := NewLoader(DefaultLoaderConfig())
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := l.Load(context.Background(), dir); err != nil {
			b.Fatal(err)
		}
	}
}

// ============================================================================
// Query and Report Benchmarks
// ============================================================================

func benchInventory(n int) Inventory {
	inv := make(Inventory, n)
	for i := range inv {
		inv[i] = Record{
			ProductName: fmt.Sprintf("Produit %d", i),
			Category:    fmt.Sprintf("Catégorie %d", i%20),
			Quantity:    float64(i % 500),
			UnitPrice:   float64(i%1000) + 0.5,
		}
	}
	return inv
}

func BenchmarkSearchByName(b *testing.B) {
	inv := benchInventory(100000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		inv.SearchByName("produit 99")
	}
}

func BenchmarkFilterByPriceRange(b *testing.B) {
	inv := benchInventory(100000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		inv.FilterByPriceRange(100, 200)
	}
}

func BenchmarkReport(b *testing.B) {
	inv := benchInventory(100000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := inv.Report(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkWriteReport(b *testing.B) {
	report, err := benchInventory(100000).Report()
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		WriteReport(io.Discard, report)
	}
}
