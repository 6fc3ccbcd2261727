package core

// report.go builds the category-grouped report and its CSV form.
//
// Grouping is exact string equality on category (the filters use substring
// matching, the report does not). Groups appear in the order their category
// is first encountered in the inventory.

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ReportHeader is the header row of an exported report.
var ReportHeader = []string{
	"catégorie",
	"quantité_sum",
	"quantité_mean",
	"quantité_count",
	"prix_unitaire_mean",
	"prix_unitaire_min",
	"prix_unitaire_max",
}

// groupAcc accumulates raw values for one category before rounding.
type groupAcc struct {
	qtySum   float64
	priceSum float64
	priceMin float64
	priceMax float64
	count    int
}

// Report computes per-category statistics.
func (inv Inventory) Report() (CategoryReport, error) {
	if inv.IsEmpty() {
		return CategoryReport{}, withOp(ErrEmptyInventory, "report")
	}

	groups := make(map[string]*groupAcc)
	order := make([]string, 0)

	for _, r := range inv {
		g, ok := groups[r.Category]
		if !ok {
			g = &groupAcc{priceMin: r.UnitPrice, priceMax: r.UnitPrice}
			groups[r.Category] = g
			order = append(order, r.Category)
		}
		g.count++
		g.qtySum += r.Quantity
		g.priceSum += r.UnitPrice
		if r.UnitPrice < g.priceMin {
			g.priceMin = r.UnitPrice
		}
		if r.UnitPrice > g.priceMax {
			g.priceMax = r.UnitPrice
		}
	}

	report := CategoryReport{Categories: make([]CategoryStats, 0, len(order))}
	for _, key := range order {
		g := groups[key]
		n := float64(g.count)
		report.Categories = append(report.Categories, CategoryStats{
			Category:      key,
			QuantitySum:   RoundTo2(g.qtySum),
			QuantityMean:  RoundTo2(g.qtySum / n),
			QuantityCount: g.count,
			PriceMean:     RoundTo2(g.priceSum / n),
			PriceMin:      RoundTo2(g.priceMin),
			PriceMax:      RoundTo2(g.priceMax),
		})
	}
	return report, nil
}

// WriteReport writes report as CSV to w.
func WriteReport(w io.Writer, report CategoryReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ReportHeader); err != nil {
		return err
	}
	for _, c := range report.Categories {
		row := []string{
			c.Category,
			formatAmount(c.QuantitySum),
			formatAmount(c.QuantityMean),
			strconv.Itoa(c.QuantityCount),
			formatAmount(c.PriceMean),
			formatAmount(c.PriceMin),
			formatAmount(c.PriceMax),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportReport writes report as CSV to path. A partially written file is
// removed on failure.
func ExportReport(report CategoryReport, path string) error {
	if path == "" {
		return exportError(path, fmt.Errorf("no export path given"))
	}

	f, err := os.Create(path)
	if err != nil {
		return exportError(path, err)
	}

	if err := WriteReport(f, report); err != nil {
		f.Close()
		os.Remove(path)
		return exportError(path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return exportError(path, err)
	}
	return nil
}

// ParseReport reads a report previously written by WriteReport.
func ParseReport(r io.Reader) (CategoryReport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(ReportHeader)

	header, err := cr.Read()
	if err != nil {
		return CategoryReport{}, parseError("report", "invalid csv", err)
	}
	for i, col := range ReportHeader {
		if header[i] != col {
			return CategoryReport{}, parseError("report", fmt.Sprintf("unexpected column %q, want %q", header[i], col), nil)
		}
	}

	report := CategoryReport{Categories: []CategoryStats{}}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return CategoryReport{}, parseError("report", "invalid csv", err)
		}

		var nums [6]float64
		for i := range nums {
			v, err := strconv.ParseFloat(row[i+1], 64)
			if err != nil {
				return CategoryReport{}, parseError("report", fmt.Sprintf("column %s", ReportHeader[i+1]), err)
			}
			nums[i] = v
		}

		report.Categories = append(report.Categories, CategoryStats{
			Category:      row[0],
			QuantitySum:   nums[0],
			QuantityMean:  nums[1],
			QuantityCount: int(nums[2]),
			PriceMean:     nums[3],
			PriceMin:      nums[4],
			PriceMax:      nums[5],
		})
	}
	return report, nil
}
