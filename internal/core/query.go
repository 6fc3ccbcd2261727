package core

// query.go provides the independent filters over an inventory.
//
// Each filter re-scans the full inventory and returns a new Inventory.
// A zero-length result with a nil error means "no matches". Filters never
// compose: there is no chained filter state.

import (
	"strings"
)

// All returns every record.
func (inv Inventory) All() (Inventory, error) {
	if inv.IsEmpty() {
		return nil, withOp(ErrEmptyInventory, "list")
	}
	out := make(Inventory, len(inv))
	copy(out, inv)
	return out, nil
}

// SearchByName returns records whose product name contains term,
// case-insensitively.
func (inv Inventory) SearchByName(term string) (Inventory, error) {
	return inv.containsFilter("search", term, func(r Record) string { return r.ProductName })
}

// FilterByCategory returns records whose category contains term,
// case-insensitively.
func (inv Inventory) FilterByCategory(term string) (Inventory, error) {
	return inv.containsFilter("category", term, func(r Record) string { return r.Category })
}

// FilterByPriceRange returns records with min <= unit price <= max.
// min > max yields an empty result.
func (inv Inventory) FilterByPriceRange(min, max float64) (Inventory, error) {
	if inv.IsEmpty() {
		return nil, withOp(ErrEmptyInventory, "price range")
	}
	return inv.filter(func(r Record) bool {
		return r.UnitPrice >= min && r.UnitPrice <= max
	}), nil
}

// FilterByQuantityRange returns records with min <= quantity <= max.
// min > max yields an empty result.
func (inv Inventory) FilterByQuantityRange(min, max int) (Inventory, error) {
	if inv.IsEmpty() {
		return nil, withOp(ErrEmptyInventory, "quantity range")
	}
	lo, hi := float64(min), float64(max)
	return inv.filter(func(r Record) bool {
		return r.Quantity >= lo && r.Quantity <= hi
	}), nil
}

// containsFilter checks the term before the inventory so a blank term is
// reported as such regardless of what is loaded.
func (inv Inventory) containsFilter(op, term string, field func(Record) string) (Inventory, error) {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return nil, withOp(ErrEmptyTerm, op)
	}
	if inv.IsEmpty() {
		return nil, withOp(ErrEmptyInventory, op)
	}
	return inv.filter(func(r Record) bool {
		return strings.Contains(strings.ToLower(field(r)), needle)
	}), nil
}

func (inv Inventory) filter(keep func(Record) bool) Inventory {
	out := Inventory{}
	for _, r := range inv {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
