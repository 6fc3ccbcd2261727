package core

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		columns     []string
		wantValid   bool
		wantMissing []string
	}{
		{
			name:      "all required columns",
			columns:   []string{"nom du produit", "catégorie", "quantité", "prix unitaire"},
			wantValid: true,
		},
		{
			name:      "order does not matter",
			columns:   []string{"prix unitaire", "quantité", "nom du produit", "catégorie"},
			wantValid: true,
		},
		{
			name:      "extra columns permitted",
			columns:   []string{"sku", "nom du produit", "catégorie", "quantité", "prix unitaire", "fournisseur"},
			wantValid: true,
		},
		{
			name:      "whitespace around header cells",
			columns:   []string{" nom du produit ", "catégorie ", " quantité", "prix unitaire"},
			wantValid: true,
		},
		{
			name:        "missing one column",
			columns:     []string{"nom du produit", "catégorie", "prix unitaire"},
			wantMissing: []string{"quantité"},
		},
		{
			name:        "missing columns reported in canonical order",
			columns:     []string{"quantité", "extra"},
			wantMissing: []string{"nom du produit", "catégorie", "prix unitaire"},
		},
		{
			name:        "no columns",
			columns:     nil,
			wantMissing: []string{"nom du produit", "catégorie", "quantité", "prix unitaire"},
		},
		{
			name:        "matching is case-sensitive",
			columns:     []string{"Nom du produit", "catégorie", "quantité", "prix unitaire"},
			wantMissing: []string{"nom du produit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.columns)
			if got.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", got.Valid, tt.wantValid)
			}
			if !equalStrings(got.MissingColumns, tt.wantMissing) {
				t.Errorf("MissingColumns = %v, want %v", got.MissingColumns, tt.wantMissing)
			}
		})
	}
}

func TestValidationResult_Err(t *testing.T) {
	if err := Validate(RequiredColumns).Err("ok.csv"); err != nil {
		t.Errorf("valid result Err() = %v, want nil", err)
	}

	err := Validate([]string{"nom du produit", "catégorie"}).Err("bad.csv")
	if err == nil {
		t.Fatal("invalid result Err() = nil, want error")
	}
	if KindOf(err) != KindValidation {
		t.Errorf("KindOf = %q, want %q", KindOf(err), KindValidation)
	}
	if !strings.Contains(err.Error(), "missing required columns: quantité, prix unitaire") {
		t.Errorf("error = %q, want missing column list", err.Error())
	}
}

func TestMakeHeaderIndex(t *testing.T) {
	idx := MakeHeaderIndex([]string{"a", " b ", "a"})
	if idx["a"] != 0 {
		t.Errorf("idx[a] = %d, want 0 (first occurrence wins)", idx["a"])
	}
	if idx["b"] != 1 {
		t.Errorf("idx[b] = %d, want 1", idx["b"])
	}
	if got := idx.cell([]string{"x"}, "b"); got != "" {
		t.Errorf("cell beyond row length = %q, want empty", got)
	}
}
