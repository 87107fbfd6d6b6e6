package models

import "github.com/shopspring/decimal"

// PriceChange - a matched stored product whose price moved.
// ChangePercent is nil when either price is absent or the old price is zero.
type PriceChange struct {
	ProductID     string
	Title         string
	OldPrice      *decimal.Decimal
	NewPrice      *decimal.Decimal
	ChangePercent *decimal.Decimal
	URL           string
}

// OtherChange - a non-price field change on a matched stored product.
// Field currently only takes the value "title".
type OtherChange struct {
	ProductID string
	Field     string
	OldValue  string
	NewValue  string
	URL       string
}

// CatalogDiff - comparison result: all classified changes between a
// stored catalog state and a fresh snapshot.
type CatalogDiff struct {
	NewProducts     []SnapshotRecord
	RemovedProducts []StoredProduct
	PriceChanges    []PriceChange
	OtherChanges    []OtherChange
}

// TotalChanges is the number of entries across all four buckets.
func (d *CatalogDiff) TotalChanges() int {
	return len(d.NewProducts) + len(d.RemovedProducts) + len(d.PriceChanges) + len(d.OtherChanges)
}

// HasChanges reports whether the diff contains anything at all.
func (d *CatalogDiff) HasChanges() bool {
	return d.TotalChanges() > 0
}

// DiffSummary is a compact projection of a CatalogDiff for API responses
// and logging: per-bucket counts plus the full price change list. Detail
// for the other buckets stays on the full structure.
type DiffSummary struct {
	NewCount         int
	RemovedCount     int
	PriceChangeCount int
	OtherChangeCount int
	TotalChanges     int
	HasChanges       bool
	PriceChanges     []PriceChange
}

// Summary builds the compact view without re-deriving anything later.
func (d *CatalogDiff) Summary() DiffSummary {
	return DiffSummary{
		NewCount:         len(d.NewProducts),
		RemovedCount:     len(d.RemovedProducts),
		PriceChangeCount: len(d.PriceChanges),
		OtherChangeCount: len(d.OtherChanges),
		TotalChanges:     d.TotalChanges(),
		HasChanges:       d.HasChanges(),
		PriceChanges:     d.PriceChanges,
	}
}
