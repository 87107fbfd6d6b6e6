package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus is the lifecycle tag of a stored product.
type ProductStatus string

const (
	StatusActive  ProductStatus = "active"
	StatusRemoved ProductStatus = "removed"
)

// PricePoint is one historical price observation for a stored product.
type PricePoint struct {
	Date  time.Time
	Price decimal.Decimal
}

// StoredProduct is a previously persisted product record for a catalog.
// A nil Price means the price is unknown, which is distinct from zero.
type StoredProduct struct {
	ID           string
	Title        string
	URL          string
	Price        *decimal.Decimal
	Status       ProductStatus
	PriceHistory []PricePoint
}

// SnapshotRecord is one loosely structured product observation from a
// fresh crawl. It carries no id yet; the URL is the primary matching key.
type SnapshotRecord struct {
	Title string
	URL   string
	Price *decimal.Decimal
}
