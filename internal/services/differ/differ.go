package differ

import (
	"log/slog"
	"strings"

	"github.com/okatyev/catalogwatch/internal/models"
	"github.com/shopspring/decimal"
)

// MatchStrategy names how snapshot records are associated with stored
// products. Only exact normalized-URL matching is implemented; a
// title-similarity fallback was considered and deliberately left out,
// since it would turn a rename at the same URL into a remove+add pair
// and change alerting semantics.
type MatchStrategy int

const MatchExactNormalizedURL MatchStrategy = iota

// priceTolerance absorbs float/rounding noise from upstream currency
// conversion. A delta must exceed one cent to count as a change.
var priceTolerance = decimal.NewFromFloat(0.01)

var hundred = decimal.NewFromInt(100)

// Differ classifies every change between a stored catalog state and a
// fresh snapshot. It is a pure computation: no I/O, no shared state,
// safe to run for independent catalogs in parallel.
type Differ struct {
	log      *slog.Logger
	strategy MatchStrategy
}

// New creates a new Differ instance.
func New(log *slog.Logger) *Differ {
	return &Differ{log: log, strategy: MatchExactNormalizedURL}
}

// Compute compares the active stored products of one catalog against a
// new snapshot and returns the classified diff. The catalogID is used
// for log correlation only. Nil slices are treated as empty.
func (d *Differ) Compute(
	catalogID string,
	stored []models.StoredProduct,
	snapshot []models.SnapshotRecord,
) *models.CatalogDiff {
	const opn = "differ.Compute"
	log := d.log.With("op", opn, "catalog_id", catalogID)

	index := d.buildIndex(log, stored)

	diff := &models.CatalogDiff{}
	seen := make(map[string]struct{}, len(index))

	for _, rec := range snapshot {
		key := normalizeURL(rec.URL)
		title := strings.TrimSpace(rec.Title)

		// No usable URL and no usable title: the record carries no
		// matchable identity and must not appear in any bucket.
		if key == "" && title == "" {
			log.Debug("Skipping snapshot record without identity")
			continue
		}

		product, found := index[key]
		if !found {
			diff.NewProducts = append(diff.NewProducts, rec)
			continue
		}

		seen[product.ID] = struct{}{}

		// Price and title checks are independent: one matched product
		// may contribute both kinds of change in a single run.
		if pricesDiffer(product.Price, rec.Price) {
			diff.PriceChanges = append(diff.PriceChanges, models.PriceChange{
				ProductID:     product.ID,
				Title:         product.Title,
				OldPrice:      product.Price,
				NewPrice:      rec.Price,
				ChangePercent: changePercent(product.Price, rec.Price),
				URL:           product.URL,
			})
		}

		if title != "" && title != product.Title {
			diff.OtherChanges = append(diff.OtherChanges, models.OtherChange{
				ProductID: product.ID,
				Field:     "title",
				OldValue:  product.Title,
				NewValue:  title,
				URL:       product.URL,
			})
		}
	}

	// A product is "removed" only in the context of the complete new
	// snapshot, so this pass must run strictly after the loop above.
	for i := range stored {
		if stored[i].Status != models.StatusActive {
			continue
		}
		if _, matched := seen[stored[i].ID]; !matched {
			diff.RemovedProducts = append(diff.RemovedProducts, stored[i])
		}
	}

	log.Debug(
		"Diff computed",
		"new", len(diff.NewProducts),
		"removed", len(diff.RemovedProducts),
		"price_changes", len(diff.PriceChanges),
		"other_changes", len(diff.OtherChanges),
	)

	return diff
}

// buildIndex maps normalized URL -> stored product, active products only.
// Non-active products are already considered gone: they must neither
// resurface as removed again nor match new snapshot entries. The index
// is rebuilt on every invocation and never shared across catalogs.
func (d *Differ) buildIndex(log *slog.Logger, stored []models.StoredProduct) map[string]*models.StoredProduct {
	index := make(map[string]*models.StoredProduct, len(stored))
	for i := range stored {
		if stored[i].Status != models.StatusActive {
			continue
		}
		key := normalizeURL(stored[i].URL)
		if _, dup := index[key]; dup {
			// Upstream data-integrity anomaly. Last one wins; the run
			// must not fail over it.
			log.Warn("Duplicate normalized URL among active stored products", "url", stored[i].URL, "id", stored[i].ID)
		}
		index[key] = &stored[i]
	}

	return index
}

// normalizeURL produces the canonical matching key: trim, lowercase,
// drop query string and fragment, strip a single trailing slash.
// Known limitation: http and https are not unified, so a scheme change
// surfaces as a remove+add pair.
func normalizeURL(raw string) string {
	url := strings.ToLower(strings.TrimSpace(raw))

	if idx := strings.Index(url, "?"); idx >= 0 {
		url = url[:idx]
	}
	if idx := strings.Index(url, "#"); idx >= 0 {
		url = url[:idx]
	}

	return strings.TrimSuffix(url, "/")
}

// pricesDiffer applies the tolerant comparison rule: both absent means
// unchanged, exactly one absent is a meaningful state transition, and
// two present prices differ only beyond the one-cent tolerance.
func pricesDiffer(oldPrice, newPrice *decimal.Decimal) bool {
	if oldPrice == nil && newPrice == nil {
		return false
	}
	if oldPrice == nil || newPrice == nil {
		return true
	}

	return oldPrice.Sub(*newPrice).Abs().GreaterThan(priceTolerance)
}

// changePercent computes the signed percentage delta, rounded to two
// decimals. It is undefined (nil) when either price is absent or the
// old price is zero: a division by an undefined baseline is never
// attempted.
func changePercent(oldPrice, newPrice *decimal.Decimal) *decimal.Decimal {
	if oldPrice == nil || newPrice == nil || oldPrice.IsZero() {
		return nil
	}

	percent := newPrice.Sub(*oldPrice).Div(*oldPrice).Mul(hundred).Round(2)

	return &percent
}
