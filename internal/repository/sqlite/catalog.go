package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/okatyev/catalogwatch/internal/models"
	"github.com/okatyev/catalogwatch/internal/repository"
	"github.com/shopspring/decimal"
)

// GetPageHash returns the stored page hash for a catalog.
func (r *Repository) GetPageHash(ctx context.Context, catalogID string) (string, error) {
	const opn = "repository.sqlite.GetPageHash"

	var pageHash string
	err := r.db.QueryRowContext(ctx, "SELECT page_hash FROM catalog_state WHERE catalog_id = ?", catalogID).
		Scan(&pageHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", repository.ErrStateNotFound
		}
		return "", fmt.Errorf("%s: failed to get page hash: %w", opn, err)
	}

	return pageHash, nil
}

// GetActiveProducts implements an interface method for retrieving the
// active stored products of a catalog, price history included.
func (r *Repository) GetActiveProducts(ctx context.Context, catalogID string) ([]models.StoredProduct, error) {
	const opn = "repository.sqlite.GetActiveProducts"

	// 1. Get all active products of the catalog.
	rows, err := r.db.QueryContext(
		ctx,
		"SELECT id, title, url, price, status FROM products WHERE catalog_id = ? AND status = ? ORDER BY id",
		catalogID, string(models.StatusActive),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get products: %w", opn, err)
	}
	defer rows.Close()

	// 2. Scan every row into a StoredProduct structure.
	var products []models.StoredProduct
	for rows.Next() {
		var (
			p     models.StoredProduct
			price sql.NullString
		)
		if err = rows.Scan(&p.ID, &p.Title, &p.URL, &price, &p.Status); err != nil {
			return nil, fmt.Errorf("%s: failed to scan product: %w", opn, err)
		}
		if price.Valid {
			parsed, perr := decimal.NewFromString(price.String)
			if perr != nil {
				return nil, fmt.Errorf("%s: invalid stored price %q: %w", opn, price.String, perr)
			}
			p.Price = &parsed
		}
		products = append(products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	// 3. Attach the price history of the catalog's active products.
	if err = r.attachPriceHistory(ctx, catalogID, products); err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return products, nil
}

// attachPriceHistory loads the full price history for one catalog in a
// single query and distributes it over the given products.
func (r *Repository) attachPriceHistory(ctx context.Context, catalogID string, products []models.StoredProduct) error {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT h.product_id, h.price, h.recorded_at
		 FROM price_history h
		 JOIN products p ON p.id = h.product_id
		 WHERE p.catalog_id = ?
		 ORDER BY h.recorded_at, h.id`,
		catalogID,
	)
	if err != nil {
		return fmt.Errorf("failed to get price history: %w", err)
	}
	defer rows.Close()

	history := make(map[string][]models.PricePoint)
	for rows.Next() {
		var (
			productID string
			price     string
			recorded  time.Time
		)
		if err = rows.Scan(&productID, &price, &recorded); err != nil {
			return fmt.Errorf("failed to scan price history: %w", err)
		}
		parsed, perr := decimal.NewFromString(price)
		if perr != nil {
			return fmt.Errorf("invalid historical price %q: %w", price, perr)
		}
		history[productID] = append(history[productID], models.PricePoint{Date: recorded, Price: parsed})
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("rows iteration error: %w", err)
	}

	for i := range products {
		products[i].PriceHistory = history[products[i].ID]
	}

	return nil
}

// ApplyDiff atomically persists the outcome of one comparison run:
// new products are inserted with fresh ids, removed products have their
// status flipped, price changes update the current price and append a
// history row, and title changes are written through.
func (r *Repository) ApplyDiff(ctx context.Context, catalogID, pageHash string, diff *models.CatalogDiff) error {
	const opn = "repository.sqlite.ApplyDiff"

	now := time.Now().UTC()

	// 1. Begin transaction.
	tx, err := r.db.BeginTx(ctx, nil) //nolint:varnamelen // tx its a default naming for transaction
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", opn, err)
	}
	defer tx.Rollback() //nolint:errcheck // Because in Go, it's common practice to ignore the Rollback() error in a defer, since if the transaction committed successfully, the rollback would just return sql.ErrTxDone and it's not useful to log or act on.

	// 2. Update (or insert) the page hash of the catalog.
	_, err = tx.ExecContext(
		ctx,
		"INSERT OR REPLACE INTO catalog_state (catalog_id, page_hash) VALUES (?, ?)",
		catalogID, pageHash,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to update page hash: %w", opn, err)
	}

	// 3. Insert every new product with a fresh id and its first history row.
	insertStmt, err := tx.PrepareContext(
		ctx,
		"INSERT INTO products (id, catalog_id, title, url, price, status) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("%s: failed to prepare insert statement: %w", opn, err)
	}
	defer insertStmt.Close()

	historyStmt, err := tx.PrepareContext(
		ctx,
		"INSERT INTO price_history (product_id, price, recorded_at) VALUES (?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("%s: failed to prepare history statement: %w", opn, err)
	}
	defer historyStmt.Close()

	for _, rec := range diff.NewProducts {
		productID := uuid.NewString()
		if _, err = insertStmt.ExecContext(
			ctx, productID, catalogID, rec.Title, rec.URL, priceValue(rec.Price), string(models.StatusActive),
		); err != nil {
			return fmt.Errorf("%s: failed to insert product with url %s: %w", opn, rec.URL, err)
		}
		if rec.Price != nil {
			if _, err = historyStmt.ExecContext(ctx, productID, rec.Price.String(), now); err != nil {
				return fmt.Errorf("%s: failed to insert price history for new product: %w", opn, err)
			}
		}
	}

	// 4. Flip removed products to the removed status.
	for _, product := range diff.RemovedProducts {
		if _, err = tx.ExecContext(
			ctx, "UPDATE products SET status = ? WHERE id = ?", string(models.StatusRemoved), product.ID,
		); err != nil {
			return fmt.Errorf("%s: failed to mark product %s as removed: %w", opn, product.ID, err)
		}
	}

	// 5. Write through price changes and append history rows.
	for _, change := range diff.PriceChanges {
		if _, err = tx.ExecContext(
			ctx, "UPDATE products SET price = ? WHERE id = ?", priceValue(change.NewPrice), change.ProductID,
		); err != nil {
			return fmt.Errorf("%s: failed to update price of product %s: %w", opn, change.ProductID, err)
		}
		if change.NewPrice != nil {
			if _, err = historyStmt.ExecContext(ctx, change.ProductID, change.NewPrice.String(), now); err != nil {
				return fmt.Errorf("%s: failed to insert price history for product %s: %w", opn, change.ProductID, err)
			}
		}
	}

	// 6. Write through the remaining field changes.
	for _, change := range diff.OtherChanges {
		if change.Field != "title" {
			continue
		}
		if _, err = tx.ExecContext(
			ctx, "UPDATE products SET title = ? WHERE id = ?", change.NewValue, change.ProductID,
		); err != nil {
			return fmt.Errorf("%s: failed to update title of product %s: %w", opn, change.ProductID, err)
		}
	}

	// 7. If all operations went through without errors - confirm the transaction.
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", opn, err)
	}

	return nil
}

// priceValue maps an optional decimal to its SQL representation.
func priceValue(price *decimal.Decimal) any {
	if price == nil {
		return nil
	}

	return price.String()
}
