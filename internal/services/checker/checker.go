package checker

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/okatyev/catalogwatch/internal/models"
	"github.com/okatyev/catalogwatch/internal/parser"
	"github.com/okatyev/catalogwatch/internal/repository"
	"github.com/okatyev/catalogwatch/internal/repository/sqlite"
	"github.com/okatyev/catalogwatch/internal/services/differ"
)

// Checker is an orchestrator that performs a full verification cycle
// for one catalog: fetch, compare, persist.
type Checker struct {
	log       *slog.Logger
	parser    parser.SnapshotParser
	repo      sqlite.CatalogRepository
	differ    *differ.Differ
	catalogID string
}

type Interface interface {
	// CheckForUpdates performs the full catalog comparison algorithm.
	CheckForUpdates(ctx context.Context) (*models.CatalogDiff, error)
}

// NewChecker creates a new Checker instance.
func NewChecker(
	log *slog.Logger,
	snapshotParser parser.SnapshotParser,
	repo sqlite.CatalogRepository,
	catalogID string,
) *Checker {
	return &Checker{
		log:       log,
		parser:    snapshotParser,
		repo:      repo,
		differ:    differ.New(log),
		catalogID: catalogID,
	}
}

// CheckForUpdates performs the full catalog comparison algorithm.
func (c *Checker) CheckForUpdates(ctx context.Context) (*models.CatalogDiff, error) {
	const opn = "checker.CheckForUpdates"
	log := c.log.With("op", opn, "catalog_id", c.catalogID)

	// 1. Retrieving the listing page and calculating a new hash
	log.InfoContext(ctx, "Fetching catalog page to check for updates")
	resp, err := c.parser.GetHTMLResponse(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get html response: %w", opn, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read response body: %w", opn, err)
	}

	newPageHash := calculateHash(body)
	log.DebugContext(ctx, "Calculated new page hash", "hash", newPageHash)

	// 2. Getting the old page hash from the database
	oldPageHash, err := c.repo.GetPageHash(ctx, c.catalogID)
	if err != nil && !errors.Is(err, repository.ErrStateNotFound) {
		return nil, fmt.Errorf("%s: failed to get old page hash: %w", opn, err)
	}

	// 3. Hash comparison
	if err == nil && oldPageHash == newPageHash {
		log.InfoContext(ctx, "Page hash has not changed. No updates.")
		return &models.CatalogDiff{}, nil
	}
	log.InfoContext(ctx, "Page hash differs or first run. Starting full analysis...")

	// 4. Full page parsing
	snapshot, err := c.parser.ParseSnapshotResponse(ctx, io.NopCloser(bytes.NewReader(body)))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse snapshot from new response: %w", opn, err)
	}
	log.InfoContext(ctx, "Successfully parsed snapshot", "count", len(snapshot))

	// 5. Loading stored state and classifying every change
	stored, err := c.repo.GetActiveProducts(ctx, c.catalogID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get stored products: %w", opn, err)
	}

	diff := c.differ.Compute(c.catalogID, stored, snapshot)
	log.InfoContext(
		ctx,
		"Change detection complete",
		"new", len(diff.NewProducts),
		"removed", len(diff.RemovedProducts),
		"price_changes", len(diff.PriceChanges),
		"other_changes", len(diff.OtherChanges),
	)

	// 6. Persisting the outcome and returning the result
	if err = c.repo.ApplyDiff(ctx, c.catalogID, newPageHash, diff); err != nil {
		return nil, fmt.Errorf("%s: failed to apply diff in repository: %w", opn, err)
	}
	log.InfoContext(ctx, "Successfully applied diff in repository")

	return diff, nil
}

// calculateHash calculates the SHA256 hash for a slice of bytes.
func calculateHash(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}
