package parser

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/okatyev/catalogwatch/internal/models"
	"github.com/shopspring/decimal"
)

// SnapshotParser produces a fresh catalog snapshot from a listing page.
type SnapshotParser interface {
	GetHTMLResponse(ctx context.Context) (*http.Response, error)
	ParseSnapshotResponse(ctx context.Context, inp io.ReadCloser) ([]models.SnapshotRecord, error)
}

type Parser struct {
	log     *slog.Logger
	client  *http.Client
	destURL string
}

func NewParser(log *slog.Logger, destinationURL string) *Parser {
	return &Parser{log: log, destURL: destinationURL, client: http.DefaultClient}
}

// ParseSnapshot fetches the catalog listing page and extracts all
// product records from it.
func (p *Parser) ParseSnapshot(ctx context.Context) ([]models.SnapshotRecord, error) {
	resp, err := p.GetHTMLResponse(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get html response: %w", err)
	}
	defer resp.Body.Close()

	return p.ParseSnapshotResponse(ctx, resp.Body)
}

func (p *Parser) GetHTMLResponse(ctx context.Context) (*http.Response, error) {
	reqURL, err := url.Parse(p.destURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse destination URL %s: %w", p.destURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new request %s: %w", reqURL.String(), err)
	}

	req.Header.Add("User-Agent", "Mozilla/5.0 (compatible; GoHttpClient/1.0)")

	p.log.DebugContext(ctx, "Send request", "method", req.Method, "URL", req.URL, "header", req.Header)

	res, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request %s: %w", p.destURL, err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code error: [%d] %s", res.StatusCode, res.Status)
	}

	p.log.InfoContext(ctx, "Successfully received http response", "status code", res.StatusCode)

	return res, nil
}

// ParseSnapshotResponse walks the product cards of a listing page. A card
// without a title and without a link still yields a record; filtering of
// identity-less records is the diff engine's responsibility.
func (p *Parser) ParseSnapshotResponse(ctx context.Context, inp io.ReadCloser) ([]models.SnapshotRecord, error) {
	doc, err := goquery.NewDocumentFromReader(inp)
	if err != nil {
		return nil, fmt.Errorf("data cannot be parsed as HTML: %w", err)
	}

	base, err := url.Parse(p.destURL)
	if err != nil {
		base = nil
	}

	var records []models.SnapshotRecord

	doc.Find(".product-card").Each(func(idx int, s *goquery.Selection) {
		record := models.SnapshotRecord{
			Title: strings.TrimSpace(s.Find(".product-title").First().Text()),
			URL:   p.resolveHref(base, s),
			Price: parsePrice(s.Find(".product-price").First().Text()),
		}

		if record.Title == "" && record.URL == "" {
			p.log.WarnContext(ctx, "product card has neither title nor link", "index", idx)
		}

		p.log.DebugContext(
			ctx,
			"Parsed product card",
			"Title", record.Title,
			"URL", record.URL,
			"HasPrice", record.Price != nil,
		)
		records = append(records, record)
	})

	return records, nil
}

// resolveHref extracts the card link and resolves it against the page URL.
func (p *Parser) resolveHref(base *url.URL, s *goquery.Selection) string {
	href := strings.TrimSpace(s.Find("a").First().AttrOr("href", ""))
	if href == "" || base == nil {
		return href
	}

	ref, err := url.Parse(href)
	if err != nil {
		return href
	}

	return base.ResolveReference(ref).String()
}

// parsePrice extracts a decimal amount from a price label like
// "$1,299.00" or "12,99 €". Returns nil when no amount can be read;
// an unpriced card is a valid state, not an error.
func parsePrice(text string) *decimal.Decimal {
	var cleaned strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			cleaned.WriteRune(r)
		}
	}

	raw := cleaned.String()
	if raw == "" {
		return nil
	}

	// With both separators present the comma is a thousands separator;
	// with a comma alone it is the decimal mark.
	if strings.Contains(raw, ".") {
		raw = strings.ReplaceAll(raw, ",", "")
	} else {
		raw = strings.ReplaceAll(raw, ",", ".")
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}

	return &price
}
