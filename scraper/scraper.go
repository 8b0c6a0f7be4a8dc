package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/vishyyyyyyyyy/ToyoQuest/config"
	"github.com/vishyyyyyyyyy/ToyoQuest/logger"
	"github.com/vishyyyyyyyyy/ToyoQuest/models"
	"github.com/vishyyyyyyyyy/ToyoQuest/utils"
)

const payloadAttr = "data-modal-content-json"

// Scraper walks the configured model pages and collects flattened vehicle
// records from their embedded structured-data blocks. Pages are fetched
// one at a time; a page that fails to load is logged and skipped, so a
// partial catalog is an expected outcome.
type Scraper struct {
	cfg  *config.Config
	http *resty.Client
}

func New(cfg *config.Config) *Scraper {
	client := resty.New()
	client.SetTimeout(time.Duration(cfg.Scraper.TimeoutSec) * time.Second)
	client.SetHeader("user-agent", cfg.Scraper.UserAgent)

	return &Scraper{cfg: cfg, http: client}
}

// Run fetches every configured URL and returns all records collected across
// the run, tagged with their source URL.
func (s *Scraper) Run(ctx context.Context) []models.VehicleRecord {
	var all []models.VehicleRecord

	for _, url := range s.cfg.Scraper.URLs {
		logger.Info("scraping page", "url", url)

		records, err := s.scrapePage(ctx, url)
		if err != nil {
			logger.Error("failed to scrape page, skipping", "url", url, "error", err)
			continue
		}

		logger.Info("records extracted", "url", url, "count", len(records))
		all = append(all, records...)
	}

	logger.Info("scrape complete", "total_records", len(all))
	return all
}

func (s *Scraper) scrapePage(ctx context.Context, url string) ([]models.VehicleRecord, error) {
	res, err := s.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	return ExtractRecords(doc, url), nil
}

// ExtractRecords pulls every structured-data payload out of a parsed page.
// Malformed payloads are logged and dropped without affecting their
// neighbors.
func ExtractRecords(doc *goquery.Document, sourceURL string) []models.VehicleRecord {
	var records []models.VehicleRecord

	doc.Find("[" + payloadAttr + "]").Each(func(_ int, sel *goquery.Selection) {
		raw := sel.AttrOr(payloadAttr, "")
		if raw == "" {
			return
		}

		payload, err := decodePayload(raw)
		if err != nil {
			logger.Warn("malformed structured-data payload, skipping element",
				"url", sourceURL, "error", err, "payload_preview", utils.Preview(raw, 100))
			return
		}

		baseModel, trimName := boundedLabelSearch(sel)
		records = append(records, payloadRecords(payload, baseModel, trimName, sourceURL)...)
	})

	return records
}

// decodePayload parses a payload with UseNumber so numeric values survive
// as their source literals.
func decodePayload(raw string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// payloadRecords turns one decoded payload into flat records. A list yields
// one record per item, an object yields one record, and a bare scalar is
// wrapped under a "value" column.
func payloadRecords(payload any, baseModel, trimName, sourceURL string) []models.VehicleRecord {
	tag := func(rec models.VehicleRecord) models.VehicleRecord {
		rec["base_model"] = baseModel
		rec["trim_name"] = trimName
		rec["source_url"] = sourceURL
		return rec
	}

	switch v := payload.(type) {
	case []any:
		records := make([]models.VehicleRecord, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				records = append(records, tag(Flatten(m)))
				continue
			}
			records = append(records, tag(models.VehicleRecord{"value": formatScalar(item)}))
		}
		return records
	case map[string]any:
		return []models.VehicleRecord{tag(Flatten(v))}
	default:
		return []models.VehicleRecord{tag(models.VehicleRecord{"value": formatScalar(v)})}
	}
}
