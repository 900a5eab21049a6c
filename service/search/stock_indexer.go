package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"

	"catalog.GO/config"
	inventoryEntity "catalog.GO/model/entity/inventory"
	inventoryService "catalog.GO/service/inventory"
)

// StockSource supplies the summaries to publish. *inventory.Ledger satisfies it.
type StockSource interface {
	Items(ctx context.Context) ([]inventoryEntity.ItemRef, error)
	GetStock(ctx context.Context, item inventoryEntity.ItemRef) (*inventoryService.StockSummary, error)
	SKUOf(ctx context.Context, item inventoryEntity.ItemRef) (string, error)
}

// StockDocument is the indexed shape of a stock summary.
type StockDocument struct {
	SKU               string    `json:"sku"`
	ItemType          string    `json:"item_type"`
	ItemID            uint      `json:"item_id"`
	Quantity          int       `json:"quantity"`
	Available         int       `json:"available"`
	Reserved          int       `json:"reserved"`
	Status            string    `json:"status"`
	BackordersAllowed bool      `json:"backorders_allowed"`
	IndexedAt         time.Time `json:"indexed_at"`
}

func NewDocument(sku string, s *inventoryService.StockSummary, at time.Time) StockDocument {
	return StockDocument{
		SKU:               sku,
		ItemType:          string(s.ItemType),
		ItemID:            s.ItemID,
		Quantity:          s.TotalQuantity,
		Available:         s.TotalAvailable,
		Reserved:          s.TotalReserved,
		Status:            string(s.Status),
		BackordersAllowed: s.BackordersAllowed,
		IndexedAt:         at,
	}
}

// StockIndexer publishes stock summaries to the <prefix>_stock index.
type StockIndexer struct {
	client *elasticsearch.Client
	index  string
	source StockSource
	logger *zap.Logger
	now    func() time.Time
}

// NewClientFromEnv connects to ELASTICSEARCH_HOST (default localhost:9200).
func NewClientFromEnv() (*elasticsearch.Client, error) {
	host := config.GetEnv("ELASTICSEARCH_HOST", "http://localhost:9200")
	return elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{host}})
}

func NewStockIndexer(client *elasticsearch.Client, prefix string, source StockSource, logger *zap.Logger) *StockIndexer {
	if prefix == "" {
		prefix = "catalog"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockIndexer{
		client: client,
		index:  prefix + "_stock",
		source: source,
		logger: logger,
		now:    time.Now,
	}
}

func (s *StockIndexer) Index() string { return s.index }

// IndexItem loads the item's summary and writes it as one document.
func (s *StockIndexer) IndexItem(ctx context.Context, item inventoryEntity.ItemRef) error {
	doc, err := s.document(ctx, item)
	if err != nil {
		return err
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	res, err := s.client.Index(
		s.index,
		bytes.NewReader(body),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(item.String()),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch error: %s", res.String())
	}
	return nil
}

// Reindex publishes every stocked item with one bulk request and returns
// how many documents were sent.
func (s *StockIndexer) Reindex(ctx context.Context) (int, error) {
	items, err := s.source.Items(ctx)
	if err != nil {
		return 0, fmt.Errorf("list stocked items: %w", err)
	}
	if len(items) == 0 {
		return 0, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	sent := 0
	for _, item := range items {
		doc, err := s.document(ctx, item)
		if err != nil {
			s.logger.Warn("skipping item in reindex", zap.Stringer("item", item), zap.Error(err))
			continue
		}
		meta := map[string]interface{}{"index": map[string]string{"_index": s.index, "_id": item.String()}}
		if err := enc.Encode(meta); err != nil {
			return 0, err
		}
		if err := enc.Encode(doc); err != nil {
			return 0, err
		}
		sent++
	}
	if sent == 0 {
		return 0, nil
	}

	res, err := s.client.Bulk(
		bytes.NewReader(buf.Bytes()),
		s.client.Bulk.WithContext(ctx),
		s.client.Bulk.WithIndex(s.index),
	)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var bulk struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			ID    string `json:"_id"`
			Error *struct {
				Reason string `json:"reason"`
			} `json:"error"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bulk); err != nil {
		return 0, err
	}
	if bulk.Errors {
		var failed []string
		for _, it := range bulk.Items {
			for _, r := range it {
				if r.Error != nil {
					failed = append(failed, r.ID+": "+r.Error.Reason)
				}
			}
		}
		return sent - len(failed), fmt.Errorf("bulk index failed for %d documents: %s", len(failed), strings.Join(failed, "; "))
	}
	s.logger.Info("stock reindexed", zap.String("index", s.index), zap.Int("documents", sent))
	return sent, nil
}

func (s *StockIndexer) document(ctx context.Context, item inventoryEntity.ItemRef) (StockDocument, error) {
	summary, err := s.source.GetStock(ctx, item)
	if err != nil {
		return StockDocument{}, err
	}
	sku, err := s.source.SKUOf(ctx, item)
	if err != nil {
		return StockDocument{}, err
	}
	return NewDocument(sku, summary, s.now()), nil
}
