package search

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventoryEntity "catalog.GO/model/entity/inventory"
	inventoryService "catalog.GO/service/inventory"
)

type fakeSource struct {
	items []inventoryEntity.ItemRef
	skus  map[inventoryEntity.ItemRef]string
}

func (f *fakeSource) Items(context.Context) ([]inventoryEntity.ItemRef, error) { return f.items, nil }

func (f *fakeSource) GetStock(_ context.Context, item inventoryEntity.ItemRef) (*inventoryService.StockSummary, error) {
	return &inventoryService.StockSummary{
		ItemType: item.Kind, ItemID: item.ID,
		TotalQuantity: 10, TotalAvailable: 7, TotalReserved: 3,
		Status: inventoryEntity.StatusInStock, HasStock: true,
	}, nil
}

func (f *fakeSource) SKUOf(_ context.Context, item inventoryEntity.ItemRef) (string, error) {
	sku, ok := f.skus[item]
	if !ok {
		return "", errors.New("no sku")
	}
	return sku, nil
}

type recorded struct {
	method, path string
	body         string
}

func fakeES(t *testing.T, bulkResponse string) (*elasticsearch.Client, func() []recorded) {
	t.Helper()
	url, requests := fakeESServer(t, bulkResponse)
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{url}})
	require.NoError(t, err)
	return client, requests
}

func fakeESServer(t *testing.T, bulkResponse string) (string, func() []recorded) {
	t.Helper()
	var mu sync.Mutex
	var reqs []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/" {
			io.WriteString(w, `{"version":{"number":"8.15.0"}}`)
			return
		}
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recorded{r.Method, r.URL.Path, string(body)})
		mu.Unlock()
		if strings.HasSuffix(r.URL.Path, "/_bulk") {
			io.WriteString(w, bulkResponse)
			return
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"result":"created"}`)
	}))
	t.Cleanup(srv.Close)

	return srv.URL, func() []recorded {
		mu.Lock()
		defer mu.Unlock()
		return append([]recorded(nil), reqs...)
	}
}

func TestIndexItem(t *testing.T) {
	client, requests := fakeES(t, `{}`)
	item := inventoryEntity.Variation(4)
	src := &fakeSource{skus: map[inventoryEntity.ItemRef]string{item: "TEE-RED-M"}}
	idx := NewStockIndexer(client, "shop", src, nil)
	idx.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	require.NoError(t, idx.IndexItem(context.Background(), item))

	reqs := requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPut, reqs[0].method)
	assert.Equal(t, "/shop_stock/_doc/variation:4", reqs[0].path)

	var doc StockDocument
	require.NoError(t, json.Unmarshal([]byte(reqs[0].body), &doc))
	assert.Equal(t, "TEE-RED-M", doc.SKU)
	assert.Equal(t, "variation", doc.ItemType)
	assert.Equal(t, 7, doc.Available)
	assert.Equal(t, "in_stock", doc.Status)
}

func TestReindex_BulkSkipsItemsWithoutSKU(t *testing.T) {
	client, requests := fakeES(t, `{"errors":false,"items":[]}`)
	src := &fakeSource{
		items: []inventoryEntity.ItemRef{inventoryEntity.Product(1), inventoryEntity.Product(2), inventoryEntity.Variation(3)},
		skus: map[inventoryEntity.ItemRef]string{
			inventoryEntity.Product(1):   "SIMPLE",
			inventoryEntity.Variation(3): "TEE-M",
		},
	}
	idx := NewStockIndexer(client, "", src, nil)
	assert.Equal(t, "catalog_stock", idx.Index())

	n, err := idx.Reindex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	reqs := requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/catalog_stock/_bulk", reqs[0].path)

	var lines []string
	sc := bufio.NewScanner(strings.NewReader(reqs[0].body))
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], `"_id":"product:1"`)
	assert.Contains(t, lines[3], `"sku":"TEE-M"`)
}

func TestReindex_ReportsBulkFailures(t *testing.T) {
	client, _ := fakeES(t, `{"errors":true,"items":[{"index":{"_id":"product:1","error":{"reason":"mapper_parsing_exception"}}}]}`)
	src := &fakeSource{
		items: []inventoryEntity.ItemRef{inventoryEntity.Product(1)},
		skus:  map[inventoryEntity.ItemRef]string{inventoryEntity.Product(1): "SIMPLE"},
	}
	n, err := NewStockIndexer(client, "shop", src, nil).Reindex(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mapper_parsing_exception")
	assert.Equal(t, 0, n)
}

func TestReindex_NothingStocked(t *testing.T) {
	client, requests := fakeES(t, `{}`)
	n, err := NewStockIndexer(client, "shop", &fakeSource{}, nil).Reindex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Empty(t, requests())
}

func TestNewClientFromEnv_UsesElasticsearchHost(t *testing.T) {
	url, requests := fakeESServer(t, `{}`)
	t.Setenv("ELASTICSEARCH_HOST", url)

	client, err := NewClientFromEnv()
	require.NoError(t, err)
	item := inventoryEntity.Product(2)
	idx := NewStockIndexer(client, "", &fakeSource{skus: map[inventoryEntity.ItemRef]string{item: "MUG"}}, nil)
	require.NoError(t, idx.IndexItem(context.Background(), item))

	reqs := requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/catalog_stock/_doc/product:2", reqs[0].path)
}
