package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/entity"
	"github.com/oksasatya/go-ddd-supply-chain/pkg/helpers"
)

const productMapping = `{
  "mappings": {
    "properties": {
      "id":            {"type": "keyword"},
      "name":          {"type": "text"},
      "description":   {"type": "text"},
      "category":      {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "manufacturer":  {"type": "keyword"},
      "current_owner": {"type": "keyword"},
      "status":        {"type": "keyword"},
      "quantity":      {"type": "long"},
      "updated_at":    {"type": "date"}
    }
  }
}`

// ProductIndexer mirrors product state into an Elasticsearch index.
type ProductIndexer struct {
	es      *elasticsearch.Client
	index   string
	timeout time.Duration
}

func NewProductIndexer(es *elasticsearch.Client, index string) *ProductIndexer {
	return &ProductIndexer{es: es, index: index, timeout: 3 * time.Second}
}

// EnsureIndex creates the products index with its mapping if missing.
func (x *ProductIndexer) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()
	return helpers.EnsureESIndex(c, x.es, x.index, productMapping)
}

func (x *ProductIndexer) IndexProduct(ctx context.Context, p entity.Product) error {
	doc := map[string]any{
		"id":            p.ID,
		"name":          p.Name,
		"description":   p.Description,
		"category":      p.Category,
		"manufacturer":  p.Manufacturer,
		"current_owner": p.CurrentOwner,
		"status":        p.Status,
		"quantity":      p.Quantity,
		"updated_at":    p.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.index, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index product %s: %s", p.ID, res.Status())
	}
	return nil
}

// SearchProducts runs a multi_match over name, category and description and
// returns the matching ids, best first.
func (x *ProductIndexer) SearchProducts(ctx context.Context, q string, size int) ([]string, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^3", "category^2", "description"},
			},
		},
		"size":    size,
		"_source": false,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	res, err := x.es.Search(x.es.Search.WithContext(c), x.es.Search.WithIndex(x.index), x.es.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.IsError() {
		return nil, fmt.Errorf("search products: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.ID)
	}
	return out, nil
}
