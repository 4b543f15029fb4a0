package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"bazaar_back_end/internal/models"
)

const productIndex = "products"

// ProductIndex keeps the search index in sync with the catalog.
type ProductIndex interface {
	Index(ctx context.Context, p models.Product) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]models.Product, error)
}

type ElasticIndex struct {
	Client *elasticsearch.Client
}

func NewElasticIndex(client *elasticsearch.Client) *ElasticIndex {
	return &ElasticIndex{Client: client}
}

func (e *ElasticIndex) Index(ctx context.Context, p models.Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      productIndex,
		DocumentID: p.ID.String(),
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, e.Client)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index product %s: %s", p.ID, res.String())
	}
	return nil
}

func (e *ElasticIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: productIndex, DocumentID: id, Refresh: "true"}
	res, err := req.Do(ctx, e.Client)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("remove product %s: %s", id, res.String())
	}
	return nil
}

// Search runs a multi_match over the text fields and unmarshals the hit
// sources back into products.
func (e *ElasticIndex) Search(ctx context.Context, query string) ([]models.Product, error) {
	var buf bytes.Buffer
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name", "description", "category", "tags"},
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	req := esapi.SearchRequest{Index: []string{productIndex}, Body: &buf}
	res, err := req.Do(ctx, e.Client)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, errors.New("search request failed: " + res.String())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		products = append(products, hit.Source)
	}
	return products, nil
}
