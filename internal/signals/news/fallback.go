// internal/signals/news/fallback.go
package news

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	apperrors "procurement-workers/internal/common/errors"
)

// ArticleIndex searches previously ingested articles in Elasticsearch.
type ArticleIndex struct {
	client *elasticsearch.Client
	index  string
	size   int
}

func NewArticleIndex(client *elasticsearch.Client, index string, size int) *ArticleIndex {
	if size <= 0 {
		size = 20
	}
	return &ArticleIndex{client: client, index: index, size: size}
}

func buildArticleQuery(query string) map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"title^2", "description"},
			},
		},
		"sort": []interface{}{"_score", map[string]interface{}{"publishedAt": "desc"}},
	}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source Article `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search returns up to size articles matching query.
func (a *ArticleIndex) Search(ctx context.Context, query string) ([]Article, error) {
	body, err := json.Marshal(buildArticleQuery(query))
	if err != nil {
		return nil, err
	}

	size := a.size
	req := esapi.SearchRequest{
		Index: []string{a.index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}
	res, err := req.Do(ctx, a.client)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, apperrors.NewSearchQueryFailedError(a.index, fmt.Errorf("status %s", res.Status()))
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	articles := make([]Article, 0, len(r.Hits.Hits))
	for _, h := range r.Hits.Hits {
		articles = append(articles, h.Source)
	}
	return articles, nil
}
