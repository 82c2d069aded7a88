package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"skills-platform-backend/internal/domain"
	"skills-platform-backend/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
)

// indexSettings defines an ngram autocomplete analyzer so short prefixes
// and infix fragments match entity names.
const indexSettings = `{
  "settings": {
    "index": {
      "max_ngram_diff": 18
    },
    "analysis": {
      "analyzer": {
        "autocomplete_analyzer": {
          "tokenizer": "ngram_tokenizer",
          "filter": ["lowercase"]
        }
      },
      "tokenizer": {
        "ngram_tokenizer": {
          "type": "ngram",
          "min_gram": 2,
          "max_gram": 20,
          "token_chars": ["letter", "digit"]
        }
      }
    }
  },
  "mappings": {
    "properties": {
      "name": {
        "type": "text",
        "analyzer": "autocomplete_analyzer",
        "search_analyzer": "standard"
      }
    }
  }
}`

// searchIndex mirrors one entity type into its own Elasticsearch index.
type searchIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewDirectionIndex(es *elasticsearch.Client) domain.SearchIndex {
	return &searchIndex{es: es, index: "directions_index"}
}

func NewSkillIndex(es *elasticsearch.Client) domain.SearchIndex {
	return &searchIndex{es: es, index: "skills_index"}
}

func (s *searchIndex) CreateIndexIfNotExists(ctx context.Context) error {
	res, err := s.es.Indices.Exists([]string{s.index}, s.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to check index %s: %w", s.index, err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		return nil
	}

	createRes, err := s.es.Indices.Create(
		s.index,
		s.es.Indices.Create.WithBody(bytes.NewReader([]byte(indexSettings))),
		s.es.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to create index %s: %w", s.index, err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("failed to create index %s: %s", s.index, createRes.String())
	}
	return nil
}

// Count returns -1 on any backend error so callers treat the mirror as
// not-ready instead of empty.
func (s *searchIndex) Count(ctx context.Context) int64 {
	res, err := s.es.Count(
		s.es.Count.WithIndex(s.index),
		s.es.Count.WithContext(ctx),
	)
	if err != nil {
		return -1
	}
	defer res.Body.Close()

	if res.IsError() {
		return -1
	}

	var payload struct {
		Count int64 `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return -1
	}
	return payload.Count
}

func (s *searchIndex) BulkIndex(ctx context.Context, records []domain.SearchRecord) error {
	var buf bytes.Buffer
	for _, record := range records {
		if record.ID == 0 || record.Name == "" {
			continue
		}
		meta := fmt.Sprintf(`{"index":{"_index":%q,"_id":"%d"}}`, s.index, record.ID)
		doc, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal record %d: %w", record.ID, err)
		}
		buf.WriteString(meta)
		buf.WriteByte('\n')
		buf.Write(doc)
		buf.WriteByte('\n')
	}

	if buf.Len() == 0 {
		return nil
	}

	res, err := s.es.Bulk(
		bytes.NewReader(buf.Bytes()),
		s.es.Bulk.WithContext(ctx),
		s.es.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("bulk index into %s failed: %w", s.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk index into %s failed: %s", s.index, res.String())
	}
	return nil
}

func (s *searchIndex) Index(ctx context.Context, id int64, name string) error {
	doc, err := json.Marshal(domain.SearchRecord{ID: id, Name: name})
	if err != nil {
		return fmt.Errorf("failed to marshal record %d: %w", id, err)
	}

	res, err := s.es.Index(
		s.index,
		bytes.NewReader(doc),
		s.es.Index.WithDocumentID(strconv.FormatInt(id, 10)),
		s.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to index %d into %s: %w", id, s.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("failed to index %d into %s: %s", id, s.index, res.String())
	}
	return nil
}

func (s *searchIndex) Delete(ctx context.Context, id int64) error {
	res, err := s.es.Delete(
		s.index,
		strconv.FormatInt(id, 10),
		s.es.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to delete %d from %s: %w", id, s.index, err)
	}
	defer res.Body.Close()

	// A missing document is fine, the mirror is eventually consistent.
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("failed to delete %d from %s: %s", id, s.index, res.String())
	}
	return nil
}

func (s *searchIndex) Search(ctx context.Context, name string, page, perPage int) (*domain.Pagination[domain.SearchRecord], error) {
	page, perPage = domain.NormalizePagination(page, perPage)

	query := map[string]any{
		"from":  (page - 1) * perPage,
		"size":  perPage,
		"query": map[string]any{"match_all": map[string]any{}},
	}
	if name != "" {
		query["query"] = map[string]any{
			"bool": map[string]any{
				"should": []any{
					map[string]any{
						"match": map[string]any{
							"name": map[string]any{
								"query":     name,
								"fuzziness": "AUTO",
							},
						},
					},
				},
			},
		}
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	res, err := s.es.Search(
		s.es.Search.WithIndex(s.index),
		s.es.Search.WithBody(bytes.NewReader(body)),
		s.es.Search.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("search in %s failed: %w", s.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search in %s failed: %s", s.index, res.String())
	}

	var payload struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source domain.SearchRecord `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	items := make([]domain.SearchRecord, 0, len(payload.Hits.Hits))
	for _, hit := range payload.Hits.Hits {
		items = append(items, hit.Source)
	}

	logger.Log.Debug("search mirror query", "index", s.index, "query", name, "hits", len(items))

	return &domain.Pagination[domain.SearchRecord]{
		Page:    page,
		PerPage: perPage,
		Total:   payload.Hits.Total.Value,
		Items:   items,
	}, nil
}
