package elastic_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"skills-platform-backend/internal/domain"
	"skills-platform-backend/internal/repository/elastic"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T, handler http.HandlerFunc) domain.SearchIndex {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The client refuses to talk to anything that does not identify
		// itself as Elasticsearch.
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return elastic.NewSkillIndex(client)
}

func TestCountUnreachableBackend(t *testing.T) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{"http://127.0.0.1:1"}})
	require.NoError(t, err)
	index := elastic.NewSkillIndex(client)

	assert.Equal(t, int64(-1), index.Count(context.Background()))
}

func TestCountBackendError(t *testing.T) {
	index := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	assert.Equal(t, int64(-1), index.Count(context.Background()))
}

func TestCountParsesValue(t *testing.T) {
	index := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count": 42}`))
	})

	assert.Equal(t, int64(42), index.Count(context.Background()))
}

func TestSearchDecodesHits(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	index := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"hits": {
				"total": {"value": 2},
				"hits": [
					{"_source": {"id": 1, "name": "Python"}},
					{"_source": {"id": 7, "name": "PyTorch"}}
				]
			}
		}`))
	})

	result, err := index.Search(context.Background(), "pyth", 1, 10)
	require.NoError(t, err)

	assert.Equal(t, "/skills_index/_search", gotPath)
	assert.Equal(t, int64(2), result.Total)
	require.Len(t, result.Items, 2)
	assert.Equal(t, domain.SearchRecord{ID: 1, Name: "Python"}, result.Items[0])

	// Fuzzy matching must be requested for non-empty queries.
	body, _ := json.Marshal(gotBody)
	assert.Contains(t, string(body), "fuzziness")
	assert.Contains(t, string(body), "pyth")
}

func TestSearchEmptyQueryMatchesAll(t *testing.T) {
	var gotBody map[string]any
	index := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"hits": {"total": {"value": 0}, "hits": []}}`))
	})

	result, err := index.Search(context.Background(), "", 0, 0)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultPage, result.Page)
	assert.Equal(t, domain.DefaultPerPage, result.PerPage)
	body, _ := json.Marshal(gotBody)
	assert.Contains(t, string(body), "match_all")
}

func TestBulkIndexSkipsInvalidRecords(t *testing.T) {
	var gotBody string
	called := false
	index := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"errors": false, "items": []}`))
	})

	err := index.BulkIndex(context.Background(), []domain.SearchRecord{
		{ID: 1, Name: "Go"},
		{ID: 0, Name: "zero id"},
		{ID: 2, Name: ""},
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Contains(t, gotBody, `"Go"`)
	assert.NotContains(t, gotBody, "zero id")
}

func TestBulkIndexNothingToSend(t *testing.T) {
	called := false
	index := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	err := index.BulkIndex(context.Background(), []domain.SearchRecord{{ID: 0, Name: "skipped"}})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestDeleteToleratesMissingDocument(t *testing.T) {
	index := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"result": "not_found"}`))
	})

	assert.NoError(t, index.Delete(context.Background(), 99))
}
