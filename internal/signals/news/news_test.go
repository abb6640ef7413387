package news

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurement-workers/internal/common/database"
	apperrors "procurement-workers/internal/common/errors"
	commonhttp "procurement-workers/internal/common/http"
	"procurement-workers/internal/common/logger"
)

func TestLexiconScorer(t *testing.T) {
	s := NewLexiconScorer()

	assert.Greater(t, s.Polarity("Great sales and record growth"), 0.4)
	assert.Less(t, s.Polarity("Product recall after defective batch"), -0.4)
	assert.Equal(t, 0.0, s.Polarity("The quarterly report was published"))
	assert.Less(t, s.Polarity("not good"), 0.0)
	assert.Greater(t, s.Polarity("very good"), s.Polarity("good"))
}

func TestMeanPolarity(t *testing.T) {
	assert.Equal(t, 0.0, MeanPolarity(NewLexiconScorer(), nil))

	articles := []Article{{Title: "great", Description: ""}, {Title: "bad", Description: ""}}
	assert.InDelta(t, 0.05, MeanPolarity(NewLexiconScorer(), articles), 1e-9)
}

func newsServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/everything", r.URL.Path)
		assert.Equal(t, "relevancy", r.URL.Query().Get("sortBy"))
		assert.Equal(t, "en", r.URL.Query().Get("language"))
		assert.Equal(t, "20", r.URL.Query().Get("pageSize"))
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newHTTP() *commonhttp.Client {
	return commonhttp.NewClient(2*time.Second, commonhttp.DefaultBreakerSettings("news-test"))
}

func TestClient_FetchArticles(t *testing.T) {
	srv := newsServer(t, http.StatusOK, `{"status":"ok","articles":[{"title":"Drills booming","description":"strong demand"}]}`)
	c := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "k"}, newHTTP())

	articles, err := c.FetchArticles(context.Background(), "drill")
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Drills booming", articles[0].Title)
}

func TestClient_NoKey(t *testing.T) {
	c := NewClient(ClientConfig{BaseURL: "http://unused"}, newHTTP())
	_, err := c.FetchArticles(context.Background(), "drill")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestClient_UpstreamError(t *testing.T) {
	srv := newsServer(t, http.StatusInternalServerError, `{"status":"error","message":"boom"}`)
	c := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "k"}, newHTTP())

	_, err := c.FetchArticles(context.Background(), "drill")
	var se *commonhttp.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
}

func esServer(t *testing.T, body string) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		assert.Equal(t, "/news-articles/_search", r.URL.Path)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return es
}

func TestArticleIndex_Search(t *testing.T) {
	es := esServer(t, `{"hits":{"hits":[{"_source":{"title":"Kettle sales slump","description":"weak"}}]}}`)
	idx := NewArticleIndex(es, "news-articles", 5)

	articles, err := idx.Search(context.Background(), "kettle")
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Kettle sales slump", articles[0].Title)
}

type stubFetcher struct {
	articles []Article
	err      error
	calls    int
}

func (s *stubFetcher) FetchArticles(context.Context, string) ([]Article, error) {
	s.calls++
	return s.articles, s.err
}

type stubSearcher struct {
	articles []Article
	err      error
}

func (s *stubSearcher) Search(context.Context, string) ([]Article, error) {
	return s.articles, s.err
}

func TestService_LiveThenCache(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	cache := database.NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	live := &stubFetcher{articles: []Article{{Title: "great"}}}
	svc := NewService(live, logger.NewTestLogger(t), WithCache(cache, time.Minute))

	first := svc.DemandSignal(context.Background(), "Drill")
	assert.Equal(t, SourceLive, first.Source)
	assert.Equal(t, 1, first.ArticleCount)

	second := svc.DemandSignal(context.Background(), "drill ")
	assert.Equal(t, SourceCache, second.Source)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, 1, live.calls)
}

func TestService_Fallback(t *testing.T) {
	live := &stubFetcher{err: errors.New("down")}
	fb := &stubSearcher{articles: []Article{{Title: "bad"}, {Title: "bad"}}}
	svc := NewService(live, logger.NewTestLogger(t), WithFallback(fb))

	sig := svc.DemandSignal(context.Background(), "Kettle")
	assert.Equal(t, SourceFallback, sig.Source)
	assert.Equal(t, 2, sig.ArticleCount)
	assert.Less(t, sig.Score, 0.0)
}

func TestService_Neutral(t *testing.T) {
	live := &stubFetcher{err: ErrNoAPIKey}
	fb := &stubSearcher{err: errors.New("index missing")}
	svc := NewService(live, logger.NewTestLogger(t), WithFallback(fb))

	sig := svc.DemandSignal(context.Background(), "Kettle")
	assert.Equal(t, SourceNeutral, sig.Source)
	assert.Equal(t, 0.0, sig.Score)
}

func TestService_NoArticlesIsZero(t *testing.T) {
	svc := NewService(&stubFetcher{}, logger.NewNoOpLogger())
	sig := svc.DemandSignal(context.Background(), "Obscure Widget")
	assert.Equal(t, SourceLive, sig.Source)
	assert.Equal(t, 0.0, sig.Score)
}

func TestClient_APIErrorStatus(t *testing.T) {
	srv := newsServer(t, http.StatusOK, `{"status":"error","message":"rate limited"}`)
	c := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "k"}, newHTTP())

	_, err := c.FetchArticles(context.Background(), "drill")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNewsFetchFailed))
}

func writeSnapshot(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "news.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestArticleFile_Search(t *testing.T) {
	path := writeSnapshot(t, `{"status":"ok","articles":[{"title":"Record growth","description":"great"},{"title":"Recall"}]}`)

	articles, err := NewArticleFile(path).Search(context.Background(), "anything")
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "Record growth", articles[0].Title)
}

func TestArticleFile_Errors(t *testing.T) {
	_, err := NewArticleFile(filepath.Join(t.TempDir(), "missing.json")).Search(context.Background(), "drill")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNewsFetchFailed))

	_, err = NewArticleFile(writeSnapshot(t, `not json`)).Search(context.Background(), "drill")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNewsFetchFailed))

	articles, err := NewArticleFile(writeSnapshot(t, `{"status":"ok"}`)).Search(context.Background(), "drill")
	require.NoError(t, err)
	assert.NotNil(t, articles)
	assert.Empty(t, articles)
}

func TestService_FallbackChain(t *testing.T) {
	live := &stubFetcher{err: ErrNoAPIKey}
	index := &stubSearcher{err: errors.New("index missing")}
	file := NewArticleFile(writeSnapshot(t, `{"articles":[{"title":"great"},{"title":"great"},{"title":"bad"}]}`))
	svc := NewService(live, logger.NewTestLogger(t), WithFallback(index), WithFallback(file))

	sig := svc.DemandSignal(context.Background(), "Kettle")
	assert.Equal(t, SourceFallback, sig.Source)
	assert.Equal(t, 3, sig.ArticleCount)
	assert.Greater(t, sig.Score, 0.0)
}

func TestService_FileFallbackWithoutIndex(t *testing.T) {
	svc := NewService(NewClient(ClientConfig{BaseURL: "http://unused"}, newHTTP()), logger.NewTestLogger(t),
		WithFallback(NewArticleFile(filepath.Join("..", "..", "..", "data", "dummy_news.json"))))

	sig := svc.DemandSignal(context.Background(), "Cordless Drill")
	assert.Equal(t, SourceFallback, sig.Source)
	assert.Equal(t, 4, sig.ArticleCount)
}
