package cms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(&config.Config{CMSBaseURL: srv.URL, CMSDataset: "production"})
}

func TestListPosts_DecodesResultEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/v1/data/query/production")
		assert.NotEmpty(t, r.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":[{"slug":"hello-world","title":"Hello World","tags":["go"]}]}`))
	})

	posts, err := c.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "hello-world", posts[0].Slug)
	assert.Equal(t, []string{"go"}, posts[0].Tags)
}

func TestGetPage_NullResult_IsNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result":null}`))
	})

	_, err := c.GetPage(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuery_Non200_IsError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	})

	_, err := c.ListProducts(context.Background())
	assert.ErrorContains(t, err, "502")
}

func TestQuery_MissingBaseURL_IsConfigurationError(t *testing.T) {
	c := NewClient(&config.Config{})
	_, err := c.ListPosts(context.Background())
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}
