package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/domain"
)

// Client fetches published content from the headless CMS query endpoint.
// The CMS is an opaque collaborator: this client only reads, using GROQ-style
// queries, and decodes the `{"result": …}` envelope into typed records.
type Client struct {
	http    *http.Client
	baseURL string
	dataset string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: cfg.CMSBaseURL,
		dataset: cfg.CMSDataset,
	}
}

func (c *Client) query(ctx context.Context, groq string, out interface{}) error {
	if c.baseURL == "" {
		return fmt.Errorf("CMS base URL not set: %w", domain.ErrConfiguration)
	}
	u := fmt.Sprintf("%s/v1/data/query/%s?query=%s", c.baseURL, c.dataset, url.QueryEscape(groq))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build cms request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cms query: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("cms query returned %d: %s", resp.StatusCode, body)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode cms envelope: %w", err)
	}
	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return domain.ErrNotFound
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("decode cms result: %w", err)
	}
	return nil
}

func (c *Client) ListPosts(ctx context.Context) ([]domain.Post, error) {
	var posts []domain.Post
	q := `*[_type == "post"] | order(publishedAt desc){ "slug": slug.current, title, excerpt, body, "cover_image": coverImage.asset->url, tags, "published_at": publishedAt }`
	if err := c.query(ctx, q, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) GetPost(ctx context.Context, slug string) (*domain.Post, error) {
	var post domain.Post
	q := fmt.Sprintf(`*[_type == "post" && slug.current == %q][0]{ "slug": slug.current, title, excerpt, body, "cover_image": coverImage.asset->url, tags, "published_at": publishedAt }`, slug)
	if err := c.query(ctx, q, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) ListCaseStudies(ctx context.Context) ([]domain.CaseStudy, error) {
	var studies []domain.CaseStudy
	q := `*[_type == "caseStudy"] | order(year desc){ "slug": slug.current, title, client, summary, body, services, year }`
	if err := c.query(ctx, q, &studies); err != nil {
		return nil, err
	}
	return studies, nil
}

func (c *Client) GetCaseStudy(ctx context.Context, slug string) (*domain.CaseStudy, error) {
	var study domain.CaseStudy
	q := fmt.Sprintf(`*[_type == "caseStudy" && slug.current == %q][0]{ "slug": slug.current, title, client, summary, body, services, year }`, slug)
	if err := c.query(ctx, q, &study); err != nil {
		return nil, err
	}
	return &study, nil
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	q := `*[_type == "product"]{ "slug": slug.current, name, description, "price_cents": priceCents, currency, url }`
	if err := c.query(ctx, q, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetPage(ctx context.Context, slug string) (*domain.Page, error) {
	var page domain.Page
	q := fmt.Sprintf(`*[_type == "page" && slug.current == %q][0]{ "slug": slug.current, title, body }`, slug)
	if err := c.query(ctx, q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
