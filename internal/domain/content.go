package domain

import "time"

// Typed records returned by the headless CMS. The CMS is an opaque collaborator:
// these are read-only projections of whatever the studio publishes.

type Post struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	Body        string    `json:"body"`
	CoverImage  string    `json:"cover_image"`
	Tags        []string  `json:"tags"`
	PublishedAt time.Time `json:"published_at"`
}

type CaseStudy struct {
	Slug     string   `json:"slug"`
	Title    string   `json:"title"`
	Client   string   `json:"client"`
	Summary  string   `json:"summary"`
	Body     string   `json:"body"`
	Services []string `json:"services"`
	Year     int      `json:"year"`
}

type Product struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Currency    string `json:"currency"`
	URL         string `json:"url"` // external checkout link; no payment processing here
}

type Page struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Body  string `json:"body"`
}
