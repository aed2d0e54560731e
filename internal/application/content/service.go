package content

import (
	"context"

	"github.com/portfolio-api/internal/domain"
)

// Fetcher is the slice of the CMS client the service uses.
type Fetcher interface {
	ListPosts(ctx context.Context) ([]domain.Post, error)
	GetPost(ctx context.Context, slug string) (*domain.Post, error)
	ListCaseStudies(ctx context.Context) ([]domain.CaseStudy, error)
	GetCaseStudy(ctx context.Context, slug string) (*domain.CaseStudy, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetPage(ctx context.Context, slug string) (*domain.Page, error)
}

// Service exposes the published site content as typed records. Read-only by
// design: authoring happens in the CMS studio, not here.
type Service interface {
	ListPosts(ctx context.Context) ([]domain.Post, error)
	GetPost(ctx context.Context, slug string) (*domain.Post, error)
	ListCaseStudies(ctx context.Context) ([]domain.CaseStudy, error)
	GetCaseStudy(ctx context.Context, slug string) (*domain.CaseStudy, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetPage(ctx context.Context, slug string) (*domain.Page, error)
}

type service struct {
	cms Fetcher
}

func NewService(cms Fetcher) Service {
	return &service{cms: cms}
}

func (s *service) ListPosts(ctx context.Context) ([]domain.Post, error) {
	return s.cms.ListPosts(ctx)
}

func (s *service) GetPost(ctx context.Context, slug string) (*domain.Post, error) {
	return s.cms.GetPost(ctx, slug)
}

func (s *service) ListCaseStudies(ctx context.Context) ([]domain.CaseStudy, error) {
	return s.cms.ListCaseStudies(ctx)
}

func (s *service) GetCaseStudy(ctx context.Context, slug string) (*domain.CaseStudy, error) {
	return s.cms.GetCaseStudy(ctx, slug)
}

func (s *service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.cms.ListProducts(ctx)
}

func (s *service) GetPage(ctx context.Context, slug string) (*domain.Page, error) {
	return s.cms.GetPage(ctx, slug)
}
