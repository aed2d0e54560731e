package http

import (
	"github.com/portfolio-api/internal/infrastructure/cms"
	"github.com/portfolio-api/internal/infrastructure/dynamo"
	s3infra "github.com/portfolio-api/internal/infrastructure/s3"
	"github.com/portfolio-api/internal/infrastructure/ses"
	"github.com/portfolio-api/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router. Everything is
// constructed once in main and threaded through; nothing is re-derived from
// ambient configuration on a per-request basis.
type Deps struct {
	RequestRepo  *dynamo.ResumeRequestRepo
	AssetStore   *s3infra.Store
	Mailer       *ses.Mailer
	LeadNotifier sns.LeadNotifier // may be nil
	CMSClient    *cms.Client
}
