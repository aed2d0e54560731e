package resume

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/portfolio-api/internal/domain"
	"github.com/portfolio-api/internal/pkg/id"
	"github.com/portfolio-api/internal/pkg/token"
	"github.com/portfolio-api/internal/pkg/validate"
)

// QuotaStore is the durable, authoritative record of credential redemptions.
type QuotaStore interface {
	Create(ctx context.Context, rec *domain.ResumeRequest) error
	Redeem(ctx context.Context, tokenHash string, now int64) (int, error)
	Get(ctx context.Context, tokenHash string) (*domain.ResumeRequest, error)
}

// Mailer delivers the download link out-of-band.
type Mailer interface {
	Send(ctx context.Context, to, downloadURL string, expiresAt time.Time) (*domain.DispatchResult, error)
}

// AssetStore reads the protected asset.
type AssetStore interface {
	Download(ctx context.Context, key string) (io.ReadCloser, int64, error)
}

// LeadNotifier is the optional owner-alert hook. May be nil.
type LeadNotifier interface {
	LeadAlert(ctx context.Context, email string) error
}

// RedeemResult carries everything the download handler needs to stream the
// asset and hand the client a renewed credential.
type RedeemResult struct {
	Body          io.ReadCloser
	ContentLength int64
	Count         int // authoritative, from the quota store
	MaxDownloads  int
	RenewedToken  string
}

type Service interface {
	// RequestLink validates the email, mints a credential, persists its quota
	// record, and dispatches the download link. Persistence strictly precedes
	// dispatch: a link must never go out without an enforceable quota behind it.
	RequestLink(ctx context.Context, email string) error

	// Redeem verifies a credential, atomically consumes one download from its
	// quota, loads the asset, and mints the renewed credential.
	Redeem(ctx context.Context, rawToken string) (*RedeemResult, error)
}

type service struct {
	store        QuotaStore
	mailer       Mailer
	assets       AssetStore
	notifier     LeadNotifier
	codec        *token.Codec
	assetKey     string
	maxDownloads int
	tokenTTL     time.Duration
	baseURL      string
}

func NewService(
	store QuotaStore,
	mailer Mailer,
	assets AssetStore,
	notifier LeadNotifier,
	codec *token.Codec,
	assetKey string,
	maxDownloads int,
	tokenTTL time.Duration,
	baseURL string,
) Service {
	return &service{
		store:        store,
		mailer:       mailer,
		assets:       assets,
		notifier:     notifier,
		codec:        codec,
		assetKey:     assetKey,
		maxDownloads: maxDownloads,
		tokenTTL:     tokenTTL,
		baseURL:      strings.TrimRight(baseURL, "/"),
	}
}

func (s *service) RequestLink(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("invalid email: %w", domain.ErrBadRequest)
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	raw, claims, err := s.codec.Issue(email, expiresAt, 0)
	if err != nil {
		return err
	}

	rec := &domain.ResumeRequest{
		ID:            id.New(),
		Email:         email,
		TokenHash:     token.Fingerprint(claims),
		DownloadCount: 0,
		ExpiresAt:     expiresAt.Unix(),
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.store.Create(ctx, rec); err != nil {
		// Fail closed. No record means no enforceable quota, so the link is
		// never dispatched.
		slog.Error("resume request persistence failed", "email", redactEmail(email), "err", err)
		return err
	}

	downloadURL := s.baseURL + "/resume/download?token=" + url.QueryEscape(raw)
	res, err := s.mailer.Send(ctx, email, downloadURL, expiresAt)
	if err != nil {
		slog.Error("resume link dispatch failed", "email", redactEmail(email), "err", err)
		return err
	}
	slog.Info("resume link dispatched",
		"email", redactEmail(email),
		"message_id", res.MessageID,
		"provider", res.Provider,
	)

	if s.notifier != nil {
		if err := s.notifier.LeadAlert(ctx, email); err != nil {
			slog.Warn("lead alert failed", "email", redactEmail(email), "err", err)
		}
	}
	return nil
}

func (s *service) Redeem(ctx context.Context, rawToken string) (*RedeemResult, error) {
	// Fast-path check on the embedded claims before touching storage. The
	// store's own expiry check below remains authoritative.
	claims, err := s.codec.Verify(rawToken)
	if err != nil {
		return nil, err
	}

	hash := token.Fingerprint(claims)
	now := time.Now()
	count, err := s.store.Redeem(ctx, hash, now.Unix())
	if err != nil {
		if errors.Is(err, domain.ErrNotRedeemable) {
			return nil, s.explainNotRedeemable(ctx, hash, now)
		}
		return nil, err
	}

	body, length, err := s.assets.Download(ctx, s.assetKey)
	if err != nil {
		slog.Error("resume asset unreadable", "key", s.assetKey, "err", err)
		return nil, fmt.Errorf("%v: %w", err, domain.ErrAssetUnavailable)
	}

	renewed, _, err := s.codec.Renew(claims)
	if err != nil {
		body.Close()
		return nil, err
	}

	return &RedeemResult{
		Body:          body,
		ContentLength: length,
		Count:         count,
		MaxDownloads:  s.maxDownloads,
		RenewedToken:  renewed,
	}, nil
}

// explainNotRedeemable turns the store's business negative into the
// user-facing taxonomy. The stored record wins over the embedded claims: a
// credential that still looks fresh is expired if the record says so.
func (s *service) explainNotRedeemable(ctx context.Context, hash string, now time.Time) error {
	rec, err := s.store.Get(ctx, hash)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no quota record for credential: %w", domain.ErrTokenInvalid)
		}
		return err
	}
	if rec.Expired(now) {
		return fmt.Errorf("quota record expired: %w", domain.ErrTokenExpired)
	}
	return fmt.Errorf("count %d at ceiling: %w", rec.DownloadCount, domain.ErrQuotaExhausted)
}

// redactEmail keeps logs diagnosable without storing full subject identities:
// first character of the local part plus the domain.
func redactEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}
