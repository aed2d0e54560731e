package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
)

// Resume pipeline sentinels. The token taxonomy is deliberately three-way:
// expired, tampered, and limit-reached each drive different user messaging.
var (
	// ErrConfiguration means a required secret or credential was absent at
	// first use. Fatal for the request; not user-correctable.
	ErrConfiguration = errors.New("missing configuration")

	// ErrTokenInvalid means the token signature did not verify.
	ErrTokenInvalid = errors.New("invalid token signature")

	// ErrTokenMalformed means the token was structurally broken before any
	// signature check could be applied.
	ErrTokenMalformed = errors.New("malformed token")

	// ErrTokenExpired means the token (by embedded claim or by the stored
	// record, whichever is checked) is past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrNotRedeemable is the quota store's business negative: the conditional
	// increment did not apply. No mutation happened. Callers inspect the record
	// to distinguish missing / expired / exhausted.
	ErrNotRedeemable = errors.New("not redeemable")

	// ErrQuotaExhausted means the download ceiling was reached.
	ErrQuotaExhausted = errors.New("download limit reached")

	// ErrPersistence wraps storage failures in the quota pipeline. It always
	// fails the whole request: a credential must never exist without an
	// enforceable quota record behind it.
	ErrPersistence = errors.New("persistence failure")

	// ErrDispatch wraps email provider failures, including a provider response
	// that carries no message id. Never swallowed, never retried here.
	ErrDispatch = errors.New("dispatch failure")

	// ErrAssetUnavailable means the protected asset could not be read.
	ErrAssetUnavailable = errors.New("asset unavailable")
)
