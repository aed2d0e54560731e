package token

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/portfolio-api/internal/domain"
)

// Claims is the payload of a resume download credential. The Downloads field
// is a display-only echo of the quota count; enforcement always happens
// against the stored record, never against this claim.
type Claims struct {
	Downloads int `json:"dlc"`
	jwt.RegisteredClaims
}

// Codec signs and verifies HS256 resume download credentials.
//
// The credential is a value type: it is never mutated, only re-minted. Renew
// produces a fresh token with the same subject and expiry and a bumped count.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Issue mints a signed credential for email expiring at expiresAt, carrying
// the given advisory download count.
func (c *Codec) Issue(email string, expiresAt time.Time, downloads int) (string, *Claims, error) {
	return c.sign(email, time.Now(), expiresAt, downloads)
}

// Renew re-signs the same subject and expiry with one more download recorded.
// It never extends the credential's lifetime.
func (c *Codec) Renew(cl *Claims) (string, *Claims, error) {
	return c.sign(cl.Subject, cl.IssuedAt.Time, cl.ExpiresAt.Time, cl.Downloads+1)
}

func (c *Codec) sign(email string, issuedAt, expiresAt time.Time, downloads int) (string, *Claims, error) {
	if len(c.secret) == 0 {
		return "", nil, fmt.Errorf("resume signing secret not set: %w", domain.ErrConfiguration)
	}
	claims := &Claims{
		Downloads: downloads,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return raw, claims, nil
}

// Verify parses and verifies a raw credential. The signature is checked before
// any embedded claim is trusted. Errors map onto the domain taxonomy:
// structural garbage → ErrTokenMalformed, bad signature → ErrTokenInvalid,
// past expiry on an otherwise valid token → ErrTokenExpired.
func (c *Codec) Verify(raw string) (*Claims, error) {
	if len(c.secret) == 0 {
		return nil, fmt.Errorf("resume signing secret not set: %w", domain.ErrConfiguration)
	}
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, fmt.Errorf("%v: %w", err, domain.ErrTokenMalformed)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("%v: %w", err, domain.ErrTokenInvalid)
		case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
			return nil, fmt.Errorf("%v: %w", err, domain.ErrTokenMalformed)
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("%v: %w", err, domain.ErrTokenExpired)
		default:
			return nil, fmt.Errorf("%v: %w", err, domain.ErrTokenInvalid)
		}
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("unreadable claims: %w", domain.ErrTokenMalformed)
	}
	if strings.TrimSpace(claims.Subject) == "" || claims.IssuedAt == nil {
		return nil, fmt.Errorf("missing subject or issued-at: %w", domain.ErrTokenMalformed)
	}
	return claims, nil
}

// Fingerprint is the one-way hash under which a credential's quota record is
// stored. It covers only the renewal-invariant fields (subject, issued-at,
// expiry), so the original credential and every renewal of it address the same
// record. The raw signed token is never persisted anywhere.
func Fingerprint(cl *Claims) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d", cl.Subject, cl.IssuedAt.Unix(), cl.ExpiresAt.Unix())))
	return hex.EncodeToString(sum[:])
}
