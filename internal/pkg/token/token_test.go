package token

import (
	"strings"
	"testing"
	"time"

	"github.com/portfolio-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-signing-secret"

func TestIssueVerify_RoundTrip(t *testing.T) {
	c := NewCodec(testSecret)
	exp := time.Now().Add(6 * time.Hour)

	raw, issued, err := c.Issue("user@example.com", exp, 0)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	got, err := c.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", got.Subject)
	assert.Equal(t, 0, got.Downloads)
	assert.Equal(t, issued.ExpiresAt.Unix(), got.ExpiresAt.Unix())
}

func TestIssue_MissingSecret(t *testing.T) {
	c := NewCodec("")
	_, _, err := c.Issue("user@example.com", time.Now().Add(time.Hour), 0)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestVerify_MissingSecret(t *testing.T) {
	c := NewCodec("")
	_, err := c.Verify("whatever")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestVerify_Garbage_IsMalformed(t *testing.T) {
	c := NewCodec(testSecret)
	_, err := c.Verify("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenMalformed)
}

// Splicing the payload of one validly signed token under another token's
// signature must fail as a signature error, not a malformed one: the claims
// are perfectly well-shaped, they just aren't the ones that were signed.
func TestVerify_TamperedPayload_IsInvalidSignature(t *testing.T) {
	c := NewCodec(testSecret)
	exp := time.Now().Add(6 * time.Hour)

	rawA, _, err := c.Issue("alice@example.com", exp, 0)
	require.NoError(t, err)
	rawB, _, err := c.Issue("mallory@example.com", exp, 0)
	require.NoError(t, err)

	partsA := strings.Split(rawA, ".")
	partsB := strings.Split(rawB, ".")
	require.Len(t, partsA, 3)
	require.Len(t, partsB, 3)
	spliced := partsA[0] + "." + partsB[1] + "." + partsA[2]

	_, err = c.Verify(spliced)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	assert.NotErrorIs(t, err, domain.ErrTokenMalformed)
}

func TestVerify_CorruptedSignature_IsInvalidSignature(t *testing.T) {
	c := NewCodec(testSecret)
	raw, _, err := c.Issue("user@example.com", time.Now().Add(time.Hour), 1)
	require.NoError(t, err)

	corrupted := raw[:len(raw)-2] + flipChar(raw[len(raw)-2]) + raw[len(raw)-1:]
	_, err = c.Verify(corrupted)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerify_WrongSecret_IsInvalidSignature(t *testing.T) {
	raw, _, err := NewCodec(testSecret).Issue("user@example.com", time.Now().Add(time.Hour), 0)
	require.NoError(t, err)

	_, err = NewCodec("a-different-secret").Verify(raw)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

// An expired token with a valid signature must surface as expired, not invalid.
func TestVerify_Expired_TakesPrecedenceOverValidSignature(t *testing.T) {
	c := NewCodec(testSecret)
	raw, _, err := c.Issue("user@example.com", time.Now().Add(-time.Minute), 2)
	require.NoError(t, err)

	_, err = c.Verify(raw)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
	assert.NotErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestRenew_BumpsCountKeepsExpiry(t *testing.T) {
	c := NewCodec(testSecret)
	exp := time.Now().Add(6 * time.Hour)

	_, issued, err := c.Issue("user@example.com", exp, 0)
	require.NoError(t, err)

	rawRenewed, renewed, err := c.Renew(issued)
	require.NoError(t, err)
	assert.Equal(t, 1, renewed.Downloads)
	assert.Equal(t, issued.ExpiresAt.Unix(), renewed.ExpiresAt.Unix())
	assert.Equal(t, issued.IssuedAt.Unix(), renewed.IssuedAt.Unix())

	got, err := c.Verify(rawRenewed)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Downloads)
	assert.Equal(t, issued.ExpiresAt.Unix(), got.ExpiresAt.Unix())
}

// The original credential and all of its renewals must map to the same quota
// record, so the fingerprint ignores the advisory count.
func TestFingerprint_StableAcrossRenewals(t *testing.T) {
	c := NewCodec(testSecret)
	_, issued, err := c.Issue("user@example.com", time.Now().Add(6*time.Hour), 0)
	require.NoError(t, err)

	_, renewed, err := c.Renew(issued)
	require.NoError(t, err)
	_, renewedTwice, err := c.Renew(renewed)
	require.NoError(t, err)

	fp := Fingerprint(issued)
	assert.Len(t, fp, 64)
	assert.Equal(t, fp, Fingerprint(renewed))
	assert.Equal(t, fp, Fingerprint(renewedTwice))
}

func TestFingerprint_DistinctPerIssueParameters(t *testing.T) {
	c := NewCodec(testSecret)
	exp := time.Now().Add(6 * time.Hour)

	_, a, err := c.Issue("alice@example.com", exp, 0)
	require.NoError(t, err)
	_, b, err := c.Issue("bob@example.com", exp, 0)
	require.NoError(t, err)

	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func flipChar(b byte) string {
	if b == 'A' {
		return "B"
	}
	return "A"
}
