package domain

import "time"

// ResumeRequest is the durable quota record for one issued download credential.
// PK: token_hash (the credential fingerprint). It is the single source of truth
// for how many times that credential has been redeemed; the count embedded in
// the credential itself is advisory only.
//
// Records are never deleted — expiry is enforced by timestamp comparison, and
// expired or exhausted rows remain as an audit trail. No DynamoDB TTL on this
// table for the same reason.
type ResumeRequest struct {
	ID            string    `json:"id" dynamodbav:"id"`
	Email         string    `json:"email" dynamodbav:"email"`
	TokenHash     string    `json:"token_hash" dynamodbav:"token_hash"`
	DownloadCount int       `json:"download_count" dynamodbav:"download_count"`
	ExpiresAt     int64     `json:"expires_at" dynamodbav:"expires_at"` // Unix seconds
	CreatedAt     time.Time `json:"created_at" dynamodbav:"created_at"`
}

// Expired reports whether the record's expiry is at or before now.
func (r *ResumeRequest) Expired(now time.Time) bool {
	return r.ExpiresAt <= now.Unix()
}

// DispatchResult identifies a successfully dispatched email. A dispatch counts
// as successful only when the provider returned a non-empty message id.
type DispatchResult struct {
	MessageID string `json:"message_id"`
	Provider  string `json:"provider"`
}
