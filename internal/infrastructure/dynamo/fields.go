package dynamo

// DynamoDB attribute names used in key maps and expressions.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldTokenHash     = "token_hash"
	fieldDownloadCount = "download_count"
	fieldExpiresAt     = "expires_at"
)
