package common

import "time"

const (
	// Redis key prefixes for cached provider responses.
	RedisKeyPriceSeries = "advisor:prices"
	RedisKeyCompanyName = "advisor:company"

	// Default TTL for cached provider responses, mirroring the
	// five-minute HTTP cache the advisor relies on for interactive use.
	ProviderCacheTTL = 5 * time.Minute

	// DateLayout is the wire format for request date ranges.
	DateLayout = "2006-01-02"
)
