package usecase

import "time"

const (
	// AccountCacheTTL bounds how long a cached account snapshot may serve
	// read endpoints before falling back to the store.
	AccountCacheTTL = 30 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)

func accountCacheKey(id string) string {
	return "account:" + id
}
