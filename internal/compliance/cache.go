package compliance

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	id "nachweis/pkg/domain"
)

// SummaryCache keeps the latest aggregation response per contractor in Redis
// with a short TTL, so dashboards can poll summaries without re-running the
// aggregation. Optional: a nil cache disables caching.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache wraps a Redis client. Returns nil when the client is nil.
func NewSummaryCache(client *redis.Client, ttl time.Duration) *SummaryCache {
	if client == nil {
		return nil
	}
	return &SummaryCache{client: client, ttl: ttl}
}

func summaryKey(contractorID id.ContractorID) string {
	return "compliance:summary:" + contractorID.String()
}

// Get returns the cached response, or (nil, nil) on a miss.
func (c *SummaryCache) Get(ctx context.Context, contractorID id.ContractorID) (*Response, error) {
	if c == nil {
		return nil, nil
	}
	payload, err := c.client.Get(ctx, summaryKey(contractorID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var resp Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Set stores the response under the contractor key.
func (c *SummaryCache) Set(ctx context.Context, contractorID id.ContractorID, resp *Response) error {
	if c == nil {
		return nil
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, summaryKey(contractorID), payload, c.ttl).Err()
}

// Invalidate drops the cached summary, called on document mutations.
func (c *SummaryCache) Invalidate(ctx context.Context, contractorID id.ContractorID) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, summaryKey(contractorID)).Err()
}
