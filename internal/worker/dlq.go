package worker

// dlq.go: dead letter queue.
// A job lands in dlq:<queue> when it is malformed, has no handler, or fails
// maxJobAttempts times. Entries are never retried automatically.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DLQPrefix = "dlq:"

// DLQEntry is one dead job plus what is needed to act on it by hand.
type DLQEntry struct {
	Queue    string    `json:"queue"`
	Job      Job       `json:"job"`
	Reason   string    `json:"reason"`
	FailedAt time.Time `json:"failed_at"`
	// ProductID is set for stock_alert jobs so an operator can find the
	// product without decoding the payload.
	ProductID int64 `json:"product_id,omitempty"`
}

func newDLQEntry(queue string, job Job, reason string) DLQEntry {
	entry := DLQEntry{Queue: queue, Job: job, Reason: reason, FailedAt: time.Now().UTC()}
	if job.Type == JobStockAlert {
		var p StockAlertPayload
		if json.Unmarshal(job.Payload, &p) == nil {
			entry.ProductID = p.ProductID
		}
	}
	return entry
}

// deadLetter parks job in the queue's DLQ. Failures are logged only: the
// job has already been popped and there is nowhere else to put it.
func deadLetter(ctx context.Context, rdb *redis.Client, queue string, job Job, reason string) {
	entry := newDLQEntry(queue, job, reason)
	data, err := json.Marshal(entry)
	if err == nil {
		err = rdb.LPush(ctx, DLQPrefix+queue, data).Err()
	}
	ev := log.Warn()
	if err != nil {
		ev = log.Error().Err(err)
	}
	ev.Str("queue", queue).
		Str("job_type", job.Type).
		Int("attempts", job.Attempts).
		Int64("product_id", entry.ProductID).
		Str("reason", reason).
		Msg("job dead-lettered")
}

// DeadLetterCount reports how many jobs of queue are parked.
func DeadLetterCount(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}

// PeekDLQ returns up to n of the newest entries without removing them.
func PeekDLQ(ctx context.Context, rdb *redis.Client, queue string, n int64) ([]DLQEntry, error) {
	raw, err := rdb.LRange(ctx, DLQPrefix+queue, 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]DLQEntry, 0, len(raw))
	for _, r := range raw {
		var e DLQEntry
		if err := json.Unmarshal([]byte(r), &e); err != nil {
			log.Warn().Err(err).Str("queue", queue).Msg("dlq: skipping unreadable entry")
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
