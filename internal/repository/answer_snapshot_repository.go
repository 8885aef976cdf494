package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// AnswerSnapshotRepository stores the per-attempt answer map in Redis.
// The snapshot is written once when an attempt is submitted and expires
// with the session; an attempt can therefore outlive its snapshot, and
// callers must treat absence as a normal outcome.
type AnswerSnapshotRepository struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewAnswerSnapshotRepository(rdb *redis.Client, ttl time.Duration) *AnswerSnapshotRepository {
	return &AnswerSnapshotRepository{Redis: rdb, TTL: ttl}
}

func snapshotKey(scoreID uint) string {
	return fmt.Sprintf("answers:attempt:%d", scoreID)
}

func (r *AnswerSnapshotRepository) Save(scoreID uint, answers map[uint]int) error {
	payload, err := json.Marshal(answers)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return r.Redis.Set(ctx, snapshotKey(scoreID), payload, r.TTL).Err()
}

// Get returns the snapshot for an attempt. The second return is false when
// the snapshot never existed or has expired; that is not an error.
func (r *AnswerSnapshotRepository) Get(scoreID uint) (map[uint]int, bool, error) {
	ctx := context.Background()
	payload, err := r.Redis.Get(ctx, snapshotKey(scoreID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	answers := make(map[uint]int)
	if err := json.Unmarshal(payload, &answers); err != nil {
		return nil, false, err
	}
	return answers, true, nil
}

func (r *AnswerSnapshotRepository) Delete(scoreID uint) error {
	ctx := context.Background()
	return r.Redis.Del(ctx, snapshotKey(scoreID)).Err()
}
