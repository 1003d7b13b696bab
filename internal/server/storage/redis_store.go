package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key 前缀
	statsKeyPrefix = "hez:stats:"
	leaderboardKey = "hez:leaderboard"
)

// PlayerStats 玩家战绩
type PlayerStats struct {
	Name   string `json:"name"`
	Wins   int64  `json:"wins"`
	Losses int64  `json:"losses"`
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank int    `json:"rank"`
	Name string `json:"name"`
	Wins int64  `json:"wins"`
}

// Store 战绩存储
//
// Only aggregate win/loss counters live here; match state itself is never
// persisted.
type Store struct {
	client *redis.Client
}

// NewStore 创建战绩存储
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// RecordResult increments the winner's win counter, every loser's loss
// counter, and the leaderboard score.
func (s *Store) RecordResult(ctx context.Context, winner string, losers []string) error {
	pipe := s.client.Pipeline()
	pipe.HIncrBy(ctx, statsKeyPrefix+winner, "wins", 1)
	pipe.ZIncrBy(ctx, leaderboardKey, 1, winner)
	for _, loser := range losers {
		pipe.HIncrBy(ctx, statsKeyPrefix+loser, "losses", 1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record result: %w", err)
	}
	return nil
}

// GetStats 读取玩家战绩
func (s *Store) GetStats(ctx context.Context, name string) (*PlayerStats, error) {
	fields, err := s.client.HGetAll(ctx, statsKeyPrefix+name).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &PlayerStats{Name: name}, nil
		}
		return nil, err
	}

	stats := &PlayerStats{Name: name}
	if _, err := fmt.Sscanf(fields["wins"], "%d", &stats.Wins); err != nil {
		stats.Wins = 0
	}
	if _, err := fmt.Sscanf(fields["losses"], "%d", &stats.Losses); err != nil {
		stats.Losses = 0
	}
	return stats, nil
}

// TopPlayers 读取胜场排行榜
func (s *Store) TopPlayers(ctx context.Context, limit int64) ([]LeaderboardEntry, error) {
	results, err := s.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(results))
	for i, r := range results {
		name, _ := r.Member.(string)
		entries = append(entries, LeaderboardEntry{
			Rank: i + 1,
			Name: name,
			Wins: int64(r.Score),
		})
	}
	return entries, nil
}
