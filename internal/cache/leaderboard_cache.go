package cache

import (
	"context"
	"fmt"
	"strconv"

	"anoa.com/rhythmrank/internal/model"
	"github.com/redis/go-redis/v9"
)

// LeaderboardCache mirrors the database leaderboard slots into redis sorted
// sets so holder lookups don't touch the relational store. The database stays
// the source of truth; a slot key holds exactly the current holder, misses
// fall through to the database, and the refresher drops every key before
// repopulating so superseded members cannot linger.
type LeaderboardCache struct {
	client *redis.Client
}

func NewLeaderboardCache(redisURL string) (*LeaderboardCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &LeaderboardCache{client: client}, nil
}

const keyPrefix = "leaderboard:"

func slotKey(beatmapID int32, mode model.GameMode, rankingType model.RankingType) string {
	return fmt.Sprintf("%s%d:%s:%s", keyPrefix, beatmapID, mode, rankingType)
}

// SetHolder records userID as the sole holder of the slot with the given
// metric value. The key is deleted first: a slot has exactly one holder, and
// a bare ZADD would keep the previous member ranked above a lower-valued
// replacement after a cascade delete.
func (c *LeaderboardCache) SetHolder(ctx context.Context, beatmapID int32, mode model.GameMode, rankingType model.RankingType, userID int32, value float64) error {
	key := slotKey(beatmapID, mode, rankingType)
	member := strconv.FormatInt(int64(userID), 10)

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{Score: value, Member: member})
	_, err := pipe.Exec(ctx)
	return err
}

// Holder returns the top entry of a slot, or ok=false when the slot is cold.
func (c *LeaderboardCache) Holder(ctx context.Context, beatmapID int32, mode model.GameMode, rankingType model.RankingType) (userID int32, value float64, ok bool, err error) {
	key := slotKey(beatmapID, mode, rankingType)
	entries, err := c.client.ZRevRangeWithScores(ctx, key, 0, 0).Result()
	if err != nil {
		return 0, 0, false, err
	}
	if len(entries) == 0 {
		return 0, 0, false, nil
	}

	member, _ := entries[0].Member.(string)
	id, err := strconv.ParseInt(member, 10, 32)
	if err != nil {
		return 0, 0, false, fmt.Errorf("corrupt cache member %q: %w", member, err)
	}
	return int32(id), entries[0].Score, true, nil
}

// Invalidate drops every cached slot for a beatmap.
func (c *LeaderboardCache) Invalidate(ctx context.Context, beatmapID int32) error {
	keys := make([]string, 0, len(model.GameModes())*len(model.RankingTypes()))
	for _, mode := range model.GameModes() {
		for _, rt := range model.RankingTypes() {
			keys = append(keys, slotKey(beatmapID, mode, rt))
		}
	}
	return c.client.Del(ctx, keys...).Err()
}

// Clear drops every cached slot. Run before a full repopulation so keys whose
// database rows no longer exist don't survive the rebuild.
func (c *LeaderboardCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *LeaderboardCache) Close() error {
	return c.client.Close()
}
