package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	domain "github.com/gmpsaude/clinic-scheduler/internal/domain/appointment"
)

// RedisSlotCache guarda os horários livres de um médico por data.
// Qualquer erro de ida ao Redis degrada para cache miss; a resposta
// continua vindo do banco.
type RedisSlotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSlotCache(addr, password string, db int, ttl time.Duration) *RedisSlotCache {
	return &RedisSlotCache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

func slotKey(doctorID uint, date string) string {
	return fmt.Sprintf("horarios:medico:%d:%s", doctorID, date)
}

func (c *RedisSlotCache) GetSlots(ctx context.Context, doctorID uint, date string) ([]string, bool) {
	raw, err := c.rdb.Get(ctx, slotKey(doctorID, date)).Result()
	if err != nil {
		if err != redis.Nil {
			logrus.WithError(err).Debug("slot cache read failed")
		}
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *RedisSlotCache) SetSlots(ctx context.Context, doctorID uint, date string, slots []string) {
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, slotKey(doctorID, date), raw, c.ttl).Err(); err != nil {
		logrus.WithError(err).Debug("slot cache write failed")
	}
}

func (c *RedisSlotCache) Invalidate(ctx context.Context, doctorID uint, date string) {
	if err := c.rdb.Del(ctx, slotKey(doctorID, date)).Err(); err != nil {
		logrus.WithError(err).Debug("slot cache invalidation failed")
	}
}

// Compile-time check
var _ domain.SlotCache = (*RedisSlotCache)(nil)
