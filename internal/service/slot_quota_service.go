package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"telehealth-api/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrSlotFull is returned when an availability slot has no remaining quota.
var ErrSlotFull = errors.New("availability slot is fully booked")

// decrQuotaScript atomically decrements the slot quota and rolls back if
// it would go negative. The redis client switches to EVALSHA after the
// first call, so the script body is only sent once per connection.
var decrQuotaScript = redis.NewScript(`
	local remaining = redis.call('DECR', KEYS[1])
	if remaining < 0 then
		redis.call('INCR', KEYS[1])
		return -1
	end
	return remaining
`)

const (
	// Redis key prefix for availability slot quota
	RedisQuotaKeyPrefix = "slot:quota:"

	// Timeout for individual Redis operations
	redisQuotaTimeout = 5 * time.Second

	// Batch size for startup sync
	syncBatchSize = 500
)

// quotaResult holds quota sync data read from the database.
type quotaResult struct {
	SlotID         int
	TotalQuota     int
	RemainingQuota int
	SlotDate       time.Time
}

// SlotQuotaService keeps availability slot quotas in Redis so concurrent
// bookings decrement atomically instead of racing through the database.
type SlotQuotaService struct {
	db          *gorm.DB
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewSlotQuotaService(db *gorm.DB, redisClient *redis.Client, log *logrus.Logger) *SlotQuotaService {
	return &SlotQuotaService{
		db:          db,
		redisClient: redisClient,
		log:         log,
	}
}

// Reserve takes one unit of quota for the slot. Returns ErrSlotFull when
// the slot has no capacity left.
func (s *SlotQuotaService) Reserve(ctx context.Context, slotID int) error {
	ctx, cancel := context.WithTimeout(ctx, redisQuotaTimeout)
	defer cancel()

	key := fmt.Sprintf("%s%d", RedisQuotaKeyPrefix, slotID)
	remaining, err := decrQuotaScript.Run(ctx, s.redisClient, []string{key}).Int()
	if err != nil {
		return fmt.Errorf("reserve slot %d: %w", slotID, err)
	}
	if remaining < 0 {
		return ErrSlotFull
	}
	return nil
}

// Seed writes the initial quota counter for a newly created slot.
func (s *SlotQuotaService) Seed(ctx context.Context, slotID, totalQuota int, slotDate time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, redisQuotaTimeout)
	defer cancel()

	key := fmt.Sprintf("%s%d", RedisQuotaKeyPrefix, slotID)
	if err := s.redisClient.Set(ctx, key, totalQuota, s.quotaTTL(slotDate)).Err(); err != nil {
		return fmt.Errorf("seed slot %d: %w", slotID, err)
	}
	return nil
}

// Release returns one unit of quota, used when a booking is cancelled or
// a reservation fails downstream.
func (s *SlotQuotaService) Release(ctx context.Context, slotID int) error {
	ctx, cancel := context.WithTimeout(ctx, redisQuotaTimeout)
	defer cancel()

	key := fmt.Sprintf("%s%d", RedisQuotaKeyPrefix, slotID)
	if err := s.redisClient.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("release slot %d: %w", slotID, err)
	}
	return nil
}

// SyncOnStartup recomputes the remaining quota of every future slot from
// the database and overwrites the Redis keys. Should run before the
// server accepts traffic so Redis survives a flush or failover.
func (s *SlotQuotaService) SyncOnStartup(ctx context.Context) error {
	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		s.log.Warnf("Redis is not available, skipping quota sync: %+v", err)
		return fmt.Errorf("redis ping failed: %w", err)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	offset := 0
	totalSynced := 0

	for {
		var results []quotaResult

		err := s.db.WithContext(ctx).Model(&entity.AvailabilitySlot{}).
			Select(`
				availability_slots.id as slot_id,
				availability_slots.total_quota,
				availability_slots.total_quota - COUNT(CASE WHEN video_sessions.status IS NOT NULL AND video_sessions.status != ? THEN 1 END) as remaining_quota,
				availability_slots.slot_date
			`, string(entity.VideoSessionStatusCancelled)).
			Joins("LEFT JOIN video_sessions ON video_sessions.slot_id = availability_slots.id").
			Where("availability_slots.slot_date >= ?", today).
			Group("availability_slots.id, availability_slots.total_quota, availability_slots.slot_date").
			Order("availability_slots.id").
			Limit(syncBatchSize).
			Offset(offset).
			Scan(&results).Error
		if err != nil {
			return fmt.Errorf("query slots at offset %d: %w", offset, err)
		}

		if len(results) == 0 {
			break
		}

		// New pipeline per batch so memory stays bounded
		pipe := s.redisClient.TxPipeline()
		for _, result := range results {
			key := fmt.Sprintf("%s%d", RedisQuotaKeyPrefix, result.SlotID)
			pipe.Set(ctx, key, result.RemainingQuota, s.quotaTTL(result.SlotDate))
		}
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("sync batch at offset %d: %w", offset, err)
		}

		totalSynced += len(results)
		offset += syncBatchSize
	}

	s.log.Infof("Slot quota sync complete: %d slots", totalSynced)
	return nil
}

// quotaTTL keeps the key until the end of the day after the slot date so
// late status updates still see it.
func (s *SlotQuotaService) quotaTTL(slotDate time.Time) time.Duration {
	expiry := slotDate.AddDate(0, 0, 2).Truncate(24 * time.Hour)
	ttl := time.Until(expiry)
	if ttl < time.Hour {
		ttl = time.Hour
	}
	return ttl
}
