package cooldown

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrCache возвращается при ошибке обращения к Redis
var ErrCache = errors.New("cooldown: redis error")

const keyPrefix = "inspection:resend:"

// Store пауза между повторными отправками кода, общая для всех инстансов
type Store struct {
	client redis.Cmdable
}

// NewStore создает хранилище пауз поверх Redis
func NewStore(client redis.Cmdable) *Store {
	return &Store{client: client}
}

// NewClient создает клиента Redis и проверяет соединение
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrCache, addr, err)
	}

	return client, nil
}

// Acquire ставит паузу для бронирования на ttl.
// Возвращает false, если пауза уже действует.
func (s *Store) Acquire(ctx context.Context, bookingID int64, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, key(bookingID), time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%w: Acquire - booking_id=%d: %v", ErrCache, bookingID, err)
	}
	return ok, nil
}

// Release снимает паузу для бронирования
func (s *Store) Release(ctx context.Context, bookingID int64) error {
	if err := s.client.Del(ctx, key(bookingID)).Err(); err != nil {
		return fmt.Errorf("%w: Release - booking_id=%d: %v", ErrCache, bookingID, err)
	}
	return nil
}

func key(bookingID int64) string {
	return keyPrefix + strconv.FormatInt(bookingID, 10)
}
