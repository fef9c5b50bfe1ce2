package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ArtistScheduling/internal/domain"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/types"
)

const (
	keyPrefix = "slots"

	// generationTTL время жизни счетчика поколений; больше TTL записей и времени расчета
	generationTTL = 24 * time.Hour
)

var (
	// ErrCacheRead возвращается при ошибке чтения из redis
	ErrCacheRead = errors.New("slots.cache: failed to read")

	// ErrCacheWrite возвращается при ошибке записи в redis
	ErrCacheWrite = errors.New("slots.cache: failed to write")

	// ErrGenerationChanged возвращается из Set, если после чтения поколения дата была инвалидирована.
	// Результат рассчитан по устаревшим данным и не сохраняется.
	ErrGenerationChanged = errors.New("slots.cache: generation changed")
)

// setIfGeneration пишет поле hash, только если поколение даты не изменилось.
// KEYS[1] - hash со слотами, KEYS[2] - счетчик поколений.
// ARGV: поколение, поле, значение, TTL в миллисекундах.
var setIfGeneration = redis.NewScript(`
local current = redis.call('GET', KEYS[2]) or '0'
if current ~= ARGV[1] then
	return 0
end
redis.call('HSET', KEYS[1], ARGV[2], ARGV[3])
if tonumber(ARGV[4]) > 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[4])
end
return 1
`)

// Params параметры расчета, от которых зависит список слотов.
// Входят в ключ поля, поэтому смена настроек артиста не отдает устаревший результат.
type Params struct {
	DurationMinutes    int
	GranularityMinutes int
	BufferMinutes      int
}

func (p Params) field() string {
	return fmt.Sprintf("%d:%d:%d", p.DurationMinutes, p.GranularityMinutes, p.BufferMinutes)
}

// Cache общий контракт redis кэша и заглушки.
// Заполнение: Generation до чтения из БД, затем Set с этим поколением.
// Invalidate увеличивает поколение, поэтому запоздавший Set не перезапишет сброс.
type Cache interface {
	Get(ctx context.Context, artistID int64, date time.Time, p Params) ([]domain.AvailableSlot, bool, error)
	Generation(ctx context.Context, artistID int64, date time.Time) (int64, error)
	Set(ctx context.Context, artistID int64, date time.Time, p Params, generation int64, slots []domain.AvailableSlot) error
	Invalidate(ctx context.Context, artistID int64, dates ...time.Time) error
}

var (
	_ Cache = (*RedisCache)(nil)
	_ Cache = Noop{}
)

// RedisCache кэш рассчитанных слотов.
// Один hash на артиста и дату, поле - параметры расчета.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisCache создает кэш поверх клиента redis
func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Get возвращает слоты из кэша; found = false, если записи нет
func (c *RedisCache) Get(ctx context.Context, artistID int64, date time.Time, p Params) ([]domain.AvailableSlot, bool, error) {
	raw, err := c.client.HGet(ctx, Key(artistID, date), p.field()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrCacheRead, err)
	}

	var starts []types.TimeString
	if err := json.Unmarshal(raw, &starts); err != nil {
		return nil, false, fmt.Errorf("%w: decode: %v", ErrCacheRead, err)
	}

	result := make([]domain.AvailableSlot, 0, len(starts))
	for _, start := range starts {
		end, err := start.AddMinutes(p.DurationMinutes)
		if err != nil {
			return nil, false, fmt.Errorf("%w: stale entry %s: %v", ErrCacheRead, start, err)
		}
		result = append(result, domain.AvailableSlot{StartTime: start, EndTime: end})
	}

	return result, true, nil
}

// Generation возвращает текущее поколение даты; 0, если дата еще не инвалидировалась
func (c *RedisCache) Generation(ctx context.Context, artistID int64, date time.Time) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(artistID, date)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: generation: %w", ErrCacheRead, err)
	}
	return gen, nil
}

// Set сохраняет слоты и продлевает TTL ключа, если поколение даты все еще равно generation.
// Иначе возвращает ErrGenerationChanged.
func (c *RedisCache) Set(ctx context.Context, artistID int64, date time.Time, p Params, generation int64, slots []domain.AvailableSlot) error {
	starts := make([]types.TimeString, len(slots))
	for i, s := range slots {
		starts[i] = s.StartTime
	}

	raw, err := json.Marshal(starts)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrCacheWrite, err)
	}

	stored, err := setIfGeneration.Run(ctx, c.client,
		[]string{Key(artistID, date), generationKey(artistID, date)},
		strconv.FormatInt(generation, 10), p.field(), raw, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCacheWrite, err)
	}
	if stored == 0 {
		return ErrGenerationChanged
	}

	return nil
}

// Invalidate удаляет все закэшированные варианты для дат артиста и увеличивает их поколение
func (c *RedisCache) Invalidate(ctx context.Context, artistID int64, dates ...time.Time) error {
	if len(dates) == 0 {
		return nil
	}

	keys := make([]string, len(dates))
	pipe := c.client.TxPipeline()
	for i, d := range dates {
		keys[i] = Key(artistID, d)
		genKey := generationKey(artistID, d)
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, generationTTL)
	}
	pipe.Del(ctx, keys...)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheWrite, err)
	}
	return nil
}

// Key ключ hash со слотами артиста на дату
func Key(artistID int64, date time.Time) string {
	return fmt.Sprintf("%s:%d:%s", keyPrefix, artistID, date.Format(domain.DateFormat))
}

func generationKey(artistID int64, date time.Time) string {
	return Key(artistID, date) + ":gen"
}

// Noop кэш-заглушка, когда redis выключен
type Noop struct{}

func (Noop) Get(context.Context, int64, time.Time, Params) ([]domain.AvailableSlot, bool, error) {
	return nil, false, nil
}

func (Noop) Generation(context.Context, int64, time.Time) (int64, error) {
	return 0, nil
}

func (Noop) Set(context.Context, int64, time.Time, Params, int64, []domain.AvailableSlot) error {
	return nil
}

func (Noop) Invalidate(context.Context, int64, ...time.Time) error {
	return nil
}
