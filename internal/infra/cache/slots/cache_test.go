package slots

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArtistScheduling/internal/domain"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/types"
)

func TestKey(t *testing.T) {
	date := time.Date(2024, 3, 15, 18, 45, 0, 0, time.UTC)
	assert.Equal(t, "slots:7:2024-03-15", Key(7, date))
	assert.Equal(t, "60:30:15", Params{DurationMinutes: 60, GranularityMinutes: 30, BufferMinutes: 15}.field())
}

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	ctx := context.Background()
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	gen, err := c.Generation(ctx, 1, date)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, 1, date, Params{}, gen, []domain.AvailableSlot{{StartTime: types.MustTimeString("09:00")}}))
	got, found, err := c.Get(ctx, 1, date, Params{})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
	assert.NoError(t, c.Invalidate(ctx, 1, date))
}

func TestRedisCache_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewRedisCache(client, time.Minute)
	ctx := context.Background()
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	p := Params{DurationMinutes: 60, GranularityMinutes: 60}

	_, found, err := c.Get(ctx, 1, date, p)
	assert.ErrorIs(t, err, ErrCacheRead)
	assert.False(t, found)

	_, err = c.Generation(ctx, 1, date)
	assert.ErrorIs(t, err, ErrCacheRead)

	err = c.Set(ctx, 1, date, p, 0, []domain.AvailableSlot{{StartTime: types.MustTimeString("09:00"), EndTime: types.MustTimeString("10:00")}})
	assert.ErrorIs(t, err, ErrCacheWrite)

	assert.ErrorIs(t, c.Invalidate(ctx, 1, date), ErrCacheWrite)
	assert.NoError(t, c.Invalidate(ctx, 1))
}

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client, 5*time.Minute), srv
}

func slotsAt(starts ...string) []domain.AvailableSlot {
	out := make([]domain.AvailableSlot, 0, len(starts))
	for _, s := range starts {
		start := types.MustTimeString(s)
		end, _ := start.AddMinutes(60)
		out = append(out, domain.AvailableSlot{StartTime: start, EndTime: end})
	}
	return out
}

func TestRedisCache_ReadThrough(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	p := Params{DurationMinutes: 60, GranularityMinutes: 60}

	_, found, err := c.Get(ctx, 1, date, p)
	require.NoError(t, err)
	assert.False(t, found)

	gen, err := c.Generation(ctx, 1, date)
	require.NoError(t, err)
	assert.Zero(t, gen)

	require.NoError(t, c.Set(ctx, 1, date, p, gen, slotsAt("09:00", "10:00")))

	got, found, err := c.Get(ctx, 1, date, p)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, slotsAt("09:00", "10:00"), got)
	assert.Equal(t, 5*time.Minute, srv.TTL(Key(1, date)))

	_, found, err = c.Get(ctx, 1, date, Params{DurationMinutes: 120, GranularityMinutes: 60})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_InvalidateBumpsGeneration(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	other := date.AddDate(0, 0, 1)
	p := Params{DurationMinutes: 60, GranularityMinutes: 60}

	require.NoError(t, c.Set(ctx, 1, date, p, 0, slotsAt("09:00")))
	require.NoError(t, c.Set(ctx, 1, other, p, 0, slotsAt("09:00")))

	require.NoError(t, c.Invalidate(ctx, 1, date))

	_, found, err := c.Get(ctx, 1, date, p)
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = c.Get(ctx, 1, other, p)
	require.NoError(t, err)
	assert.True(t, found)

	gen, err := c.Generation(ctx, 1, date)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
	assert.True(t, srv.TTL(generationKey(1, date)) > 0)
}

func TestRedisCache_SetAfterInvalidateIsRejected(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	p := Params{DurationMinutes: 60, GranularityMinutes: 60}

	// расчет начался до фиксации бронирования
	gen, err := c.Generation(ctx, 1, date)
	require.NoError(t, err)

	// бронирование зафиксировано, кэш сброшен
	require.NoError(t, c.Invalidate(ctx, 1, date))

	err = c.Set(ctx, 1, date, p, gen, slotsAt("09:00", "10:00", "11:00"))
	require.ErrorIs(t, err, ErrGenerationChanged)

	_, found, err := c.Get(ctx, 1, date, p)
	require.NoError(t, err)
	assert.False(t, found)

	fresh, err := c.Generation(ctx, 1, date)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, 1, date, p, fresh, slotsAt("09:00", "10:00")))

	got, found, err := c.Get(ctx, 1, date, p)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, slotsAt("09:00", "10:00"), got)
}
