package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-coin-exchange/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestMarketCacheRepository_Price(t *testing.T) {
	mr, client := setupRedis(t)
	ctx := context.Background()
	repo := NewMarketCacheRepository(client, time.Minute)

	_, err := repo.GetPrice(ctx, "BTC")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, repo.SetPrice(ctx, "BTC", dec("67123.45")))

	price, err := repo.GetPrice(ctx, "BTC")
	require.NoError(t, err)
	assert.True(t, price.Equal(dec("67123.45")))

	mr.FastForward(2 * time.Minute)
	_, err = repo.GetPrice(ctx, "BTC")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMarketCacheRepository_PriceCorrupted(t *testing.T) {
	mr, client := setupRedis(t)
	repo := NewMarketCacheRepository(client, time.Minute)

	require.NoError(t, mr.Set("market:price:ETH", "not-a-number"))
	_, err := repo.GetPrice(context.Background(), "ETH")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestMarketCacheRepository_Candles(t *testing.T) {
	_, client := setupRedis(t)
	ctx := context.Background()
	repo := NewMarketCacheRepository(client, time.Minute)

	_, err := repo.GetCandles(ctx, "BTC", "1h", 2)
	assert.ErrorIs(t, err, ErrCacheMiss)

	candles := []models.Candle{
		{OpenTime: 1, Open: dec("1"), High: dec("2"), Low: dec("0.5"), Close: dec("1.5"), Volume: dec("10"), CloseTime: 2},
		{OpenTime: 3, Open: dec("1.5"), High: dec("3"), Low: dec("1"), Close: dec("2"), Volume: dec("12"), CloseTime: 4},
	}
	require.NoError(t, repo.SetCandles(ctx, "BTC", "1h", 2, candles))

	got, err := repo.GetCandles(ctx, "BTC", "1h", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[1].High.Equal(dec("3")))

	_, err = repo.GetCandles(ctx, "BTC", "4h", 2)
	assert.ErrorIs(t, err, ErrCacheMiss)
}
