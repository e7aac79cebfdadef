//go:build integration

package redis_test

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	redisrepo "github.com/Gunvolt24/pricecache/internal/repo/redis"
	"github.com/Gunvolt24/pricecache/internal/testutil"
)

func TestSnapshotStore_SaveAndLoad_TC(t *testing.T) {
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	rc, stop, err := testutil.StartRedisTC(ctxStart)
	require.NoError(t, err)
	defer func() { _ = stop(context.Background()) }()

	opts, err := goredis.ParseURL(rc.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cli, err := redisrepo.NewClient(ctx, opts.Addr, opts.Password, opts.DB)
	require.NoError(t, err)
	defer cli.Close()

	store := redisrepo.NewSnapshotStore(cli, "")
	want := testutil.MakeEntries(4)
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for k, w := range want {
		require.Equal(t, w.Price, got[k].Price)
		require.True(t, w.FetchedAt.Equal(got[k].FetchedAt))
	}

	// битое поле пропускается, остальные читаются
	require.NoError(t, cli.HSet(ctx, redisrepo.DefaultKey, "broken", "{oops").Err())
	got, err = store.Load(ctx)
	require.Error(t, err)
	require.Len(t, got, len(want))
}
