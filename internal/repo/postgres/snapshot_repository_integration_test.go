//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/pricecache/internal/domain"
	pgrepo "github.com/Gunvolt24/pricecache/internal/repo/postgres"
	"github.com/Gunvolt24/pricecache/internal/testutil"
)

// 1) Сохранение и загрузка снапшота: значения и время совпадают точно
func TestSnapshotRepo_SaveAndLoad_TC(t *testing.T) {
	t.Parallel()

	// длинный контекст — только на подъём контейнера
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	defer func() { _ = stopPG(context.Background()) }()

	applied, err := pgrepo.Migrate(ctxStart, pg.DSN)
	require.NoError(t, err)
	require.Equal(t, 1, applied)

	// повторный запуск ничего не применяет
	applied, err = pgrepo.Migrate(ctxStart, pg.DSN)
	require.NoError(t, err)
	require.Zero(t, applied)

	ctxTest, cancelTest := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelTest()

	repo := pgrepo.NewSnapshotRepository(pg.Pool)

	want := testutil.MakeEntries(5)
	require.NoError(t, repo.Save(ctxTest, want))

	got, err := repo.Load(ctxTest)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for k, w := range want {
		require.Equal(t, w.Price, got[k].Price)
		require.True(t, w.FetchedAt.Equal(got[k].FetchedAt))
	}
}

// 2) Более старая запись не перетирает более новую
func TestSnapshotRepo_Save_KeepsNewer_TC(t *testing.T) {
	t.Parallel()

	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	defer func() { _ = stopPG(context.Background()) }()

	_, err = pgrepo.Migrate(ctxStart, pg.DSN)
	require.NoError(t, err)

	ctxTest, cancelTest := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelTest()

	repo := pgrepo.NewSnapshotRepository(pg.Pool)
	now := domain.StampMillis(time.Now())

	require.NoError(t, repo.Save(ctxTest, map[string]domain.PriceEntry{
		"Warp": {Price: 300000, FetchedAt: now},
	}))
	require.NoError(t, repo.Save(ctxTest, map[string]domain.PriceEntry{
		"Warp": {Price: 100, FetchedAt: now.Add(-time.Minute)},
	}))

	got, err := repo.Load(ctxTest)
	require.NoError(t, err)
	require.Equal(t, 300000.0, got["Warp"].Price)

	require.NoError(t, repo.Save(ctxTest, map[string]domain.PriceEntry{
		"Warp": {Price: 8192, FetchedAt: now.Add(time.Minute)},
	}))
	got, err = repo.Load(ctxTest)
	require.NoError(t, err)
	require.Equal(t, 8192.0, got["Warp"].Price)
}
