package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/Gunvolt24/pricecache/internal/domain"
	"github.com/Gunvolt24/pricecache/internal/snapshot"
	"github.com/Gunvolt24/pricecache/pkg/pricetier"
)

const defaultSnapshotFile = "wynnventory_price_cache.json"

func snapshotFileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Value:   defaultSnapshotFile,
		Usage:   "snapshot file written by the service",
	}
}

func snapshotCommand(env Env) *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "inspect a snapshot file",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "list snapshot entries",
				Flags: []cli.Flag{
					snapshotFileFlag(),
					&cli.StringFlag{Name: "tier", Usage: "only entries of this tier (none|green|orange|red)"},
					&cli.StringFlag{Name: "sort", Value: "key", Usage: "sort by key|price|age"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return showSnapshot(ctx, env, cmd.String("file"), cmd.String("tier"), cmd.String("sort"))
				},
			},
			{
				Name:  "stats",
				Usage: "summarize a snapshot file",
				Flags: []cli.Flag{snapshotFileFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return snapshotStats(ctx, env, cmd.String("file"))
				},
			},
		},
	}
}

type row struct {
	key   string
	entry domain.PriceEntry
}

func loadRows(ctx context.Context, path string) ([]row, error) {
	entries, err := snapshot.NewFileStore(path).Load(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]row, 0, len(entries))
	for k, e := range entries {
		rows = append(rows, row{key: k, entry: e})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].key < rows[j].key })
	return rows, nil
}

func showSnapshot(ctx context.Context, env Env, path, tierFilter, sortBy string) error {
	rows, err := loadRows(ctx, path)
	if err != nil {
		return err
	}

	if tierFilter != "" {
		want, ok := pricetier.ParseTier(strings.ToLower(tierFilter))
		if !ok {
			return fmt.Errorf("unknown tier %q", tierFilter)
		}
		filtered := rows[:0]
		for _, r := range rows {
			if pricetier.TierOf(r.entry.Price) == want {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	switch sortBy {
	case "", "key":
	case "price":
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].entry.Price > rows[j].entry.Price })
	case "age":
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].entry.FetchedAt.After(rows[j].entry.FetchedAt) })
	default:
		return fmt.Errorf("unknown sort %q", sortBy)
	}

	if len(rows) == 0 {
		fmt.Fprintln(env.Out, "no entries")
		return nil
	}

	now := env.Now()
	out := make([][]string, 0, len(rows))
	tiers := make([]pricetier.Tier, 0, len(rows))
	for _, r := range rows {
		display, tier := pricetier.Classify(r.entry.Price)
		out = append(out, []string{
			r.key,
			humanize.Commaf(r.entry.Price),
			display,
			tier.String(),
			age(r.entry.FetchedAt, now),
		})
		tiers = append(tiers, tier)
	}
	writeTable(env.Out, []string{"KEY", "PRICE", "DISPLAY", "TIER", "FETCHED"}, out, tiers)
	return nil
}

func snapshotStats(ctx context.Context, env Env, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("snapshot file %s does not exist", path)
		}
		return err
	}
	rows, err := loadRows(ctx, path)
	if err != nil {
		return err
	}

	var (
		composite      int
		oldest, newest time.Time
	)
	byTier := make(map[pricetier.Tier]int)
	for _, r := range rows {
		if domain.IsComposite(r.key) {
			composite++
		}
		byTier[pricetier.TierOf(r.entry.Price)]++
		if oldest.IsZero() || r.entry.FetchedAt.Before(oldest) {
			oldest = r.entry.FetchedAt
		}
		if r.entry.FetchedAt.After(newest) {
			newest = r.entry.FetchedAt
		}
	}

	now := env.Now()
	fmt.Fprintf(env.Out, "file:       %s (%s)\n", path, humanize.Bytes(uint64(info.Size())))
	fmt.Fprintf(env.Out, "entries:    %s (%s composite)\n", humanize.Comma(int64(len(rows))), humanize.Comma(int64(composite)))
	fmt.Fprintf(env.Out, "tiers:      none=%d green=%d orange=%d red=%d\n",
		byTier[pricetier.TierNone], byTier[pricetier.TierGreen], byTier[pricetier.TierOrange], byTier[pricetier.TierRed])
	if len(rows) > 0 {
		fmt.Fprintf(env.Out, "oldest:     %s\n", age(oldest, now))
		fmt.Fprintf(env.Out, "newest:     %s\n", age(newest, now))
	}
	return nil
}

func age(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}
