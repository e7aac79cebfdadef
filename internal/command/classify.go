package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/Gunvolt24/pricecache/pkg/pricetier"
	"github.com/Gunvolt24/pricecache/pkg/validate"
)

func classifyCommand(env Env) *cli.Command {
	return &cli.Command{
		Name:      "classify",
		Usage:     "show display string and tier for prices",
		ArgsUsage: "PRICE...",
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) == 0 {
				return errors.New("at least one PRICE is required")
			}

			rows := make([][]string, 0, len(args))
			tiers := make([]pricetier.Tier, 0, len(args))
			for _, arg := range args {
				price, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("invalid price %q", arg)
				}
				if err := validate.CheckPrice(price); err != nil {
					return fmt.Errorf("invalid price %q", arg)
				}
				display, tier := pricetier.Classify(price)
				rows = append(rows, []string{humanize.Commaf(price), display, tier.String()})
				tiers = append(tiers, tier)
			}

			writeTable(env.Out, []string{"PRICE", "DISPLAY", "TIER"}, rows, tiers)
			return nil
		},
	}
}
