package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/Gunvolt24/pricecache/pkg/validate"
)

func observationsCommand(env Env) *cli.Command {
	return &cli.Command{
		Name:  "observations",
		Usage: "work with price observation files",
		Commands: []*cli.Command{
			{
				Name:  "validate",
				Usage: "validate observations and print the valid ones in canonical form",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "in", Usage: "path to input (.json or .jsonl); stdin when empty"},
					&cli.StringFlag{Name: "format", Value: string(validate.FormatAuto), Usage: "input format: auto|json|jsonl"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					path := cmd.String("in")
					format := validate.InputFormat(cmd.String("format"))

					// stdin читаем как jsonl
					if path == "" {
						path = env.In
						if format == validate.FormatAuto {
							format = validate.FormatJSONL
						}
					}

					sum, err := validate.ValidateFile(ctx, validate.NewObservationValidator(), path, format, env.Out)
					if err != nil {
						return fmt.Errorf("validation: %w (%s)", err, sum)
					}
					if len(sum.InvalidLines) > 0 {
						fmt.Fprintf(env.Err, "invalid lines: %v\n", sum.InvalidLines)
					}
					fmt.Fprintf(env.Err, "validation ok (%s)\n", sum)
					return nil
				},
			},
		},
	}
}
