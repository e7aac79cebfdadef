package command

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v3"
)

// Env — окружение команд: куда писать и какое сейчас время.
type Env struct {
	Out io.Writer
	Err io.Writer
	In  string // путь для чтения stdin
	Now func() time.Time
}

// DefaultEnv — stdout/stderr процесса и системные часы.
func DefaultEnv() Env {
	return Env{Out: os.Stdout, Err: os.Stderr, In: "/dev/stdin", Now: time.Now}
}

// NewApp — корневая команда pricectl.
func NewApp(env Env) *cli.Command {
	if env.Now == nil {
		env.Now = time.Now
	}
	if env.In == "" {
		env.In = "/dev/stdin"
	}

	return &cli.Command{
		Name:      "pricectl",
		Usage:     "inspect price cache snapshots and classify prices",
		Writer:    env.Out,
		ErrWriter: env.Err,
		Commands: []*cli.Command{
			classifyCommand(env),
			snapshotCommand(env),
			observationsCommand(env),
		},
	}
}

// Run — разбор аргументов и запуск.
func Run(ctx context.Context, env Env, args []string) error {
	return NewApp(env).Run(ctx, args)
}
