package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Gunvolt24/pricecache/internal/command"
)

func main() {
	if err := command.Run(context.Background(), command.DefaultEnv(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
