package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/iamNilotpal/lthash/internal/cli"
	"github.com/iamNilotpal/lthash/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		if ve := errors.AsValidationError(err); ve != nil {
			fmt.Fprintf(os.Stderr, "lthash: invalid %s (%v): %v\n", ve.Field, ve.Value, ve.Err)
		} else {
			fmt.Fprintf(os.Stderr, "lthash: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
