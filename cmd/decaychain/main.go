// Command decaychain prints and checks particle decay chains.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/roach88/decaychain/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "decaychain:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
