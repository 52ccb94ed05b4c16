package main

import (
	"context"
	"os"

	"storefront/internal/cli"
	"storefront/internal/shutdown"
)

func main() {
	ctx, cancel := shutdown.WithSignals(context.Background())
	code := cli.Execute(ctx, os.Args[1:])
	cancel()
	os.Exit(code)
}
