package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	cli, err := InitCLI()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing stripjson: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = cli.Run(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
