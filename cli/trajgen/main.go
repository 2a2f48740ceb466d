// Package main is the trajgen command itself.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"go.viam.com/trajgen/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.RunContext(ctx, os.Args); err != nil {
		stop()
		log.Fatal(err)
	}
}
