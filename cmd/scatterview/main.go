// Command scatterview plots two columns of numbers with the scatter renderer.
//
// Usage:
//
//	scatterview show --csv points.csv --x time --y value --header
//	scatterview snapshot --random 1000000 --dist spiral -o spiral.png
//	scatterview info --csv points.csv
//	scatterview serve --random 50000 --addr :8080
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
