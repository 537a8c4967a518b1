package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	godspeedcmd "github.com/ThanathonTH/godspeed-downloader/internal/cli/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godspeedcmd.Execute(ctx); err != nil {
		var ee *godspeedcmd.ExitError
		if errors.As(err, &ee) {
			if ee.Err != nil {
				fmt.Fprintln(os.Stderr, ee.Err)
			}
			os.Exit(ee.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(godspeedcmd.ExitCLIError)
	}
	os.Exit(godspeedcmd.ExitOK)
}
