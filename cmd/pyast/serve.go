package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/viant/pyast/server"
)

func cmdServe(ctx context.Context, a *app, args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	addr := fs.String("addr", "", "listen address, defaults to :$PORT or :8080")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *addr == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		*addr = ":" + port
	}
	service := server.NewParserService(a.parser, a.logger)
	if err := server.New(*addr, service, a.logger).ListenAndServe(ctx); err != nil {
		fmt.Fprintf(a.stderr, "%s: %v\n", appName, err)
		return 1
	}
	return 0
}
