// Package main generates a universe and writes it to a padded output file.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	cosmogencmd "github.com/louisbranch/cosmogen/internal/cmd/cosmogen"
	"github.com/louisbranch/cosmogen/internal/platform/config"
)

func main() {
	cfg, err := cosmogencmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	log.SetPrefix("[COSMOGEN] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cosmogencmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}
