package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"starsbot/cmd"
	"starsbot/database"
)

const usage = "usage: starsbot [migrate up|down [steps]|status]"

func main() {
	if len(os.Args) > 1 {
		if err := runSubcommand(os.Args[1:]); err != nil {
			log.Fatal(err)
		}
		return
	}

	// Cancelled on SIGINT/SIGTERM, cmd.Run then shuts down gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx); err != nil {
		log.Fatal("Application error: ", err)
	}
}

func runSubcommand(args []string) error {
	if args[0] != "migrate" {
		return fmt.Errorf("unknown command %q, %s", args[0], usage)
	}
	if len(args) < 2 {
		return fmt.Errorf(usage)
	}

	var err error
	switch args[1] {
	case "up":
		err = database.MigrateUp()
	case "down":
		steps := "1"
		if len(args) > 2 {
			steps = args[2]
		}
		err = database.MigrateDown(steps)
	case "status":
		err = database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command %q, %s", args[1], usage)
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", args[1], err)
	}
	return nil
}
