package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/starford/harmoni/internal/client"
)

func upcomingCommand() *cli.Command {
	return &cli.Command{
		Name:  "upcoming",
		Usage: "List upcoming events from a running server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Usage:   "Base URL of the harmoni server",
				Value:   "http://localhost:8080",
				Sources: cli.EnvVars("HARMONI_SERVER"),
			},
			&cli.IntFlag{
				Name:  "pages",
				Usage: "Number of pages to print",
				Value: 1,
			},
		},
		Action: upcoming,
	}
}

func upcoming(ctx context.Context, cmd *cli.Command) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	c := client.New(cmd.String("server"), client.WithLogger(logger))

	today := time.Now()
	session := client.NewCalendarSession(c, logger, today)
	if err := session.Init(ctx, today); err != nil {
		logger.Warn("calendar load incomplete, showing built-in events", slog.String("error", err.Error()))
	}

	pages := int(cmd.Int("pages"))
	for i := 0; i < pages; i++ {
		page := session.Upcoming(today)
		if page.Empty {
			fmt.Fprintln(os.Stdout, page.Message)
			return nil
		}
		for _, e := range page.Events {
			fmt.Fprintf(os.Stdout, "%s %s  %-40s %s\n", e.Day, e.Month, e.Title, e.Religion.DisplayName())
		}
		if !session.NextUpcomingPage(today) {
			break
		}
	}
	return nil
}
