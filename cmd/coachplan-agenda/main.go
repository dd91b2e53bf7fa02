package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/claude/coachplan/internal/agenda"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "CoachPlan server URL (e.g. https://coachplan.tail1234.ts.net)")
	cacheDir := flag.String("cache-dir", "", "cache directory (default ~/.coachplan-agenda)")
	offline := flag.Bool("offline", false, "render from the local cache without contacting the server")
	flat := flag.Bool("flat", false, "render a single ordered list instead of status sections")
	daysBack := flag.Int("days-back", 14, "days of history to fetch")
	daysAhead := flag.Int("days-ahead", 56, "days ahead to fetch")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("coachplan-agenda", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" && !*offline {
		fmt.Fprintf(os.Stderr, "Usage: coachplan-agenda -server <URL> [-offline] [-flat]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	dir := *cacheDir
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Error("failed to get home directory", "error", err)
			os.Exit(1)
		}
		dir = filepath.Join(homeDir, ".coachplan-agenda")
	}

	cache, err := agenda.OpenCache(dir)
	if err != nil {
		log.Error("failed to open cache", "error", err)
		os.Exit(1)
	}
	defer cache.Close()

	now := time.Now()
	var entries []agenda.Entry

	if *offline {
		entries, err = cache.Load()
		if err != nil {
			log.Error("failed to load cache", "error", err)
			os.Exit(1)
		}
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		client := agenda.NewClient(*serverURL)
		entries, err = client.FetchSessions(ctx, now.AddDate(0, 0, -*daysBack), now.AddDate(0, 0, *daysAhead))
		if err != nil {
			log.Warn("fetch failed, falling back to cache", "error", err)
			entries, err = cache.Load()
			if err != nil {
				log.Error("failed to load cache", "error", err)
				os.Exit(1)
			}
		} else if err := cache.Store(entries); err != nil {
			log.Warn("failed to update cache", "error", err)
		}
	}

	if *flat {
		agenda.RenderFlat(os.Stdout, entries, now)
	} else {
		agenda.Render(os.Stdout, entries, now)
	}
}
