package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"donorscan/internal/config"
	"donorscan/internal/digest"
	"donorscan/internal/export"
	"donorscan/internal/fetcher"
	"donorscan/internal/model"
	"donorscan/internal/pipeline"
	"donorscan/internal/registry"
	"donorscan/internal/scheduler"
	"donorscan/internal/score"
	"donorscan/internal/storage"
)

func main() {
	showAll := flag.Bool("all", false, "include previously seen opportunities in the output")
	daemon := flag.Bool("daemon", false, "keep running and rescan on the configured interval")
	noExport := flag.Bool("no-export", false, "skip writing CSV report files")
	noDigest := flag.Bool("no-digest", false, "skip sending the digest even when a channel is configured")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	store, err := openStore(cfg)
	if err != nil {
		log.Error("open seen store", "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	p := pipeline.New(registry.List(), fetcher.New(http.DefaultClient), store, score.New(score.DefaultConfig()), log)
	p.SetDelay(cfg.ScanDelay)
	p.SetThreshold(cfg.ScoreThreshold)

	profile := model.Profile{
		Country: cfg.Country,
		Sectors: cfg.Sectors,
		ShowAll: *showAll,
	}

	senders, err := buildSenders(cfg)
	if err != nil {
		log.Error("configure digest channels", "error", err)
		os.Exit(1)
	}

	job := func(ctx context.Context) error {
		results, stats, err := p.Scan(ctx, profile)
		if err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		now := time.Now()

		if !*noExport {
			written, err := export.NewWriter(cfg.ExportDir).WriteReports(results, now)
			if err != nil {
				log.Error("write reports", "error", err)
			}
			for _, path := range written {
				log.Info("wrote report", "path", path)
			}
		}

		if *noDigest || stats.Found == 0 {
			return nil
		}
		subject := digest.Subject(stats, now)
		body := digest.Format(results, stats, profile, now)
		for _, s := range senders {
			if err := s.Send(ctx, subject, body); err != nil {
				log.Error("send digest", "error", err)
			}
		}
		return nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *daemon {
		log.Info("starting daily scanner", "interval", cfg.ScanInterval)
		scheduler.New(job, cfg.ScanInterval, log).Run(ctx)
		return
	}

	if err := job(ctx); err != nil {
		log.Error("scan failed", "error", err)
		os.Exit(1)
	}
}

func openStore(cfg *config.Config) (storage.SeenStore, error) {
	switch cfg.SeenBackend {
	case "json":
		if err := ensureDir(cfg.SeenFilePath); err != nil {
			return nil, err
		}
		return storage.NewJSONFile(cfg.SeenFilePath), nil
	default:
		if err := ensureDir(cfg.DatabasePath); err != nil {
			return nil, err
		}
		return storage.NewSQLite(cfg.DatabasePath)
	}
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create data directory %s: %w", dir, err)
	}
	return nil
}

func buildSenders(cfg *config.Config) ([]digest.Sender, error) {
	var senders []digest.Sender
	if cfg.Email != nil {
		senders = append(senders, digest.NewSMTPSender(*cfg.Email))
	}
	if cfg.Telegram != nil {
		tg, err := digest.NewTelegramSender(*cfg.Telegram)
		if err != nil {
			return nil, err
		}
		senders = append(senders, tg)
	}
	return senders, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
