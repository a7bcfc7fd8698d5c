package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	lyrtag "github.com/sig-kill/lyrtag"
	"github.com/sig-kill/lyrtag/cmd/internal/flags"
	"github.com/sig-kill/lyrtag/lyrics"
	"github.com/sig-kill/lyrtag/notifications"
)

func init() {
	flag := flag.CommandLine
	flag.Usage = func() {
		fmt.Fprintf(flag.Output(), "Usage:\n")
		fmt.Fprintf(flag.Output(), "  $ %s [<options>] <path>...\n", flag.Name())
		fmt.Fprintf(flag.Output(), "\n")
		fmt.Fprintf(flag.Output(), "Options:\n")
		flag.PrintDefaults()
	}
}

func main() {
	defer flags.ExitError()
	var (
		sources   = flags.Lyrics()
		notifs    = flags.Notifications()
		workers   = flag.Int("workers", 4, "number of tracks to process concurrently")
		overwrite = flag.Bool("overwrite", false, "overwrite existing lyrics tags")
	)
	flags.EnvPrefix(lyrtag.Name)
	flags.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := &lyrtag.Config{
		Sources:    sources,
		Normalizer: lyrics.DefaultNormalizer(),
		Overwrite:  *overwrite,
		Workers:    *workers,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	start := time.Now()
	_, summary, err := lyrtag.ProcessTree(ctx, cfg, flag.Args()...)
	if err != nil {
		slog.Error("finding tracks", "err", err)
		return
	}

	slog := slog.With("took", time.Since(start),
		"written", summary.Written, "skipped", summary.SkippedExisting,
		"not_found", summary.NotFound, "errs", summary.Failed)
	if summary.Failed > 0 {
		notifs.Sendf(ctx, notifications.Error, "run finished with %d errors", summary.Failed)
		slog.Error("run finished with errors")
		return
	}
	notifs.Send(ctx, notifications.Complete, "run finished")
	slog.Info("run finished")
}
