package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/orkadia/orkadia/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// cli carries what every subcommand needs.
type cli struct {
	cfg *config.Config
	log *slog.Logger
	out io.Writer
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "version", "-v":
			fmt.Fprintln(out, "orkadia "+version)
			return nil
		case "help", "--help", "-h":
			printHelp(out)
			return nil
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c := &cli{
		cfg: cfg,
		log: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})),
		out: out,
	}

	if len(args) == 0 {
		return c.runTUI(ctx)
	}
	rest := args[1:]
	switch args[0] {
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout()
	case "whoami":
		return c.runWhoami(ctx)
	case "theme":
		return c.runTheme(rest)
	case "redeem":
		return c.runRedeem(ctx, rest)
	case "invites":
		return c.runInvites(ctx)
	case "invite-new":
		return c.runInviteNew(ctx, rest)
	case "send":
		return c.runSend(ctx, rest)
	case "block":
		return c.runBlock(ctx, rest)
	case "unblock":
		return c.runUnblock(ctx, rest)
	default:
		return fmt.Errorf("unknown command %q (see orkadia help)", args[0])
	}
}
