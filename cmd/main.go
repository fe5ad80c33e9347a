package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/luca-patrignani/token-ring/game"
)

type settings struct {
	cfg       game.Config
	transport game.Transport
	tls       bool
	verbose   bool
}

func parseFlags(args []string, output io.Writer) (settings, error) {
	var s settings
	var transport string
	fs := flag.NewFlagSet("token-ring", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&s.cfg.Peers, "p", 0, "number of actors in the ring")
	fs.IntVar(&s.cfg.InitialToken, "t", 0, "initial value of the token")
	fs.IntVar(&s.cfg.MaxDecrement, "M", 0, "exclusive upper bound of a random decrement")
	fs.StringVar(&transport, "transport", game.TransportLocal.String(), "transport between actors: local or http")
	fs.BoolVar(&s.tls, "tls", false, "use mutual TLS between http actors")
	fs.BoolVar(&s.verbose, "v", false, "log every message")
	if err := fs.Parse(args); err != nil {
		return s, err
	}
	if fs.NArg() > 0 {
		return s, fmt.Errorf("%w: unexpected arguments %v", game.ErrInvalidConfig, fs.Args())
	}
	t, err := game.ParseTransport(transport)
	if err != nil {
		return s, err
	}
	s.transport = t
	if s.tls && s.transport != game.TransportHTTP {
		return s, fmt.Errorf("%w: -tls requires -transport http", game.ErrInvalidConfig)
	}
	return s, s.cfg.Validate()
}

func main() {
	s, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\nusage: %s -p <actors> -t <initial token> -M <max decrement>\n", err, os.Args[0])
		os.Exit(1)
	}

	plogger := pterm.DefaultLogger.WithLevel(pterm.LogLevelInfo)
	if s.verbose {
		plogger = plogger.WithLevel(pterm.LogLevelDebug)
	}
	logger := slog.New(pterm.NewSlogHandler(plogger))

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Token ", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("Ring", pterm.FgDarkGray.ToStyle()),
	).Render()
	pterm.Info.Printfln("%d actors, initial token %d, decrements in [0, %d), %s transport",
		s.cfg.Peers, s.cfg.InitialToken, s.cfg.MaxDecrement, s.transport)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	out, err := game.Play(ctx, s.cfg,
		game.WithLogger(logger),
		game.WithTransport(s.transport),
		game.WithTLS(s.tls),
	)
	if err != nil {
		logger.Error("game failed", "err", err)
		os.Exit(1)
	}
	pterm.Println()
	pterm.Success.Printfln("actor %d is the winner", out.Winner)
	printSummary(out)
	if err := out.Ledger.Verify(); err != nil {
		logger.Error("ledger verification failed", "err", err)
		os.Exit(1)
	}
}
