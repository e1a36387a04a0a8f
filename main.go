package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"

	"noventagrados/config"
	"noventagrados/messages"
	"noventagrados/server"
	"noventagrados/session"
	"noventagrados/textui"
)

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(2)
	}
	setupLogging(cfg)

	if cfg.Web {
		err = serve(cfg)
	} else {
		err = play(cfg)
	}
	if err != nil {
		log.Error().Stack().Err(err).Msg("internal error")
		os.Exit(1)
	}
}

func setupLogging(cfg config.Config) {
	zerolog.SetGlobalLevel(cfg.Level)
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
}

func play(cfg config.Config) error {
	s, err := session.New(cfg.Strategy)
	if err != nil {
		return err
	}
	ui := textui.New(os.Stdin, os.Stdout, messages.NewPrinter(cfg.Lang))
	return ui.Run(s)
}

func serve(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(cfg.Strategy)
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx, cfg.Addr)
}
