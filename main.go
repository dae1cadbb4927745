package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"settlement-quote/internal/config"
	"settlement-quote/internal/engine"
	"settlement-quote/internal/handler"
	"settlement-quote/internal/ratetable"
	"settlement-quote/internal/valuation"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	log = log.Level(cfg.LogLevel)

	table, err := ratetable.Load(cfg.RateTablePath)
	if err != nil {
		log.Fatal().Err(err).Msg("rate table rejected")
	}
	source := cfg.RateTablePath
	if source == "" {
		source = "embedded"
	}
	log.Info().
		Str("source", source).
		Int("keys", len(table.Keys())).
		Float64("base_rate", table.BaseRate()).
		Msg("rate table loaded")
	if !cfg.Today.IsZero() {
		log.Warn().Time("today", cfg.Today).Msg("valuation date pinned")
	}

	calc := valuation.NewCalculator(table, cfg.Clock())
	h := handler.New(engine.New(calc, log), log)

	server := &fasthttp.Server{
		Handler:      h.ServeHTTP,
		Name:         "settlement-quote",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info().Str("addr", cfg.ListenAddr).Msg("quote engine starting")
	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
