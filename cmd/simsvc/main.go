package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yonti32-ux/roguelike-sub002/internal/battle"
	"github.com/yonti32-ux/roguelike-sub002/internal/config"
)

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

func main() {
	var cfgDir, out string
	var seed int64
	var n, rounds, workers int
	var saveLog, verbose bool
	flag.StringVar(&cfgDir, "config", "assets", "config dir")
	flag.StringVar(&out, "out", "out.json", "output file (single) or summary file (batch)")
	flag.Int64Var(&seed, "seed", 12345, "seed")
	flag.IntVar(&n, "n", 1, "number of simulations")
	flag.IntVar(&rounds, "rounds", 50, "max rounds per battle")
	flag.IntVar(&workers, "workers", 8, "parallel battles in batch mode")
	flag.BoolVar(&saveLog, "log", true, "save full event log when n==1")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	log, err := newLogger(verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	tc, sc, ac, bc, err := config.LoadAll(cfgDir)
	if err != nil {
		log.Fatal("load config", zap.String("dir", cfgDir), zap.Error(err))
	}
	setup := battle.Setup{Tuning: tc, Skills: sc, Archetypes: ac, Scenario: bc, Logger: log}

	if n <= 1 {
		setup.Seed = seed
		setup.Record = saveLog
		s, err := battle.New(setup)
		if err != nil {
			log.Fatal("build battle", zap.Error(err))
		}
		res, err := s.Run(rounds)
		if err != nil {
			log.Fatal("run battle", zap.Error(err))
		}
		if err := os.WriteFile(out, battle.MarshalPretty(res), 0644); err != nil {
			log.Fatal("write result", zap.String("out", out), zap.Error(err))
		}
		log.Info("single simsvc finished",
			zap.String("battle", res.ID),
			zap.String("winner", res.Winner),
			zap.Int("rounds", res.Rounds),
			zap.String("out", out))
		return
	}

	quiet := log.WithOptions(zap.IncreaseLevel(zap.WarnLevel))
	summary := runBatch(setup, n, workers, rounds, seed, quiet).summary()
	if err := os.WriteFile(out, battle.MarshalPretty(summary), 0644); err != nil {
		log.Fatal("write summary", zap.String("out", out), zap.Error(err))
	}
	log.Info("batch done",
		zap.Int("runs", summary.Runs),
		zap.Int("failed", summary.Failed),
		zap.Float64("ally_win_rate", summary.AllyWinRate),
		zap.String("out", filepath.Base(out)))
}
