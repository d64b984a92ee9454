package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/hailam/movestats/internal/config"
	"github.com/hailam/movestats/internal/corpus"
	"github.com/hailam/movestats/internal/fragment"
	"github.com/hailam/movestats/internal/record"
	"github.com/hailam/movestats/internal/report"
	"github.com/hailam/movestats/internal/runner"
)

func extractFlags(fs *flag.FlagSet) {
	fs.String("dir", "", "directory of JSON fragments (default: read the corpus store)")
	fs.String("store", "", "corpus store directory")
	fs.Int("workers", 1, "number of parallel workers")
	fs.String("format", "go", "output format: go, json or yaml")
	fs.Bool("raw", false, "print raw counts instead of normalized weights")
	fs.Bool("skip-malformed", false, "log and skip undecodable fragments")
	fs.String("black-flag", record.DefaultBlackFlag, "fragment field holding the tracked color")
	fs.String("win-flag", record.DefaultWinFlag, "fragment field holding the tracked result")
}

func runExtract(ctx context.Context, cfg *config.Config) error {
	format, err := report.ParseFormat(cfg.GetString(config.KeyFormat))
	if err != nil {
		return err
	}

	var src corpus.Source
	if dir := cfg.GetString(config.KeyCorpusDir); dir != "" {
		src = corpus.NewDir(dir)
		log.Info().Msgf("Reading fragments from %s", dir)
	} else {
		store, err := corpus.OpenStore(cfg.GetString(config.KeyStoreDir))
		if err != nil {
			return err
		}
		defer store.Close()
		n, err := store.Count()
		if err != nil {
			return err
		}
		if n == 0 {
			return errors.New("corpus store is empty; run import or pass -dir")
		}
		log.Info().Msgf("Reading %d fragments from the corpus store", n)
		src = store
	}

	result, err := runner.Run(ctx, src, runner.Options{
		Workers:       cfg.GetInt(config.KeyWorkers),
		SkipMalformed: cfg.GetBool(config.KeySkipMalformed),
		Codec:         record.NewCodec(cfg.GetString(config.KeyBlackFlag), cfg.GetString(config.KeyWinFlag)),
		ProgressEvery: cfg.GetInt(config.KeyProgressEvery),
	})
	if err != nil {
		return err
	}

	s := result.Summary
	log.Info().
		Int("records", s.Records).
		Int("skipped", s.Skipped).
		Int("plies", s.Plies).
		Int("classified", s.Classified).
		Int("stopped_on_capture", s.StoppedOnCapture).
		Msgf("W/L/D %d/%d/%d (%.1f%% wins)", s.Wins, s.Losses, s.Draws, s.WinRate())

	var rows report.RowSource = result.Table()
	if cfg.GetBool(config.KeyRaw) {
		rows = result.Tensor
	}
	return report.Write(os.Stdout, rows, format)
}

func importFlags(fs *flag.FlagSet) {
	fs.String("dir", "", "directory of JSON fragments to import")
	fs.String("store", "", "corpus store directory")
}

func runImport(ctx context.Context, cfg *config.Config) error {
	dir := cfg.GetString(config.KeyCorpusDir)
	if dir == "" {
		return errors.New("import needs -dir")
	}

	store, err := corpus.OpenStore(cfg.GetString(config.KeyStoreDir))
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Import(ctx, corpus.NewDir(dir))
	if err != nil {
		return err
	}
	log.Info().Msgf("Imported %d of %d fragments (%d duplicates)", stats.Added, stats.Seen, stats.Duplicate)
	return nil
}

func fragmentFlags(fs *flag.FlagSet) {
	fs.String("pgn", "data", "directory of PGN files")
	fs.String("out", "fragments", "directory the JSON fragments are written to")
	fs.String("player", "", "semicolon separated aliases of the tracked player")
	fs.Int("pieces", fragment.DefaultPieceCount, "piece count at which a fragment starts")
	fs.String("black-flag", record.DefaultBlackFlag, "fragment field holding the tracked color")
	fs.String("win-flag", record.DefaultWinFlag, "fragment field holding the tracked result")
}

func runFragments(ctx context.Context, cfg *config.Config) error {
	players := cfg.Players()
	if len(players) == 0 {
		return errors.New("fragments needs at least one -player alias")
	}

	b := fragment.NewBuilder(players, cfg.GetInt(config.KeyPieceCount))
	codec := record.NewCodec(cfg.GetString(config.KeyBlackFlag), cfg.GetString(config.KeyWinFlag))
	_, err := b.ExtractDir(ctx, cfg.GetString(config.KeyPGNDir), cfg.GetString(config.KeyOutDir), codec)
	return err
}
