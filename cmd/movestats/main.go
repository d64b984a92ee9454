// Command movestats builds per-piece move statistics from chess endgame
// fragments.
//
//	movestats extract   -dir json_5 [-workers 4] [-format go|json|yaml] [-raw]
//	movestats import    -dir json_5 [-store path]
//	movestats fragments -pgn data -out json_5 -player "Ding, Liren" [-pieces 5]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hailam/movestats/internal/config"
)

type command struct {
	name  string
	usage string
	flags func(fs *flag.FlagSet)
	run   func(ctx context.Context, cfg *config.Config) error
}

var commands = []command{
	{"extract", "fold a fragment corpus into the action table", extractFlags, runExtract},
	{"import", "copy a fragment directory into the corpus store", importFlags, runImport},
	{"fragments", "cut endgame fragments out of PGN files", fragmentFlags, runFragments},
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, ok := lookup(os.Args[1])
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	fs := flag.NewFlagSet(cmd.name, flag.ExitOnError)
	configPath := fs.String("config", "", "YAML config file")
	fs.Bool("debug", false, "enable debug logging")
	cmd.flags(fs)
	fs.Parse(os.Args[2:])

	cfg := config.New()
	if err := cfg.Load(*configPath, fs); err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	if cfg.GetBool(config.KeyDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Debug().Msgf("Loaded config: %v", cfg.AllSettings())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	if err := cmd.run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msgf("%s failed", cmd.name)
	}
	log.Info().Msgf("%s done in %v", cmd.name, time.Since(start).Round(time.Millisecond))
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: movestats <command> [flags]")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", c.name, c.usage)
	}
}
