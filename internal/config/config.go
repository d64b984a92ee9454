// Package config loads movestats settings. Values come, in increasing
// priority, from built-in defaults, an optional YAML file, MOVESTATS_*
// environment variables and explicitly set command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Keys.
const (
	KeyDebug         = "debug"
	KeyCorpusDir     = "corpus_dir"
	KeyStoreDir      = "store_dir"
	KeyWorkers       = "workers"
	KeyFormat        = "format"
	KeyRaw           = "raw"
	KeySkipMalformed = "skip_malformed"
	KeyBlackFlag     = "black_flag"
	KeyWinFlag       = "win_flag"
	KeyPGNDir        = "pgn_dir"
	KeyOutDir        = "out_dir"
	KeyPlayers       = "players"
	KeyPieceCount    = "piece_count"
	KeyProgressEvery = "progress_every"
)

const EnvPrefix = "MOVESTATS"

var ErrInvalid = errors.New("invalid configuration")

// Short flag names that don't map to a key by swapping dashes.
var flagKeys = map[string]string{
	"dir":    KeyCorpusDir,
	"store":  KeyStoreDir,
	"pgn":    KeyPGNDir,
	"out":    KeyOutDir,
	"player": KeyPlayers,
	"pieces": KeyPieceCount,
}

type Config struct {
	*viper.Viper
}

// New returns a config holding the defaults and reading the environment.
func New() *Config {
	v := viper.New()

	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyCorpusDir, "")
	v.SetDefault(KeyStoreDir, "")
	v.SetDefault(KeyWorkers, 1)
	v.SetDefault(KeyFormat, "go")
	v.SetDefault(KeyRaw, false)
	v.SetDefault(KeySkipMalformed, false)
	v.SetDefault(KeyBlackFlag, "isBlack")
	v.SetDefault(KeyWinFlag, "isWin")
	v.SetDefault(KeyPGNDir, "data")
	v.SetDefault(KeyOutDir, "fragments")
	v.SetDefault(KeyPlayers, []string{})
	v.SetDefault(KeyPieceCount, 5)
	v.SetDefault(KeyProgressEvery, 1000)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return &Config{Viper: v}
}

// Load reads the optional YAML file at path, then applies every flag of fs
// that was set on the command line. fs must already be parsed.
func (c *Config) Load(path string, fs *flag.FlagSet) error {
	if path != "" {
		c.SetConfigFile(path)
		c.SetConfigType("yaml")
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	if fs != nil {
		c.ApplyFlags(fs)
	}
	return c.Validate()
}

// ApplyFlags copies explicitly set flags over every other source. The
// "config" flag itself is ignored.
func (c *Config) ApplyFlags(fs *flag.FlagSet) {
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			return
		}
		c.Set(FlagKey(f.Name), f.Value.String())
	})
}

// FlagKey maps a flag name to its config key.
func FlagKey(name string) string {
	if k, ok := flagKeys[name]; ok {
		return k
	}
	return strings.ReplaceAll(name, "-", "_")
}

// Players returns the tracked player aliases. A plain string is split on
// semicolons so that flags and environment variables can list several
// names; PGN names usually contain a comma themselves.
func (c *Config) Players() []string {
	var raw []string
	switch v := c.Get(KeyPlayers).(type) {
	case string:
		raw = strings.Split(v, ";")
	case []string:
		raw = v
	case []any:
		for _, p := range v {
			raw = append(raw, fmt.Sprint(p))
		}
	}

	var out []string
	for _, name := range raw {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func (c *Config) Validate() error {
	if n := c.GetInt(KeyWorkers); n < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalid, n)
	}
	if n := c.GetInt(KeyPieceCount); n <= 0 {
		return fmt.Errorf("%w: piece_count must be positive, got %d", ErrInvalid, n)
	}
	if c.GetString(KeyBlackFlag) == "" || c.GetString(KeyWinFlag) == "" {
		return fmt.Errorf("%w: black_flag and win_flag must be set", ErrInvalid)
	}
	if dir := c.GetString(KeyCorpusDir); dir != "" && dir == c.GetString(KeyStoreDir) {
		return fmt.Errorf("%w: corpus_dir and store_dir point at the same directory", ErrInvalid)
	}
	return nil
}
