package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	c := New()
	is.NoErr(c.Load("", nil))

	is.Equal(c.GetInt(KeyWorkers), 1)
	is.Equal(c.GetString(KeyFormat), "go")
	is.Equal(c.GetString(KeyBlackFlag), "isBlack")
	is.Equal(c.GetString(KeyWinFlag), "isWin")
	is.Equal(c.GetInt(KeyPieceCount), 5)
	is.True(!c.GetBool(KeySkipMalformed))
	is.Equal(len(c.Players()), 0)
}

func TestPrecedence(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "movestats.yaml")
	is.NoErr(os.WriteFile(path, []byte(`
workers: 4
format: json
black_flag: isDingBlack
win_flag: isDingWin
players:
  - Ding, Liren
  - Ding Liren
`), 0644))

	t.Setenv("MOVESTATS_FORMAT", "yaml")
	t.Setenv("MOVESTATS_SKIP_MALFORMED", "true")

	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	fs.String("config", "", "")
	fs.Int("workers", 1, "")
	fs.Int("pieces", 5, "")
	fs.String("dir", "", "")
	is.NoErr(fs.Parse([]string{"-config", path, "-workers", "8", "-dir", "json_5"}))

	c := New()
	is.NoErr(c.Load(path, fs))

	is.Equal(c.GetInt(KeyWorkers), 8)                  // flag beats file
	is.Equal(c.GetString(KeyFormat), "yaml")           // env beats file
	is.Equal(c.GetString(KeyBlackFlag), "isDingBlack") // file beats default
	is.Equal(c.GetInt(KeyPieceCount), 5)               // unset flag leaves default
	is.Equal(c.GetString(KeyCorpusDir), "json_5")
	is.True(c.GetBool(KeySkipMalformed))
	is.Equal(c.Players(), []string{"Ding, Liren", "Ding Liren"})
}

func TestPlayersFromString(t *testing.T) {
	is := is.New(t)
	t.Setenv("MOVESTATS_PLAYERS", "Ding, Liren ;Ding Liren;;")

	c := New()
	is.Equal(c.Players(), []string{"Ding, Liren", "Ding Liren"})
}

func TestFlagKey(t *testing.T) {
	tests := map[string]string{
		"dir":            KeyCorpusDir,
		"store":          KeyStoreDir,
		"player":         KeyPlayers,
		"pieces":         KeyPieceCount,
		"skip-malformed": KeySkipMalformed,
		"black-flag":     KeyBlackFlag,
		"workers":        KeyWorkers,
	}
	for in, want := range tests {
		if got := FlagKey(in); got != want {
			t.Errorf("FlagKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"negative workers", KeyWorkers, -1},
		{"zero pieces", KeyPieceCount, 0},
		{"empty flag name", KeyWinFlag, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			c := New()
			c.Set(tt.key, tt.val)
			is.True(c.Validate() != nil)
		})
	}

	is := is.New(t)
	c := New()
	c.Set(KeyCorpusDir, "data")
	c.Set(KeyStoreDir, "data")
	is.True(c.Validate() != nil)
}

func TestLoadMissingFile(t *testing.T) {
	is := is.New(t)
	err := New().Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	is.True(err != nil)
}
