package fragment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"

	"github.com/hailam/movestats/internal/record"
)

// Stats counts what an extraction did.
type Stats struct {
	Files   int
	Games   int
	Written int
	Skipped int
	Errors  int
}

// ScanPGN builds a fragment for every game in r and hands it to fn.
// Games without a fragment are counted as skipped.
func (b *Builder) ScanPGN(ctx context.Context, r io.Reader, fn func(n int, rec *record.GameRecord) error) (Stats, error) {
	var stats Stats
	scanner := chess.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Games++
		rec, err := b.Build(scanner.Next())
		if err != nil {
			log.Debug().Err(err).Int("game", stats.Games).Msg("no fragment")
			stats.Skipped++
			continue
		}
		if err := fn(stats.Games, rec); err != nil {
			return stats, err
		}
		stats.Written++
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return stats, err
	}
	return stats, nil
}

// ExtractDir reads every *.pgn file in pgnDir and writes one JSON fragment
// per qualifying game into outDir. A file that fails to parse is logged and
// skipped; the other files are still processed.
func (b *Builder) ExtractDir(ctx context.Context, pgnDir, outDir string, codec *record.Codec) (Stats, error) {
	var total Stats

	entries, err := os.ReadDir(pgnDir)
	if err != nil {
		return total, err
	}
	var files []string
	for _, de := range entries {
		if !de.IsDir() && strings.EqualFold(filepath.Ext(de.Name()), ".pgn") {
			files = append(files, de.Name())
		}
	}
	sort.Strings(files)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return total, err
	}

	for _, name := range files {
		stats, err := b.extractFile(ctx, filepath.Join(pgnDir, name), outDir, codec)
		total.Files++
		total.Games += stats.Games
		total.Written += stats.Written
		total.Skipped += stats.Skipped
		if err != nil {
			if ctx.Err() != nil {
				return total, ctx.Err()
			}
			log.Warn().Err(err).Str("file", name).Msg("parsing error, skipping")
			total.Errors++
		}
	}

	log.Info().Int("files", total.Files).Int("games", total.Games).Int("written", total.Written).
		Int("skipped", total.Skipped).Int("errors", total.Errors).Msg("fragment extraction done")
	return total, nil
}

func (b *Builder) extractFile(ctx context.Context, path, outDir string, codec *record.Codec) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, err
	}
	defer f.Close()

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return b.ScanPGN(ctx, f, func(n int, rec *record.GameRecord) error {
		data, err := codec.Encode(rec)
		if err != nil {
			return err
		}
		out := filepath.Join(outDir, fmt.Sprintf("%s-%d.json", base, n))
		return os.WriteFile(out, data, 0644)
	})
}
