// Package report renders action tables for use as constant data.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hailam/movestats/internal/actions"
	"github.com/hailam/movestats/internal/board"
)

// Format selects the output layout.
type Format string

const (
	FormatGo   Format = "go"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatGo, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want go, json or yaml)", s)
}

var sectionHeaders = [actions.NumMaterialStates]string{
	"// Winning Block",
	"// Losing Block",
	"// Neutral Block",
}

// RowSource is anything that can hand out rows by state and piece;
// both the raw tensor and the normalized table qualify.
type RowSource interface {
	Row(state actions.MaterialState, piece board.PieceType) actions.Row
}

// Write renders rows in the chosen format.
func Write(w io.Writer, rows RowSource, format Format) error {
	switch format {
	case FormatGo, "":
		return WriteGo(w, rows)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(structured(rows))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(structured(rows)); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", format)
}

// WriteGo writes the rows as a comma separated block per material state,
// one row per piece with a trailing piece comment:
//
//	// Winning Block
//	1 , 96, 1 , 1 , 1 , //K
//
// Every row ends with a comma except the very last one, so the output can
// be pasted into an array literal.
func WriteGo(w io.Writer, rows RowSource) error {
	for _, s := range actions.MaterialStates {
		if _, err := fmt.Fprintln(w, sectionHeaders[s]); err != nil {
			return err
		}
		for _, pt := range board.PieceTypes {
			row := rows.Row(s, pt)
			cells := make([]string, len(row))
			for i, v := range row {
				cells[i] = fmt.Sprintf("%-2d", v)
			}
			line := strings.Join(cells, ", ")
			if !(s == actions.Neutral && pt == board.Pawn) {
				line += ","
			}
			if _, err := fmt.Fprintf(w, "%s //%s\n", line, pt.Label()); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// structured maps state name -> piece label -> row.
func structured(rows RowSource) map[string]map[string][]int {
	out := make(map[string]map[string][]int, actions.NumMaterialStates)
	for _, s := range actions.MaterialStates {
		pieces := make(map[string][]int, board.NumPieceTypes)
		for _, pt := range board.PieceTypes {
			row := rows.Row(s, pt)
			pieces[pt.Label()] = append([]int(nil), row[:]...)
		}
		out[s.String()] = pieces
	}
	return out
}
