package runner

import (
	"github.com/hailam/movestats/internal/actions"
	"github.com/hailam/movestats/internal/record"
)

// Summary stores corpus totals for a run.
type Summary struct {
	Records          int `json:"records"`
	Skipped          int `json:"skipped"`
	Wins             int `json:"wins"`
	Losses           int `json:"losses"`
	Draws            int `json:"draws"`
	Plies            int `json:"plies"`
	Classified       int `json:"classified"`
	StoppedOnCapture int `json:"stopped_on_capture"`
}

func (s *Summary) addRecord(rec *record.GameRecord, stats actions.ReplayStats) {
	s.Records++
	switch {
	case rec.IsDraw:
		s.Draws++
	case rec.TrackedPlayerWon:
		s.Wins++
	default:
		s.Losses++
	}
	s.Plies += stats.Plies
	s.Classified += stats.Classified
	if stats.StoppedOnCapture {
		s.StoppedOnCapture++
	}
}

// Add merges another summary into s.
func (s *Summary) Add(o Summary) {
	s.Records += o.Records
	s.Skipped += o.Skipped
	s.Wins += o.Wins
	s.Losses += o.Losses
	s.Draws += o.Draws
	s.Plies += o.Plies
	s.Classified += o.Classified
	s.StoppedOnCapture += o.StoppedOnCapture
}

// WinRate returns the tracked player's win rate as a percentage (0-100)
func (s Summary) WinRate() float64 {
	if s.Records == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Records) * 100
}
