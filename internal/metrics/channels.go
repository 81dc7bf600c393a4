package metrics

import "github.com/guavas/leadgen-go/internal/models"

// ScoredChannel is a channel record augmented with its efficiency score.
type ScoredChannel struct {
	models.ChannelRecord
	EfficiencyScore float64 `json:"efficiency_score"`
}

// ScoreChannels augments each record with its efficiency score, preserving
// input order. Inputs are never mutated.
func (c *Calculator) ScoreChannels(channels []models.ChannelRecord) []ScoredChannel {
	out := make([]ScoredChannel, 0, len(channels))
	for _, ch := range channels {
		out = append(out, ScoredChannel{
			ChannelRecord:   ch,
			EfficiencyScore: round1(c.ChannelEfficiencyScore(ch.Leads, ch.CPL, ch.ConversionRate)),
		})
	}
	return out
}

func round1(f float64) float64 { return float64(int64(f*10+0.5)) / 10 }
