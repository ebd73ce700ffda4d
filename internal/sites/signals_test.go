package sites_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/newscrawl/internal/sites"
)

// signalGrid enumerates every signal combination across the body-length
// bands the scoring tables distinguish.
func signalGrid() []sites.Signals {
	bools := []bool{false, true}
	bodyLens := []int{0, 50, 301, 501, 5000}

	var grid []sites.Signals
	for _, jsonld := range bools {
		for _, title := range bools {
			for _, author := range bools {
				for _, bodyLen := range bodyLens {
					grid = append(grid, sites.Signals{
						HasJSONLD: jsonld,
						HasTitle:  title,
						HasAuthor: author,
						BodyLen:   bodyLen,
					})
				}
			}
		}
	}
	return grid
}

func TestScores_WithinBounds(t *testing.T) {
	t.Parallel()

	scorers := map[string]func(sites.Signals) float64{
		"ap":       sites.APScore,
		"bbc":      sites.BBCScore,
		"cbs":      sites.CBSScore,
		"cnn":      sites.CNNScore,
		"foxnews":  sites.FoxScore,
		"guardian": sites.GuardianScore,
		"nbc":      sites.NBCScore,
		"nyt":      sites.NYTScore,
		"generic":  sites.GenericScore,
	}
	for name, score := range scorers {
		for _, sig := range signalGrid() {
			c := score(sig)
			assert.GreaterOrEqual(t, c, 0.0, "%s score for %+v", name, sig)
			assert.LessOrEqual(t, c, 1.0, "%s score for %+v", name, sig)
		}
	}
}

func TestScores_HardCaps(t *testing.T) {
	t.Parallel()

	caps := map[string]struct {
		score func(sites.Signals) float64
		cap   float64
	}{
		"bbc":     {sites.BBCScore, 0.90},
		"foxnews": {sites.FoxScore, 0.75},
		"nyt":     {sites.NYTScore, 0.70},
		"generic": {sites.GenericScore, 0.80},
	}
	for name, tc := range caps {
		for _, sig := range signalGrid() {
			assert.LessOrEqual(t, tc.score(sig), tc.cap, "%s cap for %+v", name, sig)
		}
	}
}

func TestAPScore_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		sig  sites.Signals
		want float64
	}{
		{"jsonld and long body", sites.Signals{HasJSONLD: true, BodyLen: 600}, 0.95},
		{"jsonld and short body", sites.Signals{HasJSONLD: true, BodyLen: 100}, 0.90},
		{"long body only", sites.Signals{BodyLen: 600}, 0.80},
		{"short body only", sites.Signals{BodyLen: 100}, 0.75},
		{"nothing", sites.Signals{HasJSONLD: true, HasTitle: true}, 0.50},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, sites.APScore(tt.sig), 0)
		})
	}
}

func TestGuardianScore_AuthorRaisesScore(t *testing.T) {
	t.Parallel()

	with := sites.Signals{HasJSONLD: true, HasTitle: true, HasAuthor: true, BodyLen: 600}
	without := with
	without.HasAuthor = false

	assert.InDelta(t, 0.90, sites.GuardianScore(with), 0)
	assert.InDelta(t, 0.88, sites.GuardianScore(without), 0)
}

func TestScores_FloorWithoutTitle(t *testing.T) {
	t.Parallel()

	// Title-dependent tables fall to their floor when only a body exists.
	sig := sites.Signals{BodyLen: 5000}
	assert.InDelta(t, 0.60, sites.BBCScore(sig), 0)
	assert.InDelta(t, 0.50, sites.FoxScore(sig), 0)
	assert.InDelta(t, 0.50, sites.NYTScore(sig), 0)
}
