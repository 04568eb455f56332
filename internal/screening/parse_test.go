package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		distress float64
		crisis   bool
	}{
		{"plain", `{"distress_score": 0.8, "crisis_flag": true}`, 0.8, true},
		{"fenced json", "```json\n{\"distress_score\": 0.2, \"crisis_flag\": false}\n```", 0.2, false},
		{"bare fence", "```\n{\"distress_score\": 0, \"crisis_flag\": false}\n```", 0, false},
		{"inline fence", "```json {\"distress_score\": 1, \"crisis_flag\": true}```", 1, true},
		{"percentage", `{"distress_score": 65, "crisis_flag": false}`, 0.65, false},
		{"extra keys", `{"distress_score": 0.5, "crisis_flag": false, "reason": "exams"}`, 0.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseResponse(tt.raw)
			require.NoError(t, err)
			assert.InDelta(t, tt.distress, res.DistressScore, 1e-12)
			assert.Equal(t, tt.crisis, res.CrisisFlag)
		})
	}
}

func TestParseResponseRejects(t *testing.T) {
	for _, raw := range []string{
		"",
		"```json\n```",
		"not json",
		`[]`,
		`{"crisis_flag": true}`,
		`{"distress_score": 0.4}`,
		`{"distress_score": "0.4", "crisis_flag": true}`,
		`{"distress_score": 0.4, "crisis_flag": "yes"}`,
		`{"distress_score": -0.1, "crisis_flag": false}`,
		`{"distress_score": 140, "crisis_flag": false}`,
	} {
		_, err := ParseResponse(raw)
		assert.ErrorIs(t, err, ErrUnparseable, raw)
	}
}
