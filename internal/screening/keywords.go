package screening

import (
	"math"
	"strings"

	"riskwatch/internal/model"
)

// DefaultCrisisKeywords flag acute self-harm risk on any match
var DefaultCrisisKeywords = []string{"suicide", "kill myself", "end it", "hopeless", "hurt myself", "goodbye"}

// DefaultDistressKeywords each add 0.2 to the fallback distress score
var DefaultDistressKeywords = []string{"sad", "depressed", "stressed", "angry", "lonely", "fail"}

// distressPerKeyword is the score added per matched distress keyword
const distressPerKeyword = 0.2

// KeywordScreener is the local fallback. It is total: every input,
// including the empty string, yields a result.
type KeywordScreener struct {
	crisis   []string
	distress []string
}

// NewKeywordScreener lowercases the keyword lists once. Nil lists select
// the defaults.
func NewKeywordScreener(crisis, distress []string) *KeywordScreener {
	if crisis == nil {
		crisis = DefaultCrisisKeywords
	}
	if distress == nil {
		distress = DefaultDistressKeywords
	}
	return &KeywordScreener{crisis: lowerAll(crisis), distress: lowerAll(distress)}
}

// Screen matches case-insensitive substrings
func (k *KeywordScreener) Screen(text string) model.TextScreenResult {
	lower := strings.ToLower(text)

	matched := 0
	for _, kw := range k.distress {
		if kw != "" && strings.Contains(lower, kw) {
			matched++
		}
	}

	crisis := false
	for _, kw := range k.crisis {
		if kw != "" && strings.Contains(lower, kw) {
			crisis = true
			break
		}
	}

	return model.TextScreenResult{
		DistressScore: math.Min(1.0, distressPerKeyword*float64(matched)),
		CrisisFlag:    crisis,
		Source:        model.SourceFallback,
	}
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}
