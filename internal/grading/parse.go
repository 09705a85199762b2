package grading

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/keiko-dev/keiko/internal/models"
)

// NeutralScore is substituted when the judge's reply cannot be parsed at
// all. Grading must never abort the run over a malformed reply.
const NeutralScore = 3

// judgmentParser attempts to extract a Judgment from a judge reply.
// Returns nil when the strategy does not apply.
type judgmentParser func(reply string) *models.Judgment

// parsers is the ordered strategy list: structured JSON first, then the
// SCORE: line-scan fallback. The first success wins; ParseJudgment appends
// the always-successful neutral default.
var parsers = []judgmentParser{
	parseJudgmentJSON,
	parseScoreLine,
}

// ParseJudgment interprets the judge's free-text reply. It always returns
// a Judgment; a reply with no recoverable score degrades to NeutralScore.
func ParseJudgment(reply string) *models.Judgment {
	for _, parse := range parsers {
		if j := parse(reply); j != nil {
			return j
		}
	}
	return &models.Judgment{
		Overall:   NeutralScore,
		Reasoning: "judge reply was not parseable; neutral fallback applied",
	}
}

// parseJudgmentJSON extracts a JSON object from the reply (tolerating
// markdown fences and surrounding prose) and decodes it. The decode is
// weakly typed so a judge returning "overall": 4.0 still parses. A JSON
// object without a numeric overall field does not count as a result.
func parseJudgmentJSON(reply string) *models.Judgment {
	raw, ok := extractJSONObject(reply)
	if !ok {
		return nil
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil
	}

	if !hasNumericOverall(fields) {
		return nil
	}

	var judgment models.Judgment
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &judgment,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil
	}
	if err := dec.Decode(fields); err != nil {
		return nil
	}

	return &judgment
}

func hasNumericOverall(fields map[string]any) bool {
	switch fields["overall"].(type) {
	case float64, json.Number:
		return true
	default:
		return false
	}
}

// parseScoreLine scans the reply's lines in reverse for one starting with
// "SCORE:" and parses the trailing integer.
func parseScoreLine(reply string) *models.Judgment {
	lines := strings.Split(reply, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, "SCORE:") {
			continue
		}
		score, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "SCORE:")))
		if err != nil {
			continue
		}
		return &models.Judgment{Overall: score}
	}
	return nil
}
