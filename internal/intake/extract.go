package intake

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

var fenceRe = regexp.MustCompile("(?s)```([a-zA-Z]*)[ \t]*\n?(.*?)```")

// Extract splits raw model output into human narrative and the embedded
// structured payload. The payload candidate is the first fence tagged json;
// without one, the span from the first '{' to the last '}'. A candidate that
// cannot be parsed (even after repair) yields nil — extraction failure is
// never fatal.
func Extract(text string) (string, map[string]any) {
	candidate := ""
	for _, m := range fenceRe.FindAllStringSubmatch(text, -1) {
		if strings.EqualFold(m[1], "json") {
			candidate = m[2]
			break
		}
	}

	if candidate == "" {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start >= 0 && end > start {
			candidate = text[start : end+1]
		}
	}

	// Narrative drops every fenced block, not just the structured one.
	narrative := strings.TrimSpace(fenceRe.ReplaceAllString(text, ""))

	return narrative, parseObject(candidate)
}

func parseObject(candidate string) map[string]any {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return nil
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate), &obj); err == nil {
		return obj
	}

	// Tolerate prose around the braces inside the block itself.
	start := strings.Index(candidate, "{")
	end := strings.LastIndex(candidate, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(candidate[start:end+1]), &obj); err == nil {
			return obj
		}
		candidate = candidate[start : end+1]
	}

	// Second chance: models routinely emit almost-JSON.
	repaired, err := jsonrepair.JSONRepair(candidate)
	if err != nil {
		return nil
	}
	if err := json.Unmarshal([]byte(repaired), &obj); err != nil {
		return nil
	}
	return obj
}
