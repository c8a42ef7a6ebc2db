package intake

import (
	"strconv"

	"github.com/google/uuid"
)

var validRisk = map[Risk]bool{
	RiskMinimal:    true,
	RiskLimited:    true,
	RiskHigh:       true,
	RiskProhibited: true,
	RiskUnknown:    true,
}

// SanitizePatch coerces an untrusted decoded JSON value into a StatePatch.
// Model output is adversarial by nature: any shape mismatch degrades to
// omission, never to an error.
func SanitizePatch(raw any) StatePatch {
	obj, ok := raw.(map[string]any)
	if !ok {
		return StatePatch{}
	}

	var patch StatePatch

	if org, ok := obj["org"].(map[string]any); ok {
		patch.Org = sanitizeOrg(org)
	}

	if roles, ok := obj["roles"].([]any); ok {
		patch.Roles = stringItems(roles)
	}

	if ucs, ok := obj["useCases"].([]any); ok {
		patch.UseCases = make([]UseCasePatch, 0, len(ucs))
		for _, uc := range ucs {
			patch.UseCases = append(patch.UseCases, sanitizeUseCase(uc))
		}
	}

	return patch
}

// sanitizeOrg copies a field whenever its key is present and coercible.
// A provided empty string survives: it is an explicit clear, distinct from
// an absent key that leaves the prior value alone.
func sanitizeOrg(obj map[string]any) *OrgPatch {
	org := &OrgPatch{}
	if v, ok := obj["name"]; ok {
		org.Name = coerceString(v)
	}
	if v, ok := obj["country"]; ok {
		org.Country = coerceString(v)
	}
	if v, ok := obj["industry"]; ok {
		org.Industry = coerceString(v)
	}
	if v, ok := obj["size"]; ok {
		org.Size = coerceString(v)
	}
	return org
}

func sanitizeUseCase(raw any) UseCasePatch {
	var uc UseCasePatch

	obj, ok := raw.(map[string]any)
	if !ok {
		uc.ID = fallbackID()
		return uc
	}

	if id := stringValue(obj["id"]); id != nil {
		uc.ID = *id
	} else {
		uc.ID = fallbackID()
	}

	uc.Name = stringValue(obj["name"])
	uc.Description = stringValue(obj["description"])
	uc.Process = stringValue(obj["process"])
	uc.Owner = stringValue(obj["owner"])
	uc.Model = stringValue(obj["model"])

	if b, ok := obj["inScope"].(bool); ok {
		uc.InScope = &b
	}

	if r := stringValue(obj["risk"]); r != nil && validRisk[Risk(*r)] {
		risk := Risk(*r)
		uc.Risk = &risk
	}

	if items, ok := obj["data"].([]any); ok {
		uc.Data = stringItems(items)
	}
	if items, ok := obj["subjects"].([]any); ok {
		uc.Subjects = stringItems(items)
	}
	if items, ok := obj["jurisdictions"].([]any); ok {
		uc.Jurisdictions = stringItems(items)
	}

	return uc
}

// SanitizeRoadmap applies the same defensive validation to roadmap entries
// the model emits alongside state updates. Tasks without a usable dueInDays
// are dropped; horizons beyond 90 days are capped.
func SanitizeRoadmap(raw any) []RoadmapEntry {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}

	out := make([]RoadmapEntry, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}

		var entry RoadmapEntry
		if v := stringValue(obj["useCaseId"]); v != nil {
			entry.UseCaseID = *v
		}
		if v := stringValue(obj["useCaseName"]); v != nil {
			entry.UseCaseName = *v
		}

		if risk, ok := obj["risk"].(map[string]any); ok {
			if v := stringValue(risk["level"]); v != nil {
				entry.Risk.Level = *v
			}
			if v := stringValue(risk["rationale"]); v != nil {
				entry.Risk.Rationale = *v
			}
		}

		if tasks, ok := obj["tasks"].([]any); ok {
			for _, t := range tasks {
				task, ok := sanitizeTask(t)
				if !ok {
					continue
				}
				entry.Tasks = append(entry.Tasks, task)
			}
		}

		out = append(out, entry)
	}

	return out
}

func sanitizeTask(raw any) (RoadmapTask, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return RoadmapTask{}, false
	}

	due, ok := obj["dueInDays"].(float64)
	if !ok || due <= 0 {
		return RoadmapTask{}, false
	}
	days := int(due)
	if days > 90 {
		days = 90
	}

	task := RoadmapTask{DueInDays: days}
	if v := stringValue(obj["title"]); v != nil {
		task.Title = *v
	}
	if v := stringValue(obj["owner"]); v != nil {
		task.Owner = *v
	}
	if v := stringValue(obj["acceptance"]); v != nil {
		task.Acceptance = *v
	}
	return task, true
}

// coerceString renders a scalar JSON value as text, nil when it is not
// representable. Empty strings pass through.
func coerceString(v any) *string {
	switch x := v.(type) {
	case string:
		return &x
	case float64:
		s := strconv.FormatFloat(x, 'f', -1, 64)
		return &s
	default:
		return nil
	}
}

// stringValue is the truthy variant used for use-case and roadmap scalars:
// empty strings count as absent.
func stringValue(v any) *string {
	s := coerceString(v)
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// stringItems keeps only the string elements, in order. Always non-nil so
// the caller can distinguish "provided but empty" from "absent".
func stringItems(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func fallbackID() string {
	return "uc-" + uuid.NewString()
}
