package intake

// Merge folds a patch into the current state and returns the result. Pure:
// neither input is mutated and the output shares no slices with them.
//
// Semantics: org and use cases merge field-by-field (patch wins, absent
// fields keep prior values); roles replace wholesale; use cases upsert by
// ID, existing entries keep their position and new ones append.
func Merge(current SessionState, patch StatePatch) SessionState {
	result := cloneState(current)

	if patch.Org != nil {
		if result.Org == nil {
			result.Org = &OrgProfile{}
		}
		applyOrg(result.Org, patch.Org)
	}

	if patch.Roles != nil {
		result.Roles = append([]string(nil), patch.Roles...)
	}

	if patch.UseCases != nil {
		index := make(map[string]int, len(result.UseCases))
		for i, uc := range result.UseCases {
			index[uc.ID] = i
		}
		for _, p := range patch.UseCases {
			if i, ok := index[p.ID]; ok {
				applyUseCase(&result.UseCases[i], p)
				continue
			}
			uc := UseCase{ID: p.ID}
			applyUseCase(&uc, p)
			index[uc.ID] = len(result.UseCases)
			result.UseCases = append(result.UseCases, uc)
		}
	}

	return result
}

func applyOrg(dst *OrgProfile, p *OrgPatch) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Country != nil {
		dst.Country = *p.Country
	}
	if p.Industry != nil {
		dst.Industry = *p.Industry
	}
	if p.Size != nil {
		dst.Size = *p.Size
	}
}

func applyUseCase(dst *UseCase, p UseCasePatch) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Process != nil {
		dst.Process = *p.Process
	}
	if p.Owner != nil {
		dst.Owner = *p.Owner
	}
	if p.Model != nil {
		dst.Model = *p.Model
	}
	if p.InScope != nil {
		v := *p.InScope
		dst.InScope = &v
	}
	if p.Risk != nil {
		dst.Risk = *p.Risk
	}
	if p.Data != nil {
		dst.Data = append([]string(nil), p.Data...)
	}
	if p.Subjects != nil {
		dst.Subjects = append([]string(nil), p.Subjects...)
	}
	if p.Jurisdictions != nil {
		dst.Jurisdictions = append([]string(nil), p.Jurisdictions...)
	}
}

func cloneState(s SessionState) SessionState {
	out := SessionState{}
	if s.Org != nil {
		org := *s.Org
		out.Org = &org
	}
	if s.Roles != nil {
		out.Roles = append([]string(nil), s.Roles...)
	}
	if s.UseCases != nil {
		out.UseCases = make([]UseCase, len(s.UseCases))
		for i, uc := range s.UseCases {
			out.UseCases[i] = cloneUseCase(uc)
		}
	}
	return out
}

func cloneUseCase(uc UseCase) UseCase {
	if uc.InScope != nil {
		v := *uc.InScope
		uc.InScope = &v
	}
	if uc.Data != nil {
		uc.Data = append([]string(nil), uc.Data...)
	}
	if uc.Subjects != nil {
		uc.Subjects = append([]string(nil), uc.Subjects...)
	}
	if uc.Jurisdictions != nil {
		uc.Jurisdictions = append([]string(nil), uc.Jurisdictions...)
	}
	return uc
}

// Step derives the intake stage from state cardinality. Recomputed on every
// read, never stored.
func Step(s SessionState) int {
	switch {
	case len(s.Roles) == 0:
		return 1
	case len(s.UseCases) == 0:
		return 2
	default:
		return 3
	}
}
