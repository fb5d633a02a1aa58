package kb

// Lint statically checks every rule and suggestion condition against the
// attribute schema. Mismatched attribute names between rule authors and the
// engine are knowledge-base content bugs; catching them at load time beats
// silently-never-firing rules at session time.
//
// Findings are warnings, not errors: an unknown path simply never matches
// during evaluation, so a linted-but-unfixed KB still runs.
func (k *KnowledgeBase) Lint() []*UnknownAttributeError {
	var findings []*UnknownAttributeError

	check := func(owner string, cond Condition) {
		for _, t := range cond {
			if _, ok := FactDefFor(t.Path); !ok {
				findings = append(findings, &UnknownAttributeError{RuleID: owner, Path: t.Path})
			}
			if t.Op == OpSameAs {
				if _, ok := FactDefFor(t.Other); !ok {
					findings = append(findings, &UnknownAttributeError{RuleID: owner, Path: t.Other})
				}
			}
		}
	}

	for _, r := range k.Rules {
		check(r.ID, r.When)
	}
	for _, s := range k.Suggestions {
		check(s.ID, s.When)
	}
	for _, q := range k.Questions {
		check(q.ID, q.AskIf)
	}

	return findings
}
