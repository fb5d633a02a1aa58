// Package rules implements the forward-chaining rule evaluator. Rules are
// evaluated in descending priority order, fire at most once per session, and
// merge their effects monotonically into the derived requirements until a
// fixed point is reached.
package rules

import (
	"github.com/JasperK04/KTP/internal/facts"
	"github.com/JasperK04/KTP/internal/kb"
)

// EvalCondition reports whether every atomic test of the condition holds
// against the store. A test over an attribute path that was never written
// evaluates to false rather than erroring, so rules about skipped questions
// degrade gracefully.
func EvalCondition(cond kb.Condition, st *facts.Store) bool {
	for _, t := range cond {
		if !evalTest(t, st) {
			return false
		}
	}
	return true
}

func evalTest(t kb.Test, st *facts.Store) bool {
	actual, ok := st.Get(t.Path)
	if !ok {
		return false // unknown is not satisfied
	}

	switch t.Op {
	case kb.OpEqual:
		return equalValue(actual, t.Value)
	case kb.OpNotEqual:
		return !equalValue(actual, t.Value)
	case kb.OpIn:
		return memberOf(actual, t.Values)
	case kb.OpNotIn:
		return !memberOf(actual, t.Values)
	case kb.OpSameAs:
		other, ok := st.Get(t.Other)
		if !ok {
			return false
		}
		return equalValue(actual, other)
	}
	return false
}

func memberOf(actual any, values []any) bool {
	for _, v := range values {
		if equalValue(actual, v) {
			return true
		}
	}
	return false
}

// equalValue compares a fact value against a condition value. Facts hold
// strings and booleans; YAML may additionally hand us ints, which are
// normalized before comparison.
func equalValue(a, b any) bool {
	if na, ok := normalizeInt(a); ok {
		nb, ok := normalizeInt(b)
		return ok && na == nb
	}
	return a == b
}

func normalizeInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}
