package kb

import "fmt"

// SchemaError reports a malformed or incomplete knowledge base document.
// Loading aborts on the first schema error; the error carries the offending
// location so the operator can fix the document.
type SchemaError struct {
	Section  string // "questions", "materials", "fasteners", "rules", "suggestion_rules"
	Location string // id or name of the offending entry, or an index like "#3"
	Reason   string
}

func (e *SchemaError) Error() string {
	if e.Location == "" {
		return fmt.Sprintf("kb schema: %s: %s", e.Section, e.Reason)
	}
	return fmt.Sprintf("kb schema: %s[%s]: %s", e.Section, e.Location, e.Reason)
}

func schemaErrf(section, location, format string, args ...any) *SchemaError {
	return &SchemaError{Section: section, Location: location, Reason: fmt.Sprintf(format, args...)}
}

// UnknownAttributeError reports a rule or suggestion condition referencing an
// attribute path not declared in the fact schema. It is produced by Lint as a
// load-time consistency warning; at evaluation time an unknown path simply
// fails to match, never crashes.
type UnknownAttributeError struct {
	RuleID string
	Path   string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("rule %s references unknown attribute %q", e.RuleID, e.Path)
}
