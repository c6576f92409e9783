package grammar

import "fmt"

// UnresolvedRuleError is raised in strict mode when a RuleRef or Template
// placeholder cannot be resolved against the grammar.
type UnresolvedRuleError struct {
	Name string
}

func (e *UnresolvedRuleError) Error() string {
	return fmt.Sprintf("grammar: unresolved rule reference %q", e.Name)
}

// UnknownGrammarError lists the grammars a Registry actually knows about,
// so callers asking for a typo'd name get something actionable back.
type UnknownGrammarError struct {
	Requested string
	Available []string
}

func (e *UnknownGrammarError) Error() string {
	return fmt.Sprintf("grammar: unknown grammar %q; available: %v", e.Requested, e.Available)
}

// InvalidConstructionError is raised at Element construction time, never
// during evaluation, for malformed element trees (e.g. an empty Choice).
type InvalidConstructionError struct {
	Reason string
}

func (e *InvalidConstructionError) Error() string {
	return "grammar: invalid element construction: " + e.Reason
}
