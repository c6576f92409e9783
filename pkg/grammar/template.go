package grammar

import (
	"fmt"
	"strings"
)

// renderTemplate performs a single left-to-right pass over pattern,
// substituting each {name} / {name:alias} placeholder per the resolution
// order in the specification. Whitespace around placeholders is left
// untouched because the scanner only ever replaces the brace span itself.
func renderTemplate(ctx *Context, pattern string, bindings map[string]Element) string {
	var out strings.Builder
	i := 0
	for i < len(pattern) {
		open := strings.IndexByte(pattern[i:], '{')
		if open < 0 {
			out.WriteString(pattern[i:])
			break
		}
		open += i
		out.WriteString(pattern[i:open])

		close := strings.IndexByte(pattern[open:], '}')
		if close < 0 {
			// unterminated placeholder: emit the rest verbatim.
			out.WriteString(pattern[open:])
			break
		}
		close += open

		raw := pattern[open+1 : close] // between { and }
		out.WriteString(resolvePlaceholder(ctx, raw, bindings, pattern[open:close+1]))
		i = close + 1
	}
	return out.String()
}

// resolvePlaceholder implements the five-step resolution order. verbatim
// is the original "{name}" or "{name:alias}" text, used as the step-5
// fallback so unresolved placeholders survive visibly in non-strict mode.
func resolvePlaceholder(ctx *Context, raw string, bindings map[string]Element, verbatim string) string {
	name := raw
	source := raw
	if idx := strings.IndexByte(raw, ':'); idx >= 0 {
		name = raw[:idx]
		source = raw[idx+1:]
	}
	_ = name // the pre-colon label only exists to let multiple placeholders share a source.

	if bindings != nil {
		if b, ok := bindings[source]; ok {
			return renderResolved(ctx, b)
		}
	}
	if v, ok := ctx.State.Get(source); ok {
		return renderResolvedValue(ctx, v)
	}
	if ctx.grammar != nil {
		if rule, ok := ctx.grammar.rules[source]; ok {
			return renderResolved(ctx, rule)
		}
	}

	if ctx.Strict {
		panic(&UnresolvedRuleError{Name: source})
	}
	return verbatim
}

func renderResolved(ctx *Context, e Element) string {
	return e.Generate(ctx)
}

func renderResolvedValue(ctx *Context, v any) string {
	if e, ok := v.(Element); ok {
		return e.Generate(ctx)
	}
	return fmt.Sprint(v)
}
