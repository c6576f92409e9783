package grammar

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind tags the variant carried by an Element. The set is closed: adding a
// new generation primitive means adding a new Kind and a branch in
// Element.Generate, not a new type implementing an interface.
type Kind int

const (
	KindLiteral Kind = iota
	KindChoice
	KindTemplate
	KindOptional
	KindRepeat
	KindLambda
	KindRuleRef
	KindTable
	KindField
	KindNumber
	KindDigit
)

// LambdaFunc is the escape hatch used by schema-aware primitives. It must
// be a pure function of ctx: it may read/write ctx.State and draw from
// ctx.RNG, but must never perform I/O or consult any other process state.
type LambdaFunc func(ctx *Context) string

// Element is a node in the generation AST. It is a tagged union: Kind
// selects which of the payload fields below are meaningful. Values are
// immutable after construction, so an Element tree can be safely reused
// across many Generate calls and goroutines as long as each call gets its
// own Context.
type Element struct {
	kind Kind

	literal string

	options    []Element
	weights    []int
	cumWeights []int

	pattern  string
	bindings map[string]Element

	inner       *Element
	probability float64

	repMin, repMax int
	separator      string

	fn LambdaFunc

	ruleName string

	tableFilter func(name string) bool
	fieldFilter func(name string) bool

	numMin, numMax int
}

// Literal always emits s verbatim.
func Literal(s string) Element {
	return Element{kind: KindLiteral, literal: s}
}

// asElement normalizes a Choice/Template option that may be a raw value
// (not already an Element) into a Literal wrapping its string form, per
// the specification's "str(.) form" rule.
func asElement(v any) Element {
	if e, ok := v.(Element); ok {
		return e
	}
	return Literal(fmt.Sprint(v))
}

// Choice performs a weighted (or, with no weights, uniform) pick among
// opts. Options may be Elements or plain values; plain values are emitted
// via their string form when picked. An empty opts slice is a construction
// error: it panics immediately rather than failing silently during
// evaluation.
func Choice(opts []any, weights ...int) Element {
	if len(opts) == 0 {
		panic(&InvalidConstructionError{Reason: "choice requires at least one option"})
	}
	if len(weights) > 0 && len(weights) != len(opts) {
		panic(&InvalidConstructionError{Reason: "choice weights must match option count"})
	}
	elems := make([]Element, len(opts))
	for i, o := range opts {
		elems[i] = asElement(o)
	}
	e := Element{kind: KindChoice, options: elems}
	if len(weights) > 0 {
		e.weights = append([]int(nil), weights...)
		cum := make([]int, len(weights))
		total := 0
		for i, w := range weights {
			total += w
			cum[i] = total
		}
		e.cumWeights = cum
	}
	return e
}

// Template substitutes placeholders of the form {name} or {name:binding}
// in pattern. See resolvePlaceholder for the resolution order.
func Template(pattern string, bindings map[string]Element) Element {
	return Element{kind: KindTemplate, pattern: pattern, bindings: bindings}
}

// Optional emits inner with probability p, and the empty string otherwise.
func Optional(inner Element, p float64) Element {
	innerCopy := inner
	return Element{kind: KindOptional, inner: &innerCopy, probability: p}
}

// Repeat emits between min and max (inclusive) copies of inner, joined by
// sep.
func Repeat(inner Element, min, max int, sep string) Element {
	if min < 0 || max < min {
		panic(&InvalidConstructionError{Reason: "repeat requires 0 <= min <= max"})
	}
	innerCopy := inner
	return Element{kind: KindRepeat, inner: &innerCopy, repMin: min, repMax: max, separator: sep}
}

// Lambda wraps an arbitrary pure generation function.
func Lambda(fn LambdaFunc) Element {
	return Element{kind: KindLambda, fn: fn}
}

// Ref looks up name in the grammar at generation time.
func Ref(name string) Element {
	return Element{kind: KindRuleRef, ruleName: name}
}

// Table is sugar for a Choice over the context's known table names.
// filter, if provided, restricts which table names are eligible; it is
// evaluated against the name only, since the grammar-level table catalogue
// carries no richer "category" concept than that.
func Table(filter ...func(name string) bool) Element {
	e := Element{kind: KindTable}
	if len(filter) > 0 {
		e.tableFilter = filter[0]
	}
	return e
}

// Field is sugar for a Choice over the context's known field names.
// filter, if provided, restricts which field names are eligible.
func Field(filter ...func(name string) bool) Element {
	e := Element{kind: KindField}
	if len(filter) > 0 {
		e.fieldFilter = filter[0]
	}
	return e
}

// Number emits a uniformly distributed integer in [lo, hi] as a decimal
// string.
func Number(lo, hi int) Element {
	if hi < lo {
		panic(&InvalidConstructionError{Reason: "number requires lo <= hi"})
	}
	return Element{kind: KindNumber, numMin: lo, numMax: hi}
}

// Digit emits a single decimal digit, '0'..'9'.
func Digit() Element {
	return Element{kind: KindDigit}
}

// Generate evaluates the element against ctx, returning the SQL text
// fragment it produces. Generate never returns an error in non-strict
// mode; in strict mode, unresolved rule references and template
// placeholders are surfaced via a panic of type *UnresolvedRuleError,
// which Grammar.Generate recovers into an error return.
func (e Element) Generate(ctx *Context) string {
	switch e.kind {
	case KindLiteral:
		return e.literal

	case KindChoice:
		return e.options[e.pickIndex(ctx)].Generate(ctx)

	case KindTemplate:
		return renderTemplate(ctx, e.pattern, e.bindings)

	case KindOptional:
		if ctx.RNG.Float64() < e.probability {
			return e.inner.Generate(ctx)
		}
		return ""

	case KindRepeat:
		k := e.repMin
		if e.repMax > e.repMin {
			k = e.repMin + ctx.RNG.Intn(e.repMax-e.repMin+1)
		}
		parts := make([]string, k)
		for i := 0; i < k; i++ {
			parts[i] = e.inner.Generate(ctx)
		}
		return strings.Join(parts, e.separator)

	case KindLambda:
		return e.fn(ctx)

	case KindRuleRef:
		return resolveRuleRef(ctx, e.ruleName)

	case KindTable:
		names := ctx.tableNames()
		if e.tableFilter != nil {
			filtered := names[:0:0]
			for _, n := range names {
				if e.tableFilter(n) {
					filtered = append(filtered, n)
				}
			}
			names = filtered
		}
		if len(names) == 0 {
			return "{table}"
		}
		return names[ctx.RNG.Intn(len(names))]

	case KindField:
		fields := ctx.Fields
		if e.fieldFilter != nil {
			filtered := make([]string, 0, len(fields))
			for _, f := range fields {
				if e.fieldFilter(f) {
					filtered = append(filtered, f)
				}
			}
			fields = filtered
		}
		if len(fields) == 0 {
			return "{field}"
		}
		return fields[ctx.RNG.Intn(len(fields))]

	case KindNumber:
		n := e.numMin + ctx.RNG.Intn(e.numMax-e.numMin+1)
		return strconv.Itoa(n)

	case KindDigit:
		return strconv.Itoa(ctx.RNG.Intn(10))
	}
	return ""
}

// pickIndex draws the index of the chosen option, consuming exactly one
// RNG value regardless of whether weights are present.
func (e Element) pickIndex(ctx *Context) int {
	if e.weights == nil {
		return ctx.RNG.Intn(len(e.options))
	}
	total := e.cumWeights[len(e.cumWeights)-1]
	r := ctx.RNG.Intn(total)
	return sort.Search(len(e.cumWeights), func(i int) bool { return e.cumWeights[i] > r })
}

// resolveRuleRef looks the rule up in ctx's grammar, bumping and popping a
// recursion-depth counter in ctx.State to guarantee termination.
func resolveRuleRef(ctx *Context, name string) string {
	depth := ctx.State.GetInt(stateDepthKey)
	if depth >= ctx.MaxDepth {
		exceeded := ctx.State.GetInt(stateMaxDepthExceededKey)
		ctx.State.Set(stateMaxDepthExceededKey, exceeded+1)
		return "SELECT 1"
	}

	if ctx.grammar == nil {
		return missingRule(ctx, name)
	}
	rule, ok := ctx.grammar.rules[name]
	if !ok {
		return missingRule(ctx, name)
	}

	ctx.State.Set(stateDepthKey, depth+1)
	out := rule.Generate(ctx)
	ctx.State.Set(stateDepthKey, depth)
	return out
}

func missingRule(ctx *Context, name string) string {
	if ctx.Strict {
		panic(&UnresolvedRuleError{Name: name})
	}
	return "{" + name + "}"
}

const (
	stateDepthKey             = "__rqg_depth"
	stateMaxDepthExceededKey  = "__rqg_max_depth_exceeded"
)
