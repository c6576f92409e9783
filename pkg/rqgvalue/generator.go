// Package rqgvalue synthesizes type-appropriate SQL literal fragments for
// DML generation. It is stateless aside from the RNG it is given: calling
// Generate twice with RNGs seeded identically produces identical output.
package rqgvalue

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/queryforge/rqg/pkg/rqgtype"
)

// Source is the minimal RNG surface the generator consumes. *rand.Rand
// satisfies it; callers needing reproducibility pass a rand.Rand seeded
// deterministically.
type Source interface {
	Intn(n int) int
	Float64() float64
}

var _ Source = (*rand.Rand)(nil)

var textVocabulary = []string{"'Sample text'", "'Notes'", "'Description'", "'Info'"}

var varcharVocabulary = []string{
	"'Test User'", "'Product X'", "'Active Status'", "'user@example.com'", "'Category A'",
}

// Generate synthesizes a single SQL literal for dataType, consuming RNG
// draws from src as documented in the specification. Unknown types never
// error; they resolve to the SQL literal NULL.
func Generate(src Source, dataType string) string {
	if rqgtype.IsArray(dataType) {
		return "ARRAY['item1','item2']"
	}

	base := rqgtype.BaseType(dataType)
	switch {
	case base == "boolean" || base == "bool":
		if src.Intn(2) == 0 {
			return "false"
		}
		return "true"

	case base == "int" || base == "integer" || base == "serial":
		return fmt.Sprintf("%d", 1+src.Intn(1000))
	case base == "smallint" || base == "smallserial":
		return fmt.Sprintf("%d", 1+src.Intn(100))
	case base == "bigint" || base == "bigserial":
		return fmt.Sprintf("%d", 1+src.Intn(100000))

	case base == "double precision" || base == "float8":
		return fmt.Sprintf("%.4f", src.Float64()*1000)
	case base == "real" || base == "float" || base == "float4":
		return fmt.Sprintf("%.2f", src.Float64()*1000)

	case base == "decimal" || base == "numeric" || base == "money":
		whole := 1 + src.Intn(10000)
		frac := src.Intn(100)
		return fmt.Sprintf("%d.%02d", whole, frac)

	case base == "char" || base == "character" || base == "bpchar":
		if !strings.Contains(strings.ToLower(dataType), "varying") {
			return "'A'"
		}
		return varcharVocabulary[src.Intn(len(varcharVocabulary))]

	case base == "text" || base == "citext":
		return textVocabulary[src.Intn(len(textVocabulary))]

	case base == "varchar" || base == "character varying":
		return varcharVocabulary[src.Intn(len(varcharVocabulary))]

	case base == "date":
		return "CURRENT_DATE"
	case base == "time" || base == "timetz" || base == "time with time zone" || base == "time without time zone":
		return "CURRENT_TIME"
	case strings.HasPrefix(base, "timestamp"):
		return "CURRENT_TIMESTAMP"

	case base == "json":
		return "'{}'::json"
	case base == "jsonb":
		return "'{}'::jsonb"
	}

	return "NULL"
}
