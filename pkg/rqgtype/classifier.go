// Package rqgtype classifies free-form SQL type strings into semantic
// categories so the rest of the engine can ask "is this a numeric column"
// without caring whether the catalogue spells it "int4" or "BIGINT".
package rqgtype

import "strings"

// Category is a closed semantic grouping of SQL base types.
type Category string

const (
	Numeric  Category = "numeric"
	String   Category = "string"
	Datetime Category = "datetime"
	Boolean  Category = "boolean"
	JSON     Category = "json"
	Net      Category = "net"
	Geo      Category = "geo"
	Range    Category = "range"
	Bit      Category = "bit"
	Money    Category = "money"
	Bytea    Category = "bytea"
	Int      Category = "int"
	Temporal Category = "temporal"
	Text     Category = "text"
)

// categories lists the closed vocabulary of base type names belonging to
// each category. Several base types legitimately belong to more than one
// category (e.g. "bigint" is both int and numeric); that overlap is what
// lets matches_type_category treat "numeric" as a supercategory of "int".
var categories = map[Category]map[string]bool{
	Int: set(
		"smallint", "int", "integer", "int2", "int4", "int8", "bigint",
		"serial", "smallserial", "bigserial",
	),
	Numeric: set(
		"smallint", "int", "integer", "int2", "int4", "int8", "bigint",
		"serial", "smallserial", "bigserial",
		"real", "float", "float4", "float8", "double precision",
		"decimal", "numeric", "money",
	),
	String: set(
		"char", "character", "varchar", "character varying", "text",
		"bpchar", "citext",
	),
	Text: set(
		"text", "varchar", "character varying", "char", "character", "bpchar", "citext",
	),
	Datetime: set(
		"date", "time", "timetz", "time with time zone", "time without time zone",
		"timestamp", "timestamptz", "timestamp with time zone", "timestamp without time zone",
	),
	Temporal: set(
		"date", "time", "timetz", "time with time zone", "time without time zone",
		"timestamp", "timestamptz", "timestamp with time zone", "timestamp without time zone",
		"interval",
	),
	Boolean: set("boolean", "bool"),
	JSON:    set("json", "jsonb"),
	Net:     set("inet", "cidr", "macaddr", "macaddr8"),
	Geo:     set("point", "line", "lseg", "box", "path", "polygon", "circle"),
	Range:   set("int4range", "int8range", "numrange", "tsrange", "tstzrange", "daterange"),
	Bit:     set("bit", "bit varying", "varbit"),
	Money:   set("money"),
	Bytea:   set("bytea"),
}

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}

// BaseType strips any "(...)" parameterization and array suffix, lower-cases
// the result, and trims whitespace: "VARCHAR(50)" -> "varchar", "INT[]" -> "int".
func BaseType(sqlType string) string {
	t := strings.ToLower(strings.TrimSpace(sqlType))
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = t[:i]
	}
	t = strings.TrimSuffix(strings.TrimSpace(t), "[]")
	return strings.TrimSpace(t)
}

// IsArray reports whether the raw type string denotes an array type, either
// via a "[]" suffix or the literal word "array".
func IsArray(sqlType string) bool {
	t := strings.ToLower(strings.TrimSpace(sqlType))
	return strings.HasSuffix(t, "[]") || t == "array"
}

// InCategory reports whether base belongs to the named category's closed
// vocabulary. Unknown categories never match.
func InCategory(base string, cat Category) bool {
	members, ok := categories[cat]
	if !ok {
		return false
	}
	return members[base]
}

// MatchesTypeCategory implements the four-rule fallback described in the
// specification: exact base match, category membership, supercategory
// membership via a shared category, and finally the is_* helpers.
func MatchesTypeCategory(colType string, target string) bool {
	base := BaseType(colType)
	targetLower := strings.ToLower(strings.TrimSpace(target))

	// (a) direct base match against the target spelled as a type name.
	if base == targetLower {
		return true
	}

	// (b) target names a category and base is a member.
	if InCategory(base, Category(targetLower)) {
		return true
	}

	// (c) target is itself a base type that lives in some category which
	// also contains base (e.g. "bigint" matches "numeric" because both
	// live in the numeric category).
	for _, members := range categories {
		if members[targetLower] && members[base] {
			return true
		}
	}

	// (d) fall back to the specific is_* helpers.
	switch targetLower {
	case "numeric":
		return IsNumeric(colType)
	case "string", "text":
		return IsString(colType)
	case "datetime", "temporal":
		return IsDatetime(colType)
	case "boolean", "bool":
		return IsBoolean(colType)
	case "json":
		return IsJSON(colType)
	case "net":
		return IsNet(colType)
	case "geo":
		return IsGeo(colType)
	case "range":
		return IsRange(colType)
	case "bit":
		return IsBit(colType)
	case "money":
		return IsMoney(colType)
	case "bytea":
		return IsBytea(colType)
	case "int":
		return IsInt(colType)
	case "array":
		return IsArray(colType)
	}

	return false
}

func IsNumeric(t string) bool  { return InCategory(BaseType(t), Numeric) }
func IsInt(t string) bool      { return InCategory(BaseType(t), Int) }
func IsString(t string) bool   { return InCategory(BaseType(t), String) }
func IsText(t string) bool     { return InCategory(BaseType(t), Text) }
func IsDatetime(t string) bool { return InCategory(BaseType(t), Datetime) }
func IsTemporal(t string) bool { return InCategory(BaseType(t), Temporal) }
func IsBoolean(t string) bool  { return InCategory(BaseType(t), Boolean) }
func IsJSON(t string) bool     { return InCategory(BaseType(t), JSON) }
func IsNet(t string) bool      { return InCategory(BaseType(t), Net) }
func IsGeo(t string) bool      { return InCategory(BaseType(t), Geo) }
func IsRange(t string) bool    { return InCategory(BaseType(t), Range) }
func IsBit(t string) bool      { return InCategory(BaseType(t), Bit) }
func IsMoney(t string) bool    { return InCategory(BaseType(t), Money) }
func IsBytea(t string) bool    { return InCategory(BaseType(t), Bytea) }
