package ddlgen

import "math/rand"

// baseCatalogue is the OLTP-heavy baseline weighted type list, carrying the
// same ~30-type PostgreSQL coverage and weights as the original DDL
// generator's base_weights table: common OLTP scalars weighted heavily,
// with range types, MONEY, BYTEA, INTERVAL, CHAR(n), and TIMETZ present but
// rare.
var baseCatalogue = []weightedType{
	{"integer", 18},
	{"bigint", 16},
	{"smallint", 3},
	{"varchar(50)", 6},
	{"varchar(100)", 6},
	{"varchar(255)", 6},
	{"text", 8},
	{"numeric(10,2)", 7},
	{"decimal(10,2)", 5},
	{"real", 3},
	{"double precision", 5},
	{"boolean", 10},
	{"date", 6},
	{"timestamp", 7},
	{"timestamptz", 6},
	{"time", 2},
	{"timetz", 2},
	{"uuid", 6},
	{"jsonb", 7},
	{"json", 2},
	{"bytea", 3},
	{"inet", 2},
	{"cidr", 1},
	{"macaddr", 1},
	{"char(1)", 1},
	{"char(10)", 1},
	{"money", 1},
	{"interval", 2},
	{"int4range", 1},
	{"int8range", 1},
	{"numrange", 1},
	{"daterange", 1},
	{"tsrange", 1},
	{"tstzrange", 1},
}

// catalogueFor applies a profile's bias to baseCatalogue, returning a new
// slice; baseCatalogue itself is never mutated.
func catalogueFor(p Profile) []weightedType {
	out := make([]weightedType, len(baseCatalogue))
	copy(out, baseCatalogue)

	switch p {
	case ProfileJSONHeavy:
		for i := range out {
			if out[i].sqlType == "json" || out[i].sqlType == "jsonb" || out[i].sqlType == "text" {
				out[i].weight = int(float64(out[i].weight) * 2.5)
			}
		}
	case ProfileTimeSeries:
		for i := range out {
			switch out[i].sqlType {
			case "timestamptz", "timestamp", "date", "interval":
				out[i].weight = int(float64(out[i].weight) * 2.5)
			case "numeric(10,2)", "decimal(10,2)":
				out[i].weight = int(float64(out[i].weight) * 1.5)
			}
		}
	case ProfileNetworkHeavy:
		for i := range out {
			switch out[i].sqlType {
			case "inet", "cidr", "macaddr":
				out[i].weight *= 3
			}
		}
	case ProfileWideRange:
		mean := 0
		for _, w := range out {
			mean += w.weight
		}
		mean /= len(out)
		for i := range out {
			out[i].weight = (out[i].weight + mean) / 2
			if out[i].weight < 1 {
				out[i].weight = 1
			}
		}
	}
	return out
}

// pickType draws a type from the catalogue by cumulative weight, then
// applies the 8% array-wrapping rule from the specification.
func pickType(rng *rand.Rand, catalogue []weightedType) string {
	total := 0
	for _, w := range catalogue {
		total += w.weight
	}
	r := rng.Intn(total)
	acc := 0
	chosen := catalogue[len(catalogue)-1].sqlType
	for _, w := range catalogue {
		acc += w.weight
		if r < acc {
			chosen = w.sqlType
			break
		}
	}

	if chosen != "json" && chosen != "jsonb" && rng.Float64() < 0.08 {
		return chosen + "[]"
	}
	return chosen
}
