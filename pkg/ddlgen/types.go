// Package ddlgen synthesizes CREATE TABLE / CREATE INDEX / ALTER TABLE
// statements over a randomly (but plausibly) shaped relational schema. It
// never executes anything; it is a pure function of a seed and a set of
// options.
package ddlgen

import "sort"

// Profile biases the random type catalogue toward a particular workload
// shape. Any value other than the named profiles below falls back to the
// baseline weights.
type Profile string

const (
	ProfileBaseline      Profile = "baseline"
	ProfileJSONHeavy      Profile = "json_heavy"
	ProfileTimeSeries     Profile = "time_series"
	ProfileNetworkHeavy   Profile = "network_heavy"
	ProfileWideRange      Profile = "wide_range"
)

// Options configures a Generator. Zero-value Options yields sane defaults
// via WithDefaults.
type Options struct {
	Profile             Profile
	Dialect             string // "postgres" is the only dialect implemented.
	FKRatio             float64
	IndexRatio          float64
	CompositeIndexRatio float64
	PartialIndexRatio   float64
}

// WithDefaults returns a copy of o with zero fields replaced by the
// specification's defaults.
func (o Options) WithDefaults() Options {
	if o.Profile == "" {
		o.Profile = ProfileBaseline
	}
	if o.Dialect == "" {
		o.Dialect = "postgres"
	}
	if o.FKRatio == 0 {
		o.FKRatio = 0.4
	}
	if o.IndexRatio == 0 {
		o.IndexRatio = 0.5
	}
	if o.CompositeIndexRatio == 0 {
		o.CompositeIndexRatio = 0.2
	}
	if o.PartialIndexRatio == 0 {
		o.PartialIndexRatio = 0.15
	}
	return o
}

// weightedType pairs a SQL type factory with its selection weight in the
// random column-type catalogue.
type weightedType struct {
	sqlType string
	weight  int
}

func sortedTypeNames(ws []weightedType) []string {
	names := make([]string, 0, len(ws))
	for _, w := range ws {
		names = append(names, w.sqlType)
	}
	sort.Strings(names)
	return names
}
