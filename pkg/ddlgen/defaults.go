package ddlgen

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/queryforge/rqg/pkg/rqgtype"
)

// defaultFor synthesizes a DDL-legal DEFAULT expression for dt. It follows
// the value generator's vocabulary (pkg/rqgvalue) but in forms legal as a
// column default rather than a standalone literal — e.g. a function call
// for uuid, and unquoted CURRENT_* keywords for temporal types.
func defaultFor(dt string, rng *rand.Rand) (string, bool) {
	base := rqgtype.BaseType(dt)
	if rqgtype.IsArray(dt) {
		return "", false
	}

	switch {
	case base == "uuid":
		return "gen_random_uuid()", true
	case base == "boolean" || base == "bool":
		if rng.Intn(2) == 0 {
			return "false", true
		}
		return "true", true
	case rqgtype.IsInt(dt):
		return fmt.Sprintf("%d", rng.Intn(100)), true
	case base == "numeric" || base == "decimal" || base == "real" || base == "double precision":
		return fmt.Sprintf("%d.%02d", rng.Intn(1000), rng.Intn(100)), true
	case base == "date":
		return "CURRENT_DATE", true
	case strings.HasPrefix(base, "time"):
		if strings.Contains(base, "timestamp") {
			return "CURRENT_TIMESTAMP", true
		}
		return "CURRENT_TIME", true
	case base == "json":
		return "'{}'::json", true
	case base == "jsonb":
		return "'{}'::jsonb", true
	case base == "money":
		return "0", true
	case rqgtype.IsText(dt):
		return "''", true
	}
	return "", false
}

// checkHintFor synthesizes a plausible CHECK expression for a single
// column: numeric columns get a "col >= 0" style constraint.
func checkHintFor(name, dt string) (string, bool) {
	if rqgtype.IsNumeric(dt) {
		return fmt.Sprintf("%s >= 0", name), true
	}
	return "", false
}
