package naming

import (
	"regexp"
	"strings"
)

// reRedundant matches names produced by an older renamer that re-tagged
// already-tagged files:
//
//	DATE_RES_vs_RACE_Nmin_Nminerals_DATE_RES_vs_RACE_orig
var reRedundant = regexp.MustCompile(
	`^([0-9]{4}-[0-9]{2}-[0-9]{2})_([^_]+)_vs_([^_]+)_([0-9]+min)_([0-9]+minerals)_[0-9]{4}-[0-9]{2}-[0-9]{2}_[^_]+_vs_[^_]+_(.+)$`)

// CollapseRedundant rewrites a redundant double-tagged stem to the current
// format (RES_vs_RACE_Nmin_Nminerals_orig), dropping both dates. ok is false
// when stem is not redundant.
func CollapseRedundant(stem string) (string, bool) {
	m := reRedundant.FindStringSubmatch(stem)
	if m == nil {
		return "", false
	}
	return strings.Join([]string{m[2], "vs", m[3], m[4], m[5], m[6]}, Delimiter), true
}
