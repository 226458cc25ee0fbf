package script

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gersonkurz/pybuilder/internal/config"
)

// Advisory is a non-fatal note about the configuration.
type Advisory struct {
	Field    string
	Packages []string
}

func (a Advisory) String() string {
	return fmt.Sprintf("%s: %s already covered by collect_all", a.Field, strings.Join(a.Packages, ", "))
}

// CollectOverlaps reports packages listed both in collect_all and in one of
// the narrower collect fields. There is one advisory per affected field.
func CollectOverlaps(r *config.Record) []Advisory {
	all := make(map[string]bool)
	for _, p := range config.SplitItems(r.CollectAll) {
		all[p] = true
	}
	if len(all) == 0 {
		return nil
	}

	specific := []struct {
		field string
		value string
	}{
		{"collect_submodules", r.CollectSubmodules},
		{"collect_data", r.CollectData},
		{"collect_binaries", r.CollectBinaries},
	}

	var out []Advisory
	for _, s := range specific {
		seen := make(map[string]bool)
		var overlap []string
		for _, p := range config.SplitItems(s.value) {
			if all[p] && !seen[p] {
				seen[p] = true
				overlap = append(overlap, p)
			}
		}
		if len(overlap) > 0 {
			sort.Strings(overlap)
			out = append(out, Advisory{Field: s.field, Packages: overlap})
		}
	}
	return out
}
