package report

import (
	"io"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/sidestore/xcmapdiff/libdiff"
)

// WriteYAML emits the records as a YAML list for machine consumption,
// sorted by normalized path for stable output.
func WriteYAML(w io.Writer, records []libdiff.Record) error {
	sorted := make([]libdiff.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return libdiff.Normalize(sorted[i].Path) < libdiff.Normalize(sorted[j].Path)
	})
	d, err := yaml.Marshal(sorted)
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}
