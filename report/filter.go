package report

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/sidestore/xcmapdiff/libdiff"
)

// Filter keeps the records for which the expression evaluates true.
// The expression sees each record as the variables kind, category,
// path (normalized), sub, old, new and value; for example
// `kind == "mismatch" && path contains "metadata"`.
func Filter(records []libdiff.Record, src string) ([]libdiff.Record, error) {
	prg, err := expr.Compile(src, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("bad filter %q: %w", src, err)
	}
	var res []libdiff.Record
	for _, rec := range records {
		env := map[string]any{
			"kind":     rec.Kind.String(),
			"category": rec.Category,
			"path":     libdiff.Normalize(rec.Path),
			"sub":      rec.Sub,
			"old":      rec.Old,
			"new":      rec.New,
			"value":    rec.Value,
		}
		out, err := expr.Run(prg, env)
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", src, err)
		}
		if keep, _ := out.(bool); keep {
			res = append(res, rec)
		}
	}
	return res, nil
}
