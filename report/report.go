// Package report renders diff records for people: grouped by record
// kind, sorted by normalized path, optionally colored on terminals.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/sidestore/xcmapdiff/libdiff"
)

type Option func(*Reporter)

// WithColor forces colored output on or off, overriding tty detection.
func WithColor(v bool) Option {
	return func(r *Reporter) {
		r.color = v
		r.colorSet = true
	}
}

type Reporter struct {
	w        io.Writer
	color    bool
	colorSet bool
}

func New(w io.Writer, opts ...Option) *Reporter {
	r := &Reporter{w: w}
	for _, opt := range opts {
		opt(r)
	}
	if !r.colorSet {
		if f, ok := w.(*os.File); ok {
			r.color = isatty.IsTerminal(f.Fd())
		}
	}
	return r
}

// Write prints the grouped report.  Records are sorted by normalized
// path within each section so that output is stable regardless of the
// engine's encounter order.
func (r *Reporter) Write(records []libdiff.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(r.w, "No differences found.")
		return err
	}
	if _, err := fmt.Fprintln(r.w, "\nDifferences found (grouped by error type):"); err != nil {
		return err
	}
	for _, kind := range []libdiff.Kind{libdiff.ExtraNode, libdiff.Mismatch, libdiff.MissingNode} {
		group := sortedByPath(records, kind)
		if len(group) == 0 {
			continue
		}
		if err := r.writeSection(kind, group); err != nil {
			return err
		}
	}
	return nil
}

func sortedByPath(records []libdiff.Record, kind libdiff.Kind) []libdiff.Record {
	var res []libdiff.Record
	for _, rec := range records {
		if rec.Kind == kind {
			res = append(res, rec)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return libdiff.Normalize(res[i].Path) < libdiff.Normalize(res[j].Path)
	})
	return res
}

func (r *Reporter) writeSection(kind libdiff.Kind, group []libdiff.Record) error {
	header := fmt.Sprintf("=== %s (%d %s) ===",
		strings.ToUpper(kind.String()), len(group), plural(len(group)))
	if r.color {
		header = kindColor(kind)("%s", header)
	}
	if _, err := fmt.Fprintf(r.w, "\n%s\n", header); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.w, "Category: %s\n\n", group[0].Category); err != nil {
		return err
	}
	for _, rec := range group {
		if err := r.writeRecord(rec); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reporter) writeRecord(rec libdiff.Record) error {
	if _, err := fmt.Fprintf(r.w, "Path: %s\n", libdiff.Normalize(rec.Path)); err != nil {
		return err
	}
	switch rec.Kind {
	case libdiff.Mismatch:
		old, new := rec.Old, rec.New
		if r.color {
			old, new = highlight(old, new)
		}
		if _, err := fmt.Fprintf(r.w, "  old = %s\n  new = %s\n", old, new); err != nil {
			return err
		}
	case libdiff.MissingNode:
		if rec.Value != "" {
			if _, err := fmt.Fprintf(r.w, "  old = %s\n", rec.Value); err != nil {
				return err
			}
		}
	case libdiff.ExtraNode:
		if rec.Value != "" {
			if _, err := fmt.Fprintf(r.w, "  new = %s\n", rec.Value); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(r.w)
	return err
}

func kindColor(kind libdiff.Kind) func(string, ...any) string {
	switch kind {
	case libdiff.ExtraNode:
		return color.GreenString
	case libdiff.MissingNode:
		return color.RedString
	default:
		return color.YellowString
	}
}

// highlight renders the differing runs of old and new in red and
// green respectively, leaving shared runs plain.
func highlight(old, new string) (string, string) {
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(old, new, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	var oldOut, newOut string
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffEqual:
			oldOut += diff.Text
			newOut += diff.Text
		case diffpatch.DiffDelete:
			oldOut += color.RedString("%s", diff.Text)
		case diffpatch.DiffInsert:
			newOut += color.GreenString("%s", diff.Text)
		}
	}
	return oldOut, newOut
}

func plural(n int) string {
	if n == 1 {
		return "occurrence"
	}
	return "occurrences"
}
