package xcmapdiff

import (
	"testing"

	"github.com/sidestore/xcmapdiff/ir"
	"github.com/sidestore/xcmapdiff/libdiff"
	"github.com/sidestore/xcmapdiff/parse"
)

func mustParse(t *testing.T, in string) *ir.Node {
	t.Helper()
	node, err := parse.Parse([]byte(in))
	if err != nil {
		t.Fatalf("could not parse\n%s\nerror: %v", in, err)
	}
	return node
}

const entityMappingDoc = `
<database>
  <databaseInfo>
    <nextObjectID>242</nextObjectID>
  </databaseInfo>
  <object type="XDDEVENTITYMAPPING" id="z110">
    <attribute name="sourcename">Account</attribute>
    <attribute name="destinationname">Account</attribute>
    <attribute name="mappingtypename">Undefined</attribute>
    <attribute name="mappingnumber">2</attribute>
  </object>
  <object type="XDDEVENTITYMAPPING" id="z111">
    <attribute name="sourcename">Team</attribute>
    <attribute name="destinationname">Team</attribute>
    <attribute name="mappingtypename">Undefined</attribute>
    <attribute name="mappingnumber">4</attribute>
  </object>
</database>`

const entityMappingDocShuffled = `
<database>
  <object type="XDDEVENTITYMAPPING" id="z900">
    <attribute name="mappingnumber">77</attribute>
    <attribute name="sourcename">Team</attribute>
    <attribute name="destinationname">Team</attribute>
    <attribute name="mappingtypename">Undefined</attribute>
  </object>
  <databaseInfo>
    <nextObjectID>242</nextObjectID>
  </databaseInfo>
  <object type="XDDEVENTITYMAPPING" id="z901">
    <attribute name="sourcename">Account</attribute>
    <attribute name="destinationname">Account</attribute>
    <attribute name="mappingtypename">Undefined</attribute>
    <attribute name="mappingnumber">78</attribute>
  </object>
</database>`

func TestDiffIdempotent(t *testing.T) {
	docs := []string{
		`<a/>`,
		`<a b="1">text</a>`,
		entityMappingDoc,
		`<r><plist><dict><key>k1</key><key>k2</key></dict></plist></r>`,
	}
	for _, doc := range docs {
		tree := mustParse(t, doc)
		if recs := Diff(tree, tree.Clone()); len(recs) != 0 {
			t.Errorf("diff(T, T) on %q: got %d records, want none: %v",
				doc, len(recs), recs)
		}
	}
}

func TestDiffKeyedOrderInvariance(t *testing.T) {
	// renumbered ids and mapping numbers plus reordered objects are
	// regeneration artifacts, not differences
	a := mustParse(t, entityMappingDoc)
	b := mustParse(t, entityMappingDocShuffled)
	if recs := Diff(a, b); len(recs) != 0 {
		t.Errorf("shuffled keyed siblings: got %v, want no records", recs)
	}
}

func TestDiffSymmetry(t *testing.T) {
	a := mustParse(t, `<database>
		<object type="XDDEVMAPPINGMODEL">
			<attribute name="sourcemodelpath">X</attribute>
		</object>
		<info uuid="u1">1</info>
	</database>`)
	b := mustParse(t, `<database>
		<object type="XDDEVMAPPINGMODEL">
			<attribute name="sourcemodelpath">Y</attribute>
		</object>
		<info uuid="u2">2</info>
	</database>`)
	ab := Diff(a, b)
	ba := Diff(b, a)
	if len(ab) == 0 {
		t.Fatal("expected differences")
	}
	rev := libdiff.Reverse(ba)
	if len(rev) != len(ab) {
		t.Fatalf("asymmetric record counts: %d vs %d", len(ab), len(rev))
	}
	want := map[libdiff.Record]int{}
	for _, rec := range ab {
		want[rec]++
	}
	for _, rec := range rev {
		if want[rec] == 0 {
			t.Errorf("reversed diff(B,A) contains unexpected %+v", rec)
			continue
		}
		want[rec]--
	}
}

func TestDiffIgnoredAttrInvariance(t *testing.T) {
	a := mustParse(t, `<object id="z1" idrefs="z2 z3" sourcemodeldata="AAAA" name="x"/>`)
	b := mustParse(t, `<object id="z9" idrefs="z7" sourcemodeldata="BBBB" name="x"/>`)
	if recs := Diff(a, b); len(recs) != 0 {
		t.Errorf("ignored attribute change produced records: %v", recs)
	}
}

func TestDiffAttrMismatch(t *testing.T) {
	a := mustParse(t, `<relationship name="apps" optional="YES"/>`)
	b := mustParse(t, `<relationship name="apps" optional="NO" ordered="YES"/>`)
	recs := Diff(a, b)
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2: %v", len(recs), recs)
	}
	wantPaths := map[string]bool{
		"relationship attribute 'optional'": true,
		"relationship attribute 'ordered'":  true,
	}
	for _, rec := range recs {
		if rec.Kind != libdiff.Mismatch || rec.Sub != libdiff.SubAttribute {
			t.Errorf("unexpected record %+v", rec)
		}
		if !wantPaths[rec.Path] {
			t.Errorf("unexpected path %q", rec.Path)
		}
	}
}

func TestDiffTagMismatchShortCircuits(t *testing.T) {
	a := mustParse(t, `<a c="1">1</a>`)
	b := mustParse(t, `<b c="2">1</b>`)
	recs := Diff(a, b)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1: %v", len(recs), recs)
	}
	rec := recs[0]
	if rec.Kind != libdiff.Mismatch || rec.Sub != libdiff.SubTag {
		t.Errorf("got %+v, want tag mismatch", rec)
	}
	if rec.Old != "a" || rec.New != "b" {
		t.Errorf("got old=%q new=%q, want a/b", rec.Old, rec.New)
	}
	if rec.Path != "a tag" {
		t.Errorf("got path %q, want \"a tag\"", rec.Path)
	}
}

func TestDiffVolatileFieldTextSkipped(t *testing.T) {
	a := mustParse(t, `<object><attribute name="name">x</attribute><attribute name="other">1</attribute></object>`)
	b := mustParse(t, `<object><attribute name="name">x</attribute><attribute name="other">2</attribute></object>`)
	recs := Diff(a, b)
	if len(recs) != 1 {
		t.Fatalf("got %v, want one text mismatch", recs)
	}
	if recs[0].Old != "1" || recs[0].New != "2" {
		t.Errorf("got %+v", recs[0])
	}

	// mappingnumber children are filtered before matching, so the
	// count drops to one child on each side and nothing differs
	a = mustParse(t, `<object><attribute name="name">x</attribute><attribute name="mappingnumber">1</attribute></object>`)
	b = mustParse(t, `<object><attribute name="name">x</attribute><attribute name="mappingnumber">2</attribute></object>`)
	if recs := Diff(a, b); len(recs) != 0 {
		t.Errorf("mappingnumber change produced records: %v", recs)
	}
}

func TestDiffTextMismatch(t *testing.T) {
	a := mustParse(t, `<database><databaseInfo><nextObjectID> 242 </nextObjectID></databaseInfo></database>`)
	b := mustParse(t, `<database><databaseInfo><nextObjectID>243</nextObjectID></databaseInfo></database>`)
	recs := Diff(a, b)
	if len(recs) != 1 {
		t.Fatalf("got %v, want one record", recs)
	}
	rec := recs[0]
	if rec.Path != "database.databaseInfo.nextObjectID text" {
		t.Errorf("got path %q", rec.Path)
	}
	if rec.Old != "242" || rec.New != "243" {
		t.Errorf("got old=%q new=%q, want trimmed 242/243", rec.Old, rec.New)
	}
}

func TestDiffMissingAndExtraLeaf(t *testing.T) {
	a := mustParse(t, `<r><x>1</x><y>2</y></r>`)
	b := mustParse(t, `<r><x>1</x></r>`)
	recs := Diff(a, b)
	if len(recs) != 1 {
		t.Fatalf("got %v, want one record", recs)
	}
	rec := recs[0]
	if rec.Kind != libdiff.MissingNode {
		t.Errorf("got kind %s, want missing node", rec.Kind)
	}
	if rec.Path != "r.y" {
		t.Errorf("got path %q, want r.y", rec.Path)
	}
	if rec.Old != "y: '2'" || rec.Value != "2" {
		t.Errorf("got old=%q value=%q", rec.Old, rec.Value)
	}
	if rev := libdiff.Reverse(Diff(b, a)); rev[0] != rec {
		t.Errorf("reverse of opposite diff differs: %+v vs %+v", rev[0], rec)
	}
}

func TestDiffPositionalIndexing(t *testing.T) {
	a := mustParse(t, `<r><c>1</c><c>2</c></r>`)
	b := mustParse(t, `<r><c>1</c><c>3</c></r>`)
	recs := Diff(a, b)
	if len(recs) != 1 {
		t.Fatalf("got %v", recs)
	}
	if recs[0].Path != "r.c[1] text" {
		t.Errorf("got path %q, want r.c[1] text", recs[0].Path)
	}

	// a single-member group carries no index
	a = mustParse(t, `<r><c>1</c></r>`)
	b = mustParse(t, `<r><c>2</c></r>`)
	recs = Diff(a, b)
	if len(recs) != 1 || recs[0].Path != "r.c text" {
		t.Errorf("got %v, want one record at \"r.c text\"", recs)
	}
}

func TestDiffPlistKeyRenameCollapses(t *testing.T) {
	a := mustParse(t, `<r><plist><dict><key>K</key><key>M</key></dict></plist></r>`)
	b := mustParse(t, `<r><plist><dict><key>K</key><key>N</key></dict></plist></r>`)
	recs := Diff(a, b)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want a single rename: %v", len(recs), recs)
	}
	rec := recs[0]
	if rec.Kind != libdiff.Mismatch || rec.Sub != libdiff.SubText {
		t.Errorf("got %+v, want text mismatch", rec)
	}
	if rec.Path != "r.plist.dict.key[1] text" {
		t.Errorf("got path %q", rec.Path)
	}
	if rec.Old != "M" || rec.New != "N" {
		t.Errorf("got old=%q new=%q, want M/N", rec.Old, rec.New)
	}
}

func TestDiffPlistKeysUnordered(t *testing.T) {
	a := mustParse(t, `<r><plist><dict><key>K</key><key>M</key></dict></plist></r>`)
	b := mustParse(t, `<r><plist><dict><key>M</key><key>K</key></dict></plist></r>`)
	if recs := Diff(a, b); len(recs) != 0 {
		t.Errorf("reordered dict keys produced records: %v", recs)
	}
}

func TestDiffPlistKeysMultipleChanges(t *testing.T) {
	a := mustParse(t, `<r><plist><dict><key>A</key><key>B</key><key>C</key></dict></plist></r>`)
	b := mustParse(t, `<r><plist><dict><key>A</key><key>D</key></dict></plist></r>`)
	recs := Diff(a, b)
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 2 missing + 1 extra: %v", len(recs), recs)
	}
	var missing, extra int
	for _, rec := range recs {
		switch rec.Kind {
		case libdiff.MissingNode:
			missing++
			if rec.Value != rec.Old {
				t.Errorf("missing key record without value: %+v", rec)
			}
		case libdiff.ExtraNode:
			extra++
		default:
			t.Errorf("unexpected record %+v", rec)
		}
	}
	if missing != 2 || extra != 1 {
		t.Errorf("got %d missing, %d extra", missing, extra)
	}
}

func TestDiffPlistKeysOutsideDictArePositional(t *testing.T) {
	// key elements outside a plist dict context compare by position
	a := mustParse(t, `<r><key>K</key><key>M</key></r>`)
	b := mustParse(t, `<r><key>M</key><key>K</key></r>`)
	recs := Diff(a, b)
	if len(recs) != 2 {
		t.Errorf("got %v, want two positional text mismatches", recs)
	}
}

func TestDiffMappingModelsByKey(t *testing.T) {
	a := mustParse(t, `<database>
		<object type="XDDEVMAPPINGMODEL">
			<attribute name="sourcemodelpath">X</attribute>
		</object>
	</database>`)
	b := mustParse(t, `<database>
		<object type="XDDEVMAPPINGMODEL">
			<attribute name="sourcemodelpath">Y</attribute>
		</object>
	</database>`)
	recs := Diff(a, b)
	if len(recs) != 2 {
		t.Fatalf("got %d records, want missing+extra: %v", len(recs), recs)
	}
	byKind := map[libdiff.Kind]libdiff.Record{}
	for _, rec := range recs {
		byKind[rec.Kind] = rec
	}
	missing, ok := byKind[libdiff.MissingNode]
	if !ok {
		t.Fatal("no missing record")
	}
	if missing.Path != "database.object[sourcemodelpath: X]" {
		t.Errorf("missing path %q", missing.Path)
	}
	extra, ok := byKind[libdiff.ExtraNode]
	if !ok {
		t.Fatal("no extra record")
	}
	if extra.Path != "database.object[sourcemodelpath: Y]" {
		t.Errorf("extra path %q", extra.Path)
	}
}

func TestDiffEntityMappingRecursesUnderKey(t *testing.T) {
	a := mustParse(t, `<database>
		<object type="XDDEVENTITYMAPPING">
			<attribute name="sourcename">Team</attribute>
			<attribute name="destinationname">Team</attribute>
			<attribute name="mappingtypename">Undefined</attribute>
			<attribute name="entitymigrationpolicyclassname">OldPolicy</attribute>
		</object>
	</database>`)
	b := mustParse(t, `<database>
		<object type="XDDEVENTITYMAPPING">
			<attribute name="sourcename">Team</attribute>
			<attribute name="destinationname">Team</attribute>
			<attribute name="mappingtypename">Undefined</attribute>
			<attribute name="entitymigrationpolicyclassname">NewPolicy</attribute>
		</object>
	</database>`)
	recs := Diff(a, b)
	if len(recs) != 1 {
		t.Fatalf("got %v, want one record", recs)
	}
	rec := recs[0]
	wantPath := "database.object[destination name: Team, mappingTypename: Undefined].attribute[3] text"
	if rec.Path != wantPath {
		t.Errorf("got path %q, want %q", rec.Path, wantPath)
	}
	if rec.Old != "OldPolicy" || rec.New != "NewPolicy" {
		t.Errorf("got old=%q new=%q", rec.Old, rec.New)
	}
}

func TestDiffAbsentRoots(t *testing.T) {
	if recs := Diff(nil, nil); recs != nil {
		t.Errorf("diff(nil, nil) = %v", recs)
	}
	tree := mustParse(t, `<a>1</a>`)
	recs := Diff(nil, tree)
	if len(recs) != 1 || recs[0].Kind != libdiff.ExtraNode {
		t.Fatalf("got %v", recs)
	}
	if recs[0].Path != "a" || recs[0].Value != "1" {
		t.Errorf("got %+v", recs[0])
	}
	recs = Diff(tree, nil)
	if len(recs) != 1 || recs[0].Kind != libdiff.MissingNode {
		t.Fatalf("got %v", recs)
	}
}

func TestDiffConfigOverrides(t *testing.T) {
	a := mustParse(t, `<a custom="1"/>`)
	b := mustParse(t, `<a custom="2"/>`)
	if recs := Diff(a, b); len(recs) != 1 {
		t.Fatalf("got %v", recs)
	}
	if recs := Diff(a, b, IgnoreAttrs("custom")); len(recs) != 0 {
		t.Errorf("IgnoreAttrs had no effect: %v", recs)
	}

	a = mustParse(t, `<o><attribute name="scratch">1</attribute></o>`)
	b = mustParse(t, `<o></o>`)
	if recs := Diff(a, b, IgnoreFields("scratch")); len(recs) != 0 {
		t.Errorf("IgnoreFields had no effect: %v", recs)
	}
}
