package libdiff

import "strings"

// Normalize rewrites each key-based path segment object[<key>] into
// the brace form object.{<key>} for display.  Purely cosmetic:
// matching decisions never depend on the normalized form.
func Normalize(path string) string {
	const marker = "object["
	if !strings.Contains(path, marker) {
		return path
	}
	var b strings.Builder
	for {
		i := strings.Index(path, marker)
		if i < 0 {
			b.WriteString(path)
			break
		}
		b.WriteString(path[:i])
		b.WriteString("object.{")
		path = path[i+len(marker):]
		j := strings.Index(path, "]")
		if j < 0 {
			b.WriteString(path)
			break
		}
		b.WriteString(path[:j])
		b.WriteString("}")
		path = path[j+1:]
	}
	return b.String()
}
