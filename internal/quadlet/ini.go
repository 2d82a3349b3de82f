package quadlet

import "strings"

// Serialize renders a mapping of sections into INI text.
//
// Each top-level mapping becomes a [Section] block, emitted in iteration
// order and separated by a blank line. Within a section:
//   - scalars render as key=value, with Null as key=
//   - lists repeat the key once per element, in list order
//   - a nested mapping under key renders key=<inner>=<value>, recursively
//
// Top-level entries that are not mappings are written as bare key-value
// lines ahead of the first section.
func Serialize(sections *Mapping) string {
	var global, body strings.Builder

	for _, name := range sections.Keys() {
		value, _ := sections.Get(name)
		section, ok := value.(*Mapping)
		if !ok {
			writeEntry(&global, name, value)
			continue
		}

		if body.Len() > 0 {
			body.WriteString("\n")
		}
		body.WriteString("[" + name + "]\n")
		for _, key := range section.Keys() {
			v, _ := section.Get(key)
			writeEntry(&body, key, v)
		}
	}

	if global.Len() > 0 && body.Len() > 0 {
		global.WriteString("\n")
	}
	return global.String() + body.String()
}

// writeEntry writes the lines for a single key. prefix is the left-hand side
// of the assignment; nested mappings extend it with "=<innerKey>".
func writeEntry(b *strings.Builder, prefix string, v Value) {
	switch val := v.(type) {
	case List:
		for _, elem := range val {
			writeEntry(b, prefix, elem)
		}
	case *Mapping:
		for _, key := range val.Keys() {
			inner, _ := val.Get(key)
			writeEntry(b, prefix+"="+key, inner)
		}
	default:
		b.WriteString(prefix + "=" + val.String() + "\n")
	}
}

// StripBlankLines removes every line that is empty or whitespace only.
func StripBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// Render serializes sections into the final unit file text: blank lines are
// stripped and a single trailing newline is added when there is any content.
func Render(sections *Mapping) string {
	text := StripBlankLines(Serialize(sections))
	if text == "" {
		return ""
	}
	return text + "\n"
}
