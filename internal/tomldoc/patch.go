package tomldoc

import (
	"strings"

	"github.com/creachadair/tomledit"
	"github.com/creachadair/tomledit/parser"
)

// Patch re-emits text with only the differences between original and
// working applied. Untouched lines survive byte for byte, whatever their
// spacing or indentation; changed keys keep their line's leading
// whitespace, key spelling, and trailing inline comment. When the text
// cannot be scanned the patch degrades to rendering the working document.
func Patch(text string, original, working *Document) (string, error) {
	edits, adds, removedSections, newSections := diffOps(original, working)
	if len(edits) == 0 && len(adds) == 0 && len(removedSections) == 0 && len(newSections) == 0 {
		return text, nil
	}

	td, ok := scanText(text)
	if !ok {
		return working.Render()
	}

	drop := make([]bool, len(td.lines))
	replace := make(map[int][]string)

	for _, edit := range edits {
		e := td.entry(edit.section, edit.key)
		if e == nil {
			return working.Render()
		}
		for ln := e.start; ln <= e.end; ln++ {
			drop[ln] = true
		}
		if !edit.remove {
			replace[e.start] = []string{e.prefix + edit.text + e.suffix}
		}
	}

	for _, name := range removedSections {
		rng, found := td.sections[name]
		if !found {
			return working.Render()
		}
		end := rng[1]
		// a trailing comment run usually belongs to the next table
		for end > rng[0] && strings.HasPrefix(strings.TrimSpace(td.lines[end]), "#") {
			end--
		}
		for ln := rng[0]; ln <= end; ln++ {
			drop[ln] = true
		}
	}

	insert := make(map[int][]string) // line index -> lines emitted after it; -1 prepends
	for _, add := range adds {
		var at int
		if add.section == "" {
			at = td.globalInsertLine()
		} else {
			rng, found := td.sections[add.section]
			if !found {
				return working.Render()
			}
			at = td.sectionInsertLine(rng)
		}
		insert[at] = append(insert[at], add.line)
	}

	var out []string
	out = append(out, insert[-1]...)
	for ln := range td.lines {
		if rep, found := replace[ln]; found {
			out = append(out, rep...)
		}
		if !drop[ln] {
			out = append(out, td.lines[ln])
		}
		if extra, found := insert[ln]; found {
			out = append(out, extra...)
		}
	}
	for _, sec := range newSections {
		if len(out) > 0 && strings.TrimSpace(out[len(out)-1]) != "" {
			out = append(out, "")
		}
		out = append(out, "["+encodeKey(sec.name)+"]")
		out = append(out, sec.lines...)
	}

	result := strings.Join(out, "\n")
	if td.trailingNewline || len(newSections) > 0 {
		result += "\n"
	}
	return result, nil
}

// valueEdit is one changed or removed key; keyAdd and sectionAdd carry
// already-rendered lines for appended content.
type valueEdit struct {
	section string // "" for a top-level key
	key     string
	text    string
	remove  bool
}

type keyAdd struct {
	section string
	line    string
}

type sectionAdd struct {
	name  string
	lines []string
}

// diffOps compares the two documents node by node. Only single-part keys
// are considered; anything else is never mutated by this package and stays
// untouched in the text.
func diffOps(original, working *Document) ([]valueEdit, []keyAdd, []string, []sectionAdd) {
	var edits []valueEdit
	var adds []keyAdd
	var removed []string
	var added []sectionAdd

	compare := func(section string, items []parser.Item) {
		for _, item := range items {
			kv, isKV := item.(*parser.KeyValue)
			if !isKV || len(kv.Name) != 1 {
				continue
			}
			key := kv.Name[0]
			var wkv *parser.KeyValue
			if section == "" {
				wkv = working.find(key)
			} else {
				wkv = working.find(section, key)
			}
			if wkv == nil {
				if section != "" && working.section(section) == nil {
					continue // the whole table is going away
				}
				edits = append(edits, valueEdit{section: section, key: key, remove: true})
				continue
			}
			before := strings.TrimSpace(kv.Value.String())
			after := strings.TrimSpace(wkv.Value.String())
			if before != after {
				edits = append(edits, valueEdit{section: section, key: key, text: after})
			}
		}
	}

	compare("", itemsOf(original.doc.Global))
	for _, s := range original.doc.Sections {
		name := sectionName(s)
		if name == "" {
			continue
		}
		if working.section(name) == nil {
			removed = append(removed, name)
			continue
		}
		compare(name, s.Items)
	}

	for _, item := range itemsOf(working.doc.Global) {
		if kv, isKV := item.(*parser.KeyValue); isKV && len(kv.Name) == 1 && original.find(kv.Name[0]) == nil {
			adds = append(adds, keyAdd{section: "", line: renderEntry(kv)})
		}
	}
	for _, s := range working.doc.Sections {
		name := sectionName(s)
		if name == "" {
			continue
		}
		if original.section(name) == nil {
			sec := sectionAdd{name: name}
			for _, item := range s.Items {
				if kv, isKV := item.(*parser.KeyValue); isKV && len(kv.Name) == 1 {
					sec.lines = append(sec.lines, renderEntry(kv))
				}
			}
			added = append(added, sec)
			continue
		}
		for _, item := range s.Items {
			if kv, isKV := item.(*parser.KeyValue); isKV && len(kv.Name) == 1 && original.find(name, kv.Name[0]) == nil {
				adds = append(adds, keyAdd{section: name, line: renderEntry(kv)})
			}
		}
	}

	return edits, adds, removed, added
}

func sectionName(s *tomledit.Section) string {
	if s.Heading != nil && len(s.Heading.Name) == 1 {
		return s.Heading.Name[0]
	}
	return ""
}

func renderEntry(kv *parser.KeyValue) string {
	return encodeKey(kv.Name[0]) + " = " + strings.TrimSpace(kv.Value.String())
}

func encodeKey(key string) string {
	if key == "" {
		return `""`
	}
	for i := 0; i < len(key); i++ {
		if !isBareKeyChar(key[i]) {
			return encodeString(key)
		}
	}
	return key
}

func isBareKeyChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '_' || c == '-'
}

// textEntry is one key/value occurrence located in the raw text: its line
// span, the text before the value on the first line, and the text after
// the value on the last line.
type textEntry struct {
	section   string
	key       string
	matchable bool
	start     int
	end       int
	prefix    string
	suffix    string
}

type textDoc struct {
	lines           []string
	entries         []textEntry
	sections        map[string][2]int // header line, last line before next header
	lastContent     map[string]int
	trailingNewline bool
}

func (td *textDoc) entry(section, key string) *textEntry {
	for i := range td.entries {
		e := &td.entries[i]
		if e.matchable && e.section == section && e.key == key {
			return e
		}
	}
	return nil
}

func (td *textDoc) globalInsertLine() int {
	if at, found := td.lastContent[""]; found {
		return at
	}
	return -1
}

func (td *textDoc) sectionInsertLine(rng [2]int) int {
	for ln := rng[1]; ln >= rng[0]; ln-- {
		if strings.TrimSpace(td.lines[ln]) != "" {
			return ln
		}
	}
	return rng[0]
}

// scanText locates every table heading and key/value span in LF text.
// Lines it cannot make sense of stay opaque; a value whose end cannot be
// found fails the whole scan.
func scanText(text string) (*textDoc, bool) {
	lines := strings.Split(text, "\n")
	trailing := false
	if n := len(lines); n > 0 && lines[n-1] == "" {
		trailing = true
		lines = lines[:n-1]
	}

	td := &textDoc{
		lines:           lines,
		sections:        make(map[string][2]int),
		lastContent:     make(map[string]int),
		trailingNewline: trailing,
	}

	section := ""
	sectionOK := true
	headerLine := -1
	closeSection := func(end int) {
		if section != "" && sectionOK && end >= headerLine {
			td.sections[section] = [2]int{headerLine, end}
		}
	}

	i := 0
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			i++
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			if sectionOK {
				td.lastContent[section] = i
			}
			i++
			continue
		}
		if strings.HasPrefix(trimmed, "[") {
			closeSection(i - 1)
			name, nameOK := parseHeading(trimmed)
			headerLine = i
			section = name
			sectionOK = nameOK
			if sectionOK {
				td.lastContent[section] = i
			}
			i++
			continue
		}

		key, matchable, col, isEntry := parseKeyPrefix(lines[i])
		if !isEntry {
			if sectionOK {
				td.lastContent[section] = i
			}
			i++
			continue
		}
		endLine, endCol, foundEnd := scanValueEnd(lines, i, col)
		if !foundEnd {
			return nil, false
		}
		td.entries = append(td.entries, textEntry{
			section:   section,
			key:       key,
			matchable: matchable && sectionOK,
			start:     i,
			end:       endLine,
			prefix:    lines[i][:col],
			suffix:    lines[endLine][endCol:],
		})
		if sectionOK {
			td.lastContent[section] = endLine
		}
		i = endLine + 1
	}
	closeSection(len(lines) - 1)
	return td, true
}

// parseHeading decodes a single-part [table] name. Array-of-table and
// dotted headings report not-ok so their contents stay opaque.
func parseHeading(trimmed string) (string, bool) {
	if strings.HasPrefix(trimmed, "[[") {
		return "", false
	}
	body := trimmed[1:]
	if body == "" {
		return "", false
	}
	if body[0] == '"' || body[0] == '\'' {
		quote := body[0]
		j := 1
		for j < len(body) {
			if body[j] == '\\' && quote == '"' {
				j += 2
				continue
			}
			if body[j] == quote {
				break
			}
			j++
		}
		if j >= len(body) {
			return "", false
		}
		name, decoded := decodeString(body[:j+1])
		if !decoded || !strings.HasPrefix(strings.TrimSpace(body[j+1:]), "]") {
			return "", false
		}
		return name, true
	}
	end := strings.IndexByte(body, ']')
	if end < 0 {
		return "", false
	}
	name := strings.TrimSpace(body[:end])
	if name == "" || strings.ContainsAny(name, ". \t") {
		return "", false
	}
	return name, true
}

// parseKeyPrefix parses the key of a key/value line and returns the column
// where the value starts. Dotted keys keep their span but are never
// matched against edits.
func parseKeyPrefix(line string) (string, bool, int, bool) {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	key, j, tokenOK := parseKeyToken(line, i)
	if !tokenOK {
		return "", false, 0, false
	}
	matchable := true
	i = skipSpaces(line, j)
	for i < len(line) && line[i] == '.' {
		matchable = false
		_, j, tokenOK = parseKeyToken(line, skipSpaces(line, i+1))
		if !tokenOK {
			return "", false, 0, false
		}
		i = skipSpaces(line, j)
	}
	if i >= len(line) || line[i] != '=' {
		return "", false, 0, false
	}
	i = skipSpaces(line, i+1)
	if i >= len(line) {
		return "", false, 0, false
	}
	return key, matchable, i, true
}

func parseKeyToken(line string, i int) (string, int, bool) {
	if i >= len(line) {
		return "", 0, false
	}
	if line[i] == '"' || line[i] == '\'' {
		quote := line[i]
		j := i + 1
		for j < len(line) {
			if line[j] == '\\' && quote == '"' {
				j += 2
				continue
			}
			if line[j] == quote {
				break
			}
			j++
		}
		if j >= len(line) {
			return "", 0, false
		}
		text, decoded := decodeString(line[i : j+1])
		if !decoded {
			return "", 0, false
		}
		return text, j + 1, true
	}
	j := i
	for j < len(line) && isBareKeyChar(line[j]) {
		j++
	}
	if j == i {
		return "", 0, false
	}
	return line[i:j], j, true
}

func skipSpaces(line string, i int) int {
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return i
}

// scanValueEnd finds where the value starting at lines[li][col] ends,
// handling quoted strings, multi-line strings, and bracketed values that
// span lines. Plain scalars end at an inline comment or end of line.
func scanValueEnd(lines []string, li, col int) (int, int, bool) {
	line := lines[li]
	switch line[col] {
	case '"', '\'':
		quote := line[col]
		if strings.HasPrefix(line[col:], strings.Repeat(string(quote), 3)) {
			return scanMultilineString(lines, li, col, quote)
		}
		j := col + 1
		for j < len(line) {
			if line[j] == '\\' && quote == '"' {
				j += 2
				continue
			}
			if line[j] == quote {
				return li, j + 1, true
			}
			j++
		}
		return 0, 0, false
	case '[', '{':
		return scanBracketed(lines, li, col)
	}
	j := col
	for j < len(line) && line[j] != '#' {
		j++
	}
	for j > col && (line[j-1] == ' ' || line[j-1] == '\t') {
		j--
	}
	return li, j, true
}

func scanBracketed(lines []string, li, col int) (int, int, bool) {
	depth := 0
	for ln := li; ln < len(lines); ln++ {
		line := lines[ln]
		i := 0
		if ln == li {
			i = col
		}
		for i < len(line) {
			switch line[i] {
			case '"', '\'':
				quote := line[i]
				j := i + 1
				for j < len(line) {
					if line[j] == '\\' && quote == '"' {
						j += 2
						continue
					}
					if line[j] == quote {
						break
					}
					j++
				}
				if j >= len(line) {
					return 0, 0, false
				}
				i = j + 1
			case '#':
				i = len(line)
			case '[', '{':
				depth++
				i++
			case ']', '}':
				depth--
				if depth == 0 {
					return ln, i + 1, true
				}
				i++
			default:
				i++
			}
		}
	}
	return 0, 0, false
}

func scanMultilineString(lines []string, li, col int, quote byte) (int, int, bool) {
	delim := strings.Repeat(string(quote), 3)
	if idx := strings.Index(lines[li][col+3:], delim); idx >= 0 {
		return li, col + 3 + idx + 3, true
	}
	for ln := li + 1; ln < len(lines); ln++ {
		if idx := strings.Index(lines[ln], delim); idx >= 0 {
			return ln, idx + 3, true
		}
	}
	return 0, 0, false
}
