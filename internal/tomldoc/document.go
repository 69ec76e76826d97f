// Package tomldoc wraps a comment- and order-preserving TOML tree with the
// typed accessors the field editors need. Type mismatches never fail hard:
// every getter reports "absent" so a malformed document degrades to
// defaults instead of aborting the session.
package tomldoc

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/creachadair/tomledit"
	"github.com/creachadair/tomledit/parser"
)

// Document is an editable TOML document. Untouched nodes keep their
// comments and ordering; new keys are appended.
type Document struct {
	doc *tomledit.Document
}

// Entry is one key/value pair of a table, in file order. IsString reports
// whether the raw value decoded as a TOML string; Value holds the decoded
// string when it did and the raw source text otherwise.
type Entry struct {
	Key      string
	Value    string
	IsString bool
}

// Parse parses TOML text into a Document. Line endings are normalized to
// LF; callers re-apply the original convention on write.
func Parse(text string) (*Document, error) {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	doc, err := tomledit.Parse(strings.NewReader(normalized))
	if err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}
	return &Document{doc: doc}, nil
}

// Render serializes the document back to TOML text with LF line endings.
func (d *Document) Render() (string, error) {
	var buf bytes.Buffer
	if err := tomledit.Format(&buf, d.doc); err != nil {
		return "", fmt.Errorf("render toml: %w", err)
	}
	return buf.String(), nil
}

// section returns the table section with the given single-part name.
func (d *Document) section(name string) *tomledit.Section {
	for _, s := range d.doc.Sections {
		if s.Heading != nil && len(s.Heading.Name) == 1 && s.Heading.Name[0] == name {
			return s
		}
	}
	return nil
}

func (d *Document) ensureSection(name string) *tomledit.Section {
	if s := d.section(name); s != nil {
		return s
	}
	s := &tomledit.Section{Heading: &parser.Heading{Name: parser.Key{name}}}
	d.doc.Sections = append(d.doc.Sections, s)
	return s
}

func itemsOf(s *tomledit.Section) []parser.Item {
	if s == nil {
		return nil
	}
	return s.Items
}

// find locates the key/value node at path: one element is a top-level key,
// two elements is a key inside a named table.
func (d *Document) find(path ...string) *parser.KeyValue {
	var items []parser.Item
	key := path[len(path)-1]
	switch len(path) {
	case 1:
		items = itemsOf(d.doc.Global)
	case 2:
		items = itemsOf(d.section(path[0]))
	default:
		return nil
	}
	for _, item := range items {
		if kv, ok := item.(*parser.KeyValue); ok && len(kv.Name) == 1 && kv.Name[0] == key {
			return kv
		}
	}
	return nil
}

func (d *Document) rawValue(path ...string) (string, bool) {
	kv := d.find(path...)
	if kv == nil {
		return "", false
	}
	return kv.Value.String(), true
}

// GetString returns the string value at path, or false if the node is
// absent or not a string.
func (d *Document) GetString(path ...string) (string, bool) {
	raw, ok := d.rawValue(path...)
	if !ok {
		return "", false
	}
	return decodeString(raw)
}

// GetBool returns the boolean value at path, or false if absent or not
// a boolean.
func (d *Document) GetBool(path ...string) (bool, bool) {
	raw, ok := d.rawValue(path...)
	if !ok {
		return false, false
	}
	return decodeBool(raw)
}

// GetInt returns the integer value at path, or false if absent or not
// an integer.
func (d *Document) GetInt(path ...string) (int64, bool) {
	raw, ok := d.rawValue(path...)
	if !ok {
		return 0, false
	}
	return decodeInt(raw)
}

// GetStringList returns the string-array value at path, or false if absent
// or not an array of strings.
func (d *Document) GetStringList(path ...string) ([]string, bool) {
	raw, ok := d.rawValue(path...)
	if !ok {
		return nil, false
	}
	return decodeStringList(raw)
}

// DisplayValue renders the value at path for human display regardless of
// its type. Strings are unescaped, arrays render as "[a, b]", and anything
// else shows its source text.
func (d *Document) DisplayValue(path ...string) (string, bool) {
	raw, ok := d.rawValue(path...)
	if !ok {
		return "", false
	}
	if text, isStr := decodeString(raw); isStr {
		return text, true
	}
	if list, isList := decodeStringList(raw); isList {
		return "[" + strings.Join(list, ", ") + "]", true
	}
	return strings.TrimSpace(raw), true
}

func (d *Document) setRaw(text string, path ...string) {
	if kv := d.find(path...); kv != nil {
		kv.Value = parser.MustValue(text)
		return
	}
	kv := &parser.KeyValue{
		Name:  parser.Key{path[len(path)-1]},
		Value: parser.MustValue(text),
	}
	switch len(path) {
	case 1:
		if d.doc.Global == nil {
			d.doc.Global = &tomledit.Section{}
		}
		d.doc.Global.Items = append(d.doc.Global.Items, kv)
	case 2:
		s := d.ensureSection(path[0])
		s.Items = append(s.Items, kv)
	}
}

// SetString sets a string value at path, creating the table on demand.
func (d *Document) SetString(value string, path ...string) {
	d.setRaw(encodeString(value), path...)
}

// SetBool sets a boolean value at path, creating the table on demand.
func (d *Document) SetBool(value bool, path ...string) {
	d.setRaw(fmt.Sprintf("%t", value), path...)
}

// SetInt sets an integer value at path, creating the table on demand.
func (d *Document) SetInt(value int64, path ...string) {
	d.setRaw(fmt.Sprintf("%d", value), path...)
}

// SetStringList sets a string-array value at path, creating the table
// on demand.
func (d *Document) SetStringList(values []string, path ...string) {
	d.setRaw(encodeStringList(values), path...)
}

// Remove deletes the key at path. It reports whether anything was removed.
func (d *Document) Remove(path ...string) bool {
	switch len(path) {
	case 1:
		if removeKey(d.doc.Global, path[0]) {
			return true
		}
		return d.RemoveTable(path[0])
	case 2:
		return removeKey(d.section(path[0]), path[1])
	}
	return false
}

func removeKey(s *tomledit.Section, key string) bool {
	if s == nil {
		return false
	}
	for i, item := range s.Items {
		if kv, ok := item.(*parser.KeyValue); ok && len(kv.Name) == 1 && kv.Name[0] == key {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return true
		}
	}
	return false
}

// HasTable reports whether a top-level table with the given name exists.
func (d *Document) HasTable(name string) bool {
	return d.section(name) != nil
}

// RemoveTable deletes a whole top-level table, entries included.
func (d *Document) RemoveTable(name string) bool {
	for i, s := range d.doc.Sections {
		if s.Heading != nil && len(s.Heading.Name) == 1 && s.Heading.Name[0] == name {
			d.doc.Sections = append(d.doc.Sections[:i], d.doc.Sections[i+1:]...)
			return true
		}
	}
	return false
}

// TableKeys lists the keys of a table in file order, minus any excluded
// keys. A missing table yields nil.
func (d *Document) TableKeys(table string, exclude ...string) []string {
	var keys []string
	for _, e := range d.TableEntries(table, exclude...) {
		keys = append(keys, e.Key)
	}
	return keys
}

// TableEntries lists the key/value pairs of a table in file order, minus
// any excluded keys.
func (d *Document) TableEntries(table string, exclude ...string) []Entry {
	skip := make(map[string]bool, len(exclude))
	for _, k := range exclude {
		skip[k] = true
	}
	var entries []Entry
	for _, item := range itemsOf(d.section(table)) {
		kv, ok := item.(*parser.KeyValue)
		if !ok || len(kv.Name) != 1 || skip[kv.Name[0]] {
			continue
		}
		raw := kv.Value.String()
		if text, isStr := decodeString(raw); isStr {
			entries = append(entries, Entry{Key: kv.Name[0], Value: text, IsString: true})
		} else {
			entries = append(entries, Entry{Key: kv.Name[0], Value: strings.TrimSpace(raw)})
		}
	}
	return entries
}

// SetTableEntry sets one string entry of a table, creating the table
// on demand.
func (d *Document) SetTableEntry(table, key, value string) {
	d.setRaw(encodeString(value), table, key)
}

// RemoveTableEntry deletes one entry of a table. It reports whether the
// entry existed.
func (d *Document) RemoveTableEntry(table, key string) bool {
	return removeKey(d.section(table), key)
}
