package setup

import (
	"fmt"
	"sort"
	"strings"

	"mcvelo-cli/internal/tomldoc"
)

const (
	unsetLabel   = "(unset)"
	removedLabel = "(removed)"
)

// Summarize computes the human-readable change list between the pristine
// and the edited document. Lines come out in field-declaration order,
// then servers, try order, and forced-hosts; output is deterministic for
// identical inputs.
func Summarize(original, working *tomldoc.Document) []string {
	var changes []string
	for _, spec := range fieldSpecs {
		changes = append(changes, diffScalar(spec.Key, original, working)...)
	}
	changes = append(changes, diffMap(serversTable, serversMap(original), serversMap(working))...)
	changes = append(changes, diffTryOrder(original, working)...)
	changes = append(changes, diffMap(forcedHostsTable, forcedHostsMap(original), forcedHostsMap(working))...)
	return changes
}

func diffScalar(key string, original, working *tomldoc.Document) []string {
	before, beforeOK := original.DisplayValue(key)
	after, afterOK := working.DisplayValue(key)
	if beforeOK == afterOK && before == after {
		return nil
	}
	if !beforeOK {
		before = unsetLabel
	}
	if !afterOK {
		after = removedLabel
	}
	return []string{fmt.Sprintf("%s: %s -> %s", key, before, after)}
}

func diffMap(label string, before, after map[string]string) []string {
	keys := make(map[string]bool, len(before)+len(after))
	for key := range before {
		keys[key] = true
	}
	for key := range after {
		keys[key] = true
	}
	ordered := make([]string, 0, len(keys))
	for key := range keys {
		ordered = append(ordered, key)
	}
	sort.Strings(ordered)

	var changes []string
	for _, key := range ordered {
		prev, hadPrev := before[key]
		next, hasNext := after[key]
		switch {
		case hadPrev && hasNext && prev == next:
		case hadPrev && hasNext:
			changes = append(changes, fmt.Sprintf("%s: changed %s = %s -> %s", label, key, prev, next))
		case hasNext:
			changes = append(changes, fmt.Sprintf("%s: added %s = %s", label, key, next))
		default:
			changes = append(changes, fmt.Sprintf("%s: removed %s = %s", label, key, prev))
		}
	}
	return changes
}

func diffTryOrder(original, working *tomldoc.Document) []string {
	before, beforeOK := original.GetStringList(serversTable, reservedTryKey)
	after, afterOK := working.GetStringList(serversTable, reservedTryKey)
	if beforeOK == afterOK && equalLists(before, after) {
		return nil
	}
	beforeText := unsetLabel
	if beforeOK {
		beforeText = listDisplay(before)
	}
	afterText := removedLabel
	if afterOK {
		afterText = listDisplay(after)
	}
	return []string{fmt.Sprintf("servers.try: %s -> %s", beforeText, afterText)}
}

func serversMap(doc *tomldoc.Document) map[string]string {
	entries := doc.TableEntries(serversTable, reservedTryKey)
	result := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.IsString {
			result[e.Key] = e.Value
		}
	}
	return result
}

func forcedHostsMap(doc *tomldoc.Document) map[string]string {
	result := make(map[string]string)
	for _, host := range doc.TableKeys(forcedHostsTable) {
		if refs, ok := doc.GetStringList(forcedHostsTable, host); ok {
			result[host] = listDisplay(refs)
		}
	}
	return result
}

func equalLists(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// listDisplay renders a present list; an empty one shows as "[]" so it
// never reads as absent.
func listDisplay(list []string) string {
	return "[" + strings.Join(list, ", ") + "]"
}
