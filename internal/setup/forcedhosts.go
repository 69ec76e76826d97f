package setup

import (
	"strings"

	"mcvelo-cli/internal/interactive"
	"mcvelo-cli/internal/tomldoc"
)

const forcedHostsTable = "forced-hosts"

// danglingRef is one forced-hosts entry that references server names no
// longer present in [servers].
type danglingRef struct {
	Host    string
	All     []string
	Invalid []string
}

// collectDangling scans the forced-hosts table against the current server
// names and reports every entry holding undefined references, in
// file order.
func collectDangling(doc *tomldoc.Document) []danglingRef {
	known := make(map[string]bool)
	for _, name := range serverNames(doc) {
		known[name] = true
	}

	var result []danglingRef
	for _, host := range doc.TableKeys(forcedHostsTable) {
		refs, ok := doc.GetStringList(forcedHostsTable, host)
		if !ok {
			continue
		}
		var invalid []string
		for _, name := range refs {
			if !known[name] {
				invalid = append(invalid, name)
			}
		}
		if len(invalid) > 0 {
			result = append(result, danglingRef{Host: host, All: refs, Invalid: invalid})
		}
	}
	return result
}

// reconcileForcedHosts runs once after all field editors. It offers a
// single global cleanup of undefined references, then a per-host removal
// for entries left empty. Declining the global confirmation leaves every
// dangling reference in place.
func reconcileForcedHosts(con *interactive.Console, doc *tomldoc.Document) error {
	entries := collectDangling(doc)
	if len(entries) == 0 {
		return nil
	}

	con.Printf("\n[forced-hosts] references to undefined servers found.\n")
	con.Printf("forced-hosts maps a hostname to the servers it routes to.\n")
	con.Printf("Only names missing from [servers] can be removed here.\n")
	for _, e := range entries {
		con.Printf("- %s:\n", e.Host)
		con.Printf("    current: %s\n", strings.Join(e.All, ", "))
		con.Printf("    undefined: %s\n", strings.Join(e.Invalid, ", "))
	}

	ok, err := con.YesNo("Remove only the references to undefined servers?", false)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	for _, e := range entries {
		invalid := make(map[string]bool, len(e.Invalid))
		for _, name := range e.Invalid {
			invalid[name] = true
		}
		remaining := []string{}
		for _, name := range e.All {
			if !invalid[name] {
				remaining = append(remaining, name)
			}
		}
		doc.SetStringList(remaining, forcedHostsTable, e.Host)

		if len(remaining) == 0 {
			removeHost, err := con.YesNo(
				"\""+e.Host+"\" would be left with no servers. Remove the host entry too?",
				true,
			)
			if err != nil {
				return err
			}
			if removeHost {
				doc.RemoveTableEntry(forcedHostsTable, e.Host)
			}
		}
	}
	return nil
}
