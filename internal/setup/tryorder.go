package setup

import (
	"strings"

	"mcvelo-cli/internal/interactive"
	"mcvelo-cli/internal/tomldoc"
)

// editTryOrder runs the skip/edit/delete decision for servers.try, the
// ordered list of server names players are connected to on login and on
// backend disconnect.
func editTryOrder(con *interactive.Console, doc *tomldoc.Document) error {
	current, _ := doc.GetStringList(serversTable, reservedTryKey)
	display := "<unset>"
	if len(current) > 0 {
		display = strings.Join(current, ", ")
	}

	con.Printf("\n[servers] try\n")
	con.Printf("try order: %s\n", display)
	con.Printf("Order in which servers are tried when connecting players.\n")

	decision, err := con.Decision("try order")
	if err != nil {
		return err
	}
	switch decision {
	case interactive.Skip:
		return nil
	case interactive.Delete:
		// only the try key; server entries stay
		doc.Remove(serversTable, reservedTryKey)
		return nil
	}
	return editTryList(con, doc, current)
}

func editTryList(con *interactive.Console, doc *tomldoc.Document, current []string) error {
	def := strings.Join(current, ",")
	for {
		input, err := con.WithDefault("try (comma-separated)", def)
		if err != nil {
			return err
		}
		list := splitList(input)
		if len(list) == 0 {
			con.Printf("Try order cannot be empty.\n")
			continue
		}

		if unknown := unknownServers(doc, list); len(unknown) > 0 {
			// Servers may be defined later, so this is an override rather
			// than a hard failure.
			ok, err := con.YesNo(
				"Unknown servers referenced: "+strings.Join(unknown, ", ")+". Continue anyway?",
				false,
			)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
		}

		doc.SetStringList(list, serversTable, reservedTryKey)
		return nil
	}
}

func splitList(input string) []string {
	var list []string
	for _, item := range strings.Split(input, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

func unknownServers(doc *tomldoc.Document, names []string) []string {
	known := make(map[string]bool)
	for _, name := range serverNames(doc) {
		known[name] = true
	}
	var unknown []string
	for _, name := range names {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	return unknown
}
