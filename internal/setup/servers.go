package setup

import (
	"mcvelo-cli/internal/interactive"
	"mcvelo-cli/internal/tomldoc"
)

// reservedTryKey lives inside [servers] but holds the try order, not a
// server entry. It is excluded from server-name enumeration everywhere.
const reservedTryKey = "try"

const serversTable = "servers"

// serverNames returns the currently defined backend server names in
// file order.
func serverNames(doc *tomldoc.Document) []string {
	return doc.TableKeys(serversTable, reservedTryKey)
}

// editServers runs the skip/edit/delete decision for the [servers] table.
// Edit enters an add/edit/remove sub-loop; Delete drops the whole table,
// try order included.
func editServers(con *interactive.Console, doc *tomldoc.Document) error {
	con.Printf("\n[servers]\n")
	con.Printf("Backend servers the proxy can route players to.\n")
	con.Printf("Example: lobby = \"127.0.0.1:30066\"\n")

	decision, err := con.Decision(serversTable)
	if err != nil {
		return err
	}
	switch decision {
	case interactive.Skip:
		return nil
	case interactive.Delete:
		doc.RemoveTable(serversTable)
		return nil
	}
	return editServerEntries(con, doc)
}

func editServerEntries(con *interactive.Console, doc *tomldoc.Document) error {
	for {
		printServers(con, doc)
		action, err := con.ListAction()
		if err != nil {
			return err
		}
		switch action {
		case interactive.Finish:
			return nil
		case interactive.Add:
			err = addServer(con, doc)
		case interactive.EditEntry:
			err = editServer(con, doc)
		case interactive.RemoveEntry:
			err = removeServer(con, doc)
		}
		if err != nil {
			return err
		}
	}
}

func printServers(con *interactive.Console, doc *tomldoc.Document) {
	entries := doc.TableEntries(serversTable, reservedTryKey)
	if len(entries) == 0 {
		con.Printf("No servers configured.\n")
		return
	}
	con.Printf("Current servers:\n")
	for _, e := range entries {
		if e.IsString {
			con.Printf("- %s = %s\n", e.Key, e.Value)
		} else {
			con.Printf("- %s = <unsupported value>\n", e.Key)
		}
	}
}

func hasServer(doc *tomldoc.Document, name string) bool {
	for _, existing := range serverNames(doc) {
		if existing == name {
			return true
		}
	}
	return false
}

// addServer validates and inserts one server entry. Every rejection prints
// a diagnostic and returns to the action loop without touching the table.
func addServer(con *interactive.Console, doc *tomldoc.Document) error {
	name, err := con.Line("Server name: ")
	if err != nil {
		return err
	}
	if name == "" {
		con.Printf("Server name cannot be empty.\n")
		return nil
	}
	if name == reservedTryKey {
		con.Printf("\"try\" is reserved and cannot be used.\n")
		return nil
	}
	if hasServer(doc, name) {
		con.Printf("A server with that name already exists.\n")
		return nil
	}
	addr, err := con.Line("Server address: ")
	if err != nil {
		return err
	}
	if addr == "" {
		con.Printf("Server address cannot be empty.\n")
		return nil
	}
	doc.SetTableEntry(serversTable, name, addr)
	return nil
}

func editServer(con *interactive.Console, doc *tomldoc.Document) error {
	name, err := con.Line("Server to edit: ")
	if err != nil {
		return err
	}
	if name == "" {
		con.Printf("Server name cannot be empty.\n")
		return nil
	}
	if !hasServer(doc, name) {
		con.Printf("No such server.\n")
		return nil
	}
	addr, err := con.Line("New server address: ")
	if err != nil {
		return err
	}
	if addr == "" {
		con.Printf("Server address cannot be empty.\n")
		return nil
	}
	doc.SetTableEntry(serversTable, name, addr)
	return nil
}

func removeServer(con *interactive.Console, doc *tomldoc.Document) error {
	name, err := con.Line("Server to remove: ")
	if err != nil {
		return err
	}
	if name == "" {
		con.Printf("Server name cannot be empty.\n")
		return nil
	}
	if !hasServer(doc, name) {
		con.Printf("No such server.\n")
		return nil
	}
	doc.RemoveTableEntry(serversTable, name)
	return nil
}
