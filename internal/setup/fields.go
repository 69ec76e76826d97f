package setup

import (
	"strconv"
	"strings"

	"mcvelo-cli/internal/interactive"
	"mcvelo-cli/internal/tomldoc"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindBool
	kindInt
	kindEnum
)

// FieldSpec describes one editable scalar field of velocity.toml. The
// declaration order of fieldSpecs drives both the prompt sequence and the
// ordering of the change summary.
type FieldSpec struct {
	Key       string
	Kind      fieldKind
	DefString string
	DefBool   bool
	DefInt    int64
	Options   []string // enum values, lowercase; stored uppercase
}

var fieldSpecs = []FieldSpec{
	{Key: "bind", Kind: kindString, DefString: "0.0.0.0:25565"},
	{Key: "motd", Kind: kindString, DefString: "<#09add3>A Velocity Server"},
	{Key: "show-max-players", Kind: kindInt, DefInt: 500},
	{Key: "online-mode", Kind: kindBool, DefBool: true},
	{Key: "force-key-authentication", Kind: kindBool, DefBool: true},
	{
		Key:     "player-info-forwarding-mode",
		Kind:    kindEnum,
		Options: []string{"none", "legacy", "bungeeguard", "modern"},
	},
	{Key: "forwarding-secret-file", Kind: kindString, DefString: "forwarding.secret"},
}

// editField shows the current value of one scalar field and applies the
// operator's skip/edit/delete decision to the working document.
func editField(con *interactive.Console, doc *tomldoc.Document, spec FieldSpec) error {
	con.Printf("\n%s: %s\n", spec.Key, currentDisplay(doc, spec))

	decision, err := con.Decision(spec.Key)
	if err != nil {
		return err
	}
	switch decision {
	case interactive.Skip:
		return nil
	case interactive.Delete:
		doc.Remove(spec.Key)
		return nil
	}

	switch spec.Kind {
	case kindString:
		return editString(con, doc, spec)
	case kindBool:
		return editBool(con, doc, spec)
	case kindInt:
		return editInt(con, doc, spec)
	case kindEnum:
		return editEnum(con, doc, spec)
	}
	return nil
}

// currentDisplay renders the field's current value, falling back to the
// documented default when the node is absent or has the wrong type.
func currentDisplay(doc *tomldoc.Document, spec FieldSpec) string {
	switch spec.Kind {
	case kindBool:
		if v, ok := doc.GetBool(spec.Key); ok {
			return boolText(v)
		}
		return boolText(spec.DefBool)
	case kindInt:
		if v, ok := doc.GetInt(spec.Key); ok {
			return intText(v)
		}
		return intText(spec.DefInt)
	case kindEnum:
		if v, ok := doc.GetString(spec.Key); ok {
			return strings.ToLower(v)
		}
		return spec.Options[enumDefault(spec, "")-1]
	default:
		if v, ok := doc.GetString(spec.Key); ok {
			return v
		}
		return spec.DefString
	}
}

func editString(con *interactive.Console, doc *tomldoc.Document, spec FieldSpec) error {
	current := currentDisplay(doc, spec)
	value, err := con.WithDefault(spec.Key, current)
	if err != nil {
		return err
	}
	doc.SetString(value, spec.Key)
	return nil
}

func editBool(con *interactive.Console, doc *tomldoc.Document, spec FieldSpec) error {
	current, ok := doc.GetBool(spec.Key)
	if !ok {
		current = spec.DefBool
	}
	value, err := con.YesNo("Enable "+spec.Key+"?", current)
	if err != nil {
		return err
	}
	doc.SetBool(value, spec.Key)
	return nil
}

func editInt(con *interactive.Console, doc *tomldoc.Document, spec FieldSpec) error {
	current, ok := doc.GetInt(spec.Key)
	if !ok {
		current = spec.DefInt
	}
	value, err := con.Int(spec.Key, int(current))
	if err != nil {
		return err
	}
	doc.SetInt(int64(value), spec.Key)
	return nil
}

func editEnum(con *interactive.Console, doc *tomldoc.Document, spec FieldSpec) error {
	current := currentDisplay(doc, spec)

	con.Printf("Available modes:\n")
	for i, option := range spec.Options {
		con.Printf("%3d. %s\n", i+1, option)
	}
	selection, err := con.Choose("Select a number", enumDefault(spec, current), 1, len(spec.Options))
	if err != nil {
		return err
	}
	doc.SetString(strings.ToUpper(spec.Options[selection-1]), spec.Key)
	return nil
}

// enumDefault is the 1-based option selection for the current value. Both
// the displayed fallback and the prompt default go through it, so an
// absent or unrecognized value always lands on the same option.
func enumDefault(spec FieldSpec, current string) int {
	for i, option := range spec.Options {
		if option == current {
			return i + 1
		}
	}
	return 1
}

func boolText(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func intText(v int64) string {
	return strconv.FormatInt(v, 10)
}
