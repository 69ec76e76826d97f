package setup

import (
	"bytes"
	"strings"
	"testing"

	"mcvelo-cli/internal/interactive"
	"mcvelo-cli/internal/tomldoc"
)

func testConsole(input string) (*interactive.Console, *bytes.Buffer) {
	var out bytes.Buffer
	return interactive.NewConsole(strings.NewReader(input), &out), &out
}

func parseDoc(t *testing.T, text string) *tomldoc.Document {
	t.Helper()
	doc, err := tomldoc.Parse(text)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	return doc
}

func specFor(t *testing.T, key string) FieldSpec {
	t.Helper()
	for _, spec := range fieldSpecs {
		if spec.Key == key {
			return spec
		}
	}
	t.Fatalf("no field spec for %q", key)
	return FieldSpec{}
}

func TestFieldSpecOrder(t *testing.T) {
	want := []string{
		"bind",
		"motd",
		"show-max-players",
		"online-mode",
		"force-key-authentication",
		"player-info-forwarding-mode",
		"forwarding-secret-file",
	}
	if len(fieldSpecs) != len(want) {
		t.Fatalf("fieldSpecs has %d entries, expected %d", len(fieldSpecs), len(want))
	}
	for i, key := range want {
		if fieldSpecs[i].Key != key {
			t.Errorf("fieldSpecs[%d] = %q, expected %q", i, fieldSpecs[i].Key, key)
		}
	}
}

func TestEditFieldSkipLeavesDocumentAlone(t *testing.T) {
	doc := parseDoc(t, "bind = \"0.0.0.0:25565\"\n")
	con, out := testConsole("\n")

	if err := editField(con, doc, specFor(t, "bind")); err != nil {
		t.Fatalf("editField() failed: %v", err)
	}
	if v, _ := doc.GetString("bind"); v != "0.0.0.0:25565" {
		t.Errorf("skip changed the value to %q", v)
	}
	if !strings.Contains(out.String(), "bind: 0.0.0.0:25565") {
		t.Errorf("current value not shown: %q", out.String())
	}
}

func TestEditFieldDelete(t *testing.T) {
	doc := parseDoc(t, "bind = \"0.0.0.0:25565\"\nmotd = \"hi\"\n")
	con, _ := testConsole("d\n")

	if err := editField(con, doc, specFor(t, "bind")); err != nil {
		t.Fatalf("editField() failed: %v", err)
	}
	if _, ok := doc.GetString("bind"); ok {
		t.Error("delete left the key in place")
	}
	if _, ok := doc.GetString("motd"); !ok {
		t.Error("delete disturbed a sibling key")
	}
}

func TestEditFieldString(t *testing.T) {
	doc := parseDoc(t, "bind = \"0.0.0.0:25565\"\n")
	con, _ := testConsole("e\n0.0.0.0:25577\n")

	if err := editField(con, doc, specFor(t, "bind")); err != nil {
		t.Fatalf("editField() failed: %v", err)
	}
	if v, _ := doc.GetString("bind"); v != "0.0.0.0:25577" {
		t.Errorf("bind = %q, expected 0.0.0.0:25577", v)
	}
}

func TestEditFieldStringKeepCurrentOnEmptyInput(t *testing.T) {
	doc := parseDoc(t, "motd = \"hello\"\n")
	con, _ := testConsole("e\n\n")

	if err := editField(con, doc, specFor(t, "motd")); err != nil {
		t.Fatalf("editField() failed: %v", err)
	}
	if v, _ := doc.GetString("motd"); v != "hello" {
		t.Errorf("motd = %q, expected the current value to stand", v)
	}
}

func TestEditFieldBool(t *testing.T) {
	doc := parseDoc(t, "online-mode = true\n")
	con, out := testConsole("e\nn\n")

	if err := editField(con, doc, specFor(t, "online-mode")); err != nil {
		t.Fatalf("editField() failed: %v", err)
	}
	if v, _ := doc.GetBool("online-mode"); v {
		t.Error("online-mode still true after editing to no")
	}
	// current value is the proposed default
	if !strings.Contains(out.String(), "[Y/n]") {
		t.Errorf("expected the current value as default: %q", out.String())
	}
}

func TestEditFieldInt(t *testing.T) {
	doc := parseDoc(t, "show-max-players = 500\n")
	con, _ := testConsole("e\n100\n")

	if err := editField(con, doc, specFor(t, "show-max-players")); err != nil {
		t.Fatalf("editField() failed: %v", err)
	}
	if v, _ := doc.GetInt("show-max-players"); v != 100 {
		t.Errorf("show-max-players = %d, expected 100", v)
	}
}

func TestEditFieldEnumStoresUppercase(t *testing.T) {
	doc := parseDoc(t, "player-info-forwarding-mode = \"NONE\"\n")
	con, out := testConsole("e\n4\n")

	if err := editField(con, doc, specFor(t, "player-info-forwarding-mode")); err != nil {
		t.Fatalf("editField() failed: %v", err)
	}
	if v, _ := doc.GetString("player-info-forwarding-mode"); v != "MODERN" {
		t.Errorf("forwarding mode = %q, expected MODERN", v)
	}
	if !strings.Contains(out.String(), "Available modes:") {
		t.Errorf("mode list not shown: %q", out.String())
	}
}

func TestEditFieldEnumDefaultIsCurrent(t *testing.T) {
	doc := parseDoc(t, "player-info-forwarding-mode = \"LEGACY\"\n")
	con, _ := testConsole("e\n\n")

	if err := editField(con, doc, specFor(t, "player-info-forwarding-mode")); err != nil {
		t.Fatalf("editField() failed: %v", err)
	}
	if v, _ := doc.GetString("player-info-forwarding-mode"); v != "LEGACY" {
		t.Errorf("forwarding mode = %q, expected the current LEGACY", v)
	}
}

func TestEditFieldAbsentShowsDefault(t *testing.T) {
	doc := parseDoc(t, "# empty\n")
	con, out := testConsole("\n")

	if err := editField(con, doc, specFor(t, "show-max-players")); err != nil {
		t.Fatalf("editField() failed: %v", err)
	}
	if !strings.Contains(out.String(), "show-max-players: 500") {
		t.Errorf("documented default not shown for absent field: %q", out.String())
	}
	// skip on an absent field must not materialize it
	if _, ok := doc.GetInt("show-max-players"); ok {
		t.Error("skip materialized an absent key")
	}
}

func TestEditFieldEnumAbsentDisplayMatchesPromptDefault(t *testing.T) {
	doc := parseDoc(t, "# empty\n")
	con, out := testConsole("e\n\n")

	if err := editField(con, doc, specFor(t, "player-info-forwarding-mode")); err != nil {
		t.Fatalf("editField() failed: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "player-info-forwarding-mode: none") {
		t.Errorf("absent mode not displayed as none: %q", text)
	}
	// the displayed value and the prompt default are the same option
	if !strings.Contains(text, "Select a number [1]: ") {
		t.Errorf("prompt default does not match the displayed value: %q", text)
	}
	if v, _ := doc.GetString("player-info-forwarding-mode"); v != "NONE" {
		t.Errorf("forwarding mode = %q, expected NONE from the shared default", v)
	}
}

func TestEditFieldEnumUnrecognizedValueDefaultsToFirst(t *testing.T) {
	doc := parseDoc(t, "player-info-forwarding-mode = \"CUSTOM\"\n")
	con, out := testConsole("e\n\n")

	if err := editField(con, doc, specFor(t, "player-info-forwarding-mode")); err != nil {
		t.Fatalf("editField() failed: %v", err)
	}
	if !strings.Contains(out.String(), "Select a number [1]: ") {
		t.Errorf("unrecognized mode did not fall back to the first option: %q", out.String())
	}
	if v, _ := doc.GetString("player-info-forwarding-mode"); v != "NONE" {
		t.Errorf("forwarding mode = %q, expected NONE", v)
	}
}

func TestEditFieldWrongTypeDegradesToDefault(t *testing.T) {
	doc := parseDoc(t, "online-mode = \"yes\"\n")
	con, _ := testConsole("e\n\n")

	if err := editField(con, doc, specFor(t, "online-mode")); err != nil {
		t.Fatalf("editField() failed: %v", err)
	}
	// wrong type reads as absent, so the documented default (true) stands
	if v, ok := doc.GetBool("online-mode"); !ok || !v {
		t.Errorf("online-mode = %v, %v, expected true after re-typing", v, ok)
	}
}
