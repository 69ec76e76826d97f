package tomldoc

import (
	"strings"
	"testing"
)

// untidyConfig uses none of the canonical formatting: missing spaces
// around equals, indented table entries, a multi-line array, and an
// inline comment.
const untidyConfig = `# proxy configuration
bind="0.0.0.0:25565"
motd = "hi"    # greeting
online-mode=true

[servers]
  lobby="127.0.0.1:30066"
  factions = "127.0.0.1:30067"
  try = [
    "lobby",
  ]

[forced-hosts]
"lobby.example.com"=[ "lobby" ]
`

func patchPair(t *testing.T, text string) (*Document, *Document) {
	t.Helper()
	return mustParse(t, text), mustParse(t, text)
}

func mustPatch(t *testing.T, text string, original, working *Document) string {
	t.Helper()
	out, err := Patch(text, original, working)
	if err != nil {
		t.Fatalf("Patch() failed: %v", err)
	}
	return out
}

func TestPatchNoEditsReturnsInputVerbatim(t *testing.T) {
	original, working := patchPair(t, untidyConfig)
	if got := mustPatch(t, untidyConfig, original, working); got != untidyConfig {
		t.Errorf("Patch() with no edits rewrote the text:\n%s", got)
	}
}

func TestPatchEditTouchesOnlyTheChangedLine(t *testing.T) {
	original, working := patchPair(t, untidyConfig)
	working.SetString("0.0.0.0:25577", "bind")

	want := strings.Replace(untidyConfig, `bind="0.0.0.0:25565"`, `bind="0.0.0.0:25577"`, 1)
	if got := mustPatch(t, untidyConfig, original, working); got != want {
		t.Errorf("Patch() = \n%s\nexpected:\n%s", got, want)
	}
}

func TestPatchKeepsInlineComment(t *testing.T) {
	original, working := patchPair(t, untidyConfig)
	working.SetString("welcome", "motd")

	want := strings.Replace(untidyConfig, `motd = "hi"    # greeting`, `motd = "welcome"    # greeting`, 1)
	if got := mustPatch(t, untidyConfig, original, working); got != want {
		t.Errorf("Patch() = \n%s\nexpected:\n%s", got, want)
	}
}

func TestPatchKeepsIndentation(t *testing.T) {
	original, working := patchPair(t, untidyConfig)
	working.SetTableEntry("servers", "lobby", "127.0.0.1:40000")

	want := strings.Replace(untidyConfig, `  lobby="127.0.0.1:30066"`, `  lobby="127.0.0.1:40000"`, 1)
	if got := mustPatch(t, untidyConfig, original, working); got != want {
		t.Errorf("Patch() = \n%s\nexpected:\n%s", got, want)
	}
}

func TestPatchCollapsesMultilineArray(t *testing.T) {
	original, working := patchPair(t, untidyConfig)
	working.SetStringList([]string{"lobby", "factions"}, "servers", "try")

	want := strings.Replace(untidyConfig, "  try = [\n    \"lobby\",\n  ]", `  try = ["lobby", "factions"]`, 1)
	if got := mustPatch(t, untidyConfig, original, working); got != want {
		t.Errorf("Patch() = \n%s\nexpected:\n%s", got, want)
	}
}

func TestPatchEditQuotedKey(t *testing.T) {
	original, working := patchPair(t, untidyConfig)
	working.SetStringList([]string{"lobby", "pvp"}, "forced-hosts", "lobby.example.com")

	want := strings.Replace(untidyConfig, `"lobby.example.com"=[ "lobby" ]`, `"lobby.example.com"=["lobby", "pvp"]`, 1)
	if got := mustPatch(t, untidyConfig, original, working); got != want {
		t.Errorf("Patch() = \n%s\nexpected:\n%s", got, want)
	}
}

func TestPatchRemoveKeyDropsItsLines(t *testing.T) {
	original, working := patchPair(t, untidyConfig)
	working.Remove("motd")
	working.Remove("servers", "try")

	got := mustPatch(t, untidyConfig, original, working)
	if strings.Contains(got, "motd") {
		t.Errorf("removed key survived:\n%s", got)
	}
	if strings.Contains(got, "try") || strings.Contains(got, `"lobby",`) {
		t.Errorf("removed multi-line array survived:\n%s", got)
	}
	if !strings.Contains(got, `bind="0.0.0.0:25565"`) || !strings.Contains(got, `  lobby="127.0.0.1:30066"`) {
		t.Errorf("untouched lines disturbed:\n%s", got)
	}
}

func TestPatchRemoveTableDropsTheBlock(t *testing.T) {
	original, working := patchPair(t, untidyConfig)
	working.RemoveTable("forced-hosts")

	got := mustPatch(t, untidyConfig, original, working)
	if strings.Contains(got, "forced-hosts") || strings.Contains(got, "lobby.example.com") {
		t.Errorf("removed table survived:\n%s", got)
	}
	if !strings.Contains(got, "[servers]") {
		t.Errorf("sibling table disturbed:\n%s", got)
	}
}

func TestPatchAddsKeyAtSectionEnd(t *testing.T) {
	original, working := patchPair(t, untidyConfig)
	working.SetTableEntry("servers", "pvp", "127.0.0.1:30068")

	got := mustPatch(t, untidyConfig, original, working)
	want := "  ]\npvp = \"127.0.0.1:30068\"\n\n[forced-hosts]"
	if !strings.Contains(got, want) {
		t.Errorf("added key not placed at the end of its table:\n%s", got)
	}
}

func TestPatchAddsGlobalKeyBeforeFirstTable(t *testing.T) {
	original, working := patchPair(t, untidyConfig)
	working.SetInt(500, "show-max-players")

	got := mustPatch(t, untidyConfig, original, working)
	if !strings.Contains(got, "online-mode=true\nshow-max-players = 500\n\n[servers]") {
		t.Errorf("added global key misplaced:\n%s", got)
	}
}

func TestPatchAppendsNewTable(t *testing.T) {
	const text = `bind="0.0.0.0:25565"

[servers]
  lobby="127.0.0.1:30066"
`
	original, working := patchPair(t, text)
	working.SetStringList([]string{"lobby"}, "forced-hosts", "play.example.com")

	got := mustPatch(t, text, original, working)
	if !strings.HasSuffix(got, "\n\n[forced-hosts]\n\"play.example.com\" = [\"lobby\"]\n") {
		t.Errorf("new table not appended:\n%s", got)
	}
	if !strings.HasPrefix(got, text[:len(text)-1]) {
		t.Errorf("existing lines disturbed:\n%s", got)
	}
}

func TestPatchPreservesMissingFinalNewline(t *testing.T) {
	const text = "bind=\"0.0.0.0:25565\"\nmotd=\"hi\""
	original, working := patchPair(t, text)
	working.SetString("welcome", "motd")

	if got := mustPatch(t, text, original, working); got != "bind=\"0.0.0.0:25565\"\nmotd=\"welcome\"" {
		t.Errorf("Patch() = %q", got)
	}
}
