package setup

import (
	"reflect"
	"testing"

	"mcvelo-cli/internal/tomldoc"
)

func docPair(t *testing.T, text string) (*tomldoc.Document, *tomldoc.Document) {
	t.Helper()
	return parseDoc(t, text), parseDoc(t, text)
}

func TestSummarizeNoChanges(t *testing.T) {
	original, working := docPair(t, forcedHostsFixture)
	if changes := Summarize(original, working); len(changes) != 0 {
		t.Errorf("Summarize() on identical documents = %v", changes)
	}
}

func TestSummarizeScalarChange(t *testing.T) {
	original, working := docPair(t, serversFixture)
	working.SetString("0.0.0.0:25577", "bind")

	changes := Summarize(original, working)
	want := []string{"bind: 0.0.0.0:25565 -> 0.0.0.0:25577"}
	if !reflect.DeepEqual(changes, want) {
		t.Errorf("Summarize() = %v, expected %v", changes, want)
	}
}

func TestSummarizeScalarRemoval(t *testing.T) {
	original, working := docPair(t, serversFixture)
	working.Remove("bind")

	changes := Summarize(original, working)
	want := []string{"bind: 0.0.0.0:25565 -> (removed)"}
	if !reflect.DeepEqual(changes, want) {
		t.Errorf("Summarize() = %v, expected %v", changes, want)
	}
}

func TestSummarizeScalarAdded(t *testing.T) {
	original, working := docPair(t, serversFixture)
	working.SetString("hello", "motd")

	changes := Summarize(original, working)
	want := []string{"motd: (unset) -> hello"}
	if !reflect.DeepEqual(changes, want) {
		t.Errorf("Summarize() = %v, expected %v", changes, want)
	}
}

func TestSummarizeServersAndTryOrder(t *testing.T) {
	original, working := docPair(t, serversFixture)
	working.SetTableEntry("servers", "pvp", "127.0.0.1:30068")
	working.SetStringList([]string{"lobby", "pvp"}, "servers", "try")

	changes := Summarize(original, working)
	want := []string{
		"servers: added pvp = 127.0.0.1:30068",
		"servers.try: [lobby] -> [lobby, pvp]",
	}
	if !reflect.DeepEqual(changes, want) {
		t.Errorf("Summarize() = %v, expected %v", changes, want)
	}
}

func TestSummarizeTryOrderEmptied(t *testing.T) {
	original, working := docPair(t, serversFixture)
	working.SetStringList([]string{}, "servers", "try")

	changes := Summarize(original, working)
	want := []string{"servers.try: [lobby] -> []"}
	if !reflect.DeepEqual(changes, want) {
		t.Errorf("Summarize() = %v, expected %v", changes, want)
	}
}

func TestSummarizeTryOrderRemoved(t *testing.T) {
	original, working := docPair(t, serversFixture)
	working.Remove("servers", "try")

	changes := Summarize(original, working)
	want := []string{"servers.try: [lobby] -> (removed)"}
	if !reflect.DeepEqual(changes, want) {
		t.Errorf("Summarize() = %v, expected %v", changes, want)
	}
}

func TestSummarizeForcedHostEmptiedList(t *testing.T) {
	original, working := docPair(t, forcedHostsFixture)
	working.SetStringList([]string{}, "forced-hosts", "pvp.example.com")

	changes := Summarize(original, working)
	want := []string{"forced-hosts: changed pvp.example.com = [pvp] -> []"}
	if !reflect.DeepEqual(changes, want) {
		t.Errorf("Summarize() = %v, expected %v", changes, want)
	}
}

func TestSummarizeServerRemovedAndChanged(t *testing.T) {
	original, working := docPair(t, serversFixture)
	working.SetTableEntry("servers", "lobby", "127.0.0.1:40000")
	working.RemoveTableEntry("servers", "factions")

	changes := Summarize(original, working)
	want := []string{
		"servers: removed factions = 127.0.0.1:30067",
		"servers: changed lobby = 127.0.0.1:30066 -> 127.0.0.1:40000",
	}
	if !reflect.DeepEqual(changes, want) {
		t.Errorf("Summarize() = %v, expected %v", changes, want)
	}
}

func TestSummarizeForcedHosts(t *testing.T) {
	original, working := docPair(t, forcedHostsFixture)
	working.SetStringList([]string{"lobby"}, "forced-hosts", "mixed.example.com")
	working.RemoveTableEntry("forced-hosts", "pvp.example.com")

	changes := Summarize(original, working)
	want := []string{
		"forced-hosts: changed mixed.example.com = [lobby, pvp] -> [lobby]",
		"forced-hosts: removed pvp.example.com = [pvp]",
	}
	if !reflect.DeepEqual(changes, want) {
		t.Errorf("Summarize() = %v, expected %v", changes, want)
	}
}

func TestSummarizeOrdering(t *testing.T) {
	original, working := docPair(t, forcedHostsFixture)
	working.RemoveTableEntry("forced-hosts", "pvp.example.com")
	working.SetTableEntry("servers", "pvp", "127.0.0.1:30068")
	working.SetBool(false, "online-mode")
	working.SetString("0.0.0.0:25577", "bind")

	changes := Summarize(original, working)
	want := []string{
		"bind: 0.0.0.0:25565 -> 0.0.0.0:25577",
		"online-mode: (unset) -> false",
		"servers: added pvp = 127.0.0.1:30068",
		"forced-hosts: removed pvp.example.com = [pvp]",
	}
	if !reflect.DeepEqual(changes, want) {
		t.Errorf("Summarize() = %v, expected %v", changes, want)
	}
}

func TestSummarizeDeterministic(t *testing.T) {
	original, working := docPair(t, forcedHostsFixture)
	working.SetTableEntry("servers", "a", "1")
	working.SetTableEntry("servers", "z", "2")
	working.RemoveTableEntry("servers", "lobby")

	first := Summarize(original, working)
	for i := 0; i < 50; i++ {
		if !reflect.DeepEqual(Summarize(original, working), first) {
			t.Fatal("Summarize() output varies across runs")
		}
	}
}
