// Package setup implements the interactive velocity.toml edit flow: one
// prompt per field, a referential-integrity pass over forced-hosts, and a
// reviewed, confirmation-gated save.
package setup

import (
	"os"
	"strings"

	"mcvelo-cli/internal/interactive"
	"mcvelo-cli/internal/tomldoc"
)

// State is the session controller's position in the edit flow.
type State int

const (
	StateLoading State = iota
	StateEditing
	StateReconciling
	StateReviewing
	StateCommitting
	StateAborted
)

// Session owns the single-threaded edit flow over one velocity.toml. Two
// parses of the file are held for its lifetime: a pristine original used
// only for diffing, and the working copy every editor mutates. The raw
// file text (LF-normalized) is kept alongside so the save can patch only
// the changed lines instead of reformatting the whole document.
type Session struct {
	con      *interactive.Console
	state    State
	path     string
	useCRLF  bool
	rawText  string
	original *tomldoc.Document
	working  *tomldoc.Document
}

// NewSession creates a session reading and reporting on the given console.
func NewSession(con *interactive.Console) *Session {
	return &Session{con: con, state: StateLoading}
}

// State returns the session's current (or terminal) state.
func (s *Session) State() State {
	return s.state
}

// Run drives the whole flow: load, edit every field in fixed order,
// reconcile forced-hosts, review the diff, and commit on confirmation.
// A session that saves nothing — no textual change, or a declined save —
// ends in StateAborted with a nil error and an untouched file.
func (s *Session) Run(defaultPath string) error {
	if err := s.load(defaultPath); err != nil {
		s.state = StateAborted
		return err
	}

	s.state = StateEditing
	for _, spec := range fieldSpecs {
		if err := editField(s.con, s.working, spec); err != nil {
			return err
		}
	}
	if err := editServers(s.con, s.working); err != nil {
		return err
	}
	if err := editTryOrder(s.con, s.working); err != nil {
		return err
	}

	s.state = StateReconciling
	if err := reconcileForcedHosts(s.con, s.working); err != nil {
		return err
	}

	s.state = StateReviewing
	return s.review()
}

func (s *Session) load(defaultPath string) error {
	path, err := s.con.WithDefault("Path to velocity.toml", defaultPath)
	if err != nil {
		return err
	}
	s.path = path

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return newConfigNotFoundError(path)
		}
		return newConfigReadError(path, err)
	}
	text := string(raw)
	s.useCRLF = strings.Contains(text, "\r\n")
	s.rawText = strings.ReplaceAll(text, "\r\n", "\n")

	if s.original, err = tomldoc.Parse(text); err != nil {
		return newConfigParseError(path, err)
	}
	// second, independent parse; the two trees are never aliased
	if s.working, err = tomldoc.Parse(text); err != nil {
		return newConfigParseError(path, err)
	}
	return nil
}

func (s *Session) review() error {
	patched, err := tomldoc.Patch(s.rawText, s.original, s.working)
	if err != nil {
		return err
	}

	if patched == s.rawText {
		s.con.Printf("No changes to save.\n")
		s.state = StateAborted
		return nil
	}

	changes := Summarize(s.original, s.working)
	s.con.Printf("\nChanges:\n")
	if len(changes) == 0 {
		s.con.Printf("(no change details available)\n")
	} else {
		for _, change := range changes {
			s.con.Printf("- %s\n", change)
		}
	}

	save, err := s.con.YesNo("Save these changes?", true)
	if err != nil {
		return err
	}
	if !save {
		s.con.Printf("Aborted without saving.\n")
		s.state = StateAborted
		return nil
	}

	s.state = StateCommitting
	return s.commit(patched)
}

// commit rewrites the file in one full write, re-applying the line-ending
// convention the original used.
func (s *Session) commit(text string) error {
	if s.useCRLF {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	if err := os.WriteFile(s.path, []byte(text), 0o644); err != nil {
		s.state = StateAborted
		return newSaveError(s.path, err)
	}
	s.con.Printf("Saved %s\n", s.path)
	return nil
}
