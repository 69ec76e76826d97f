package models

// InstallRequest carries the command-line inputs for a fresh install run.
type InstallRequest struct {
	ConfigPath string // tool config file (--config)
	InstallDir string // pre-seeded install directory (--dir)
	IndexURL   string // version catalog override (--index-url)
}

// SetupRequest carries the command-line inputs for an interactive edit run.
type SetupRequest struct {
	ConfigPath string // tool config file (--config)
	File       string // velocity.toml path override (--file)
}

// VersionInfo is one downloadable proxy build from the version catalog.
type VersionInfo struct {
	Version string
	Kind    string
	URL     string
	SHA256  string
}

// ServerEntry is a backend server definition: a unique name mapped to an
// address the proxy connects to.
type ServerEntry struct {
	Name    string
	Address string
}

// InstallSettings is everything collected before an install is performed.
type InstallSettings struct {
	InstallDir       string
	Version          VersionInfo
	Bind             string
	MOTD             string
	ShowMaxPlayers   int
	OnlineMode       bool
	ForceKeyAuth     bool
	ForwardingMode   string // stored uppercase: NONE, LEGACY, BUNGEEGUARD, MODERN
	ForwardingSecret string // empty when the mode needs no secret
	Servers          []ServerEntry
	TryOrder         []string
	Xms              string
	Xmx              string
}
