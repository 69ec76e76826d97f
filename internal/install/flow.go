package install

import (
	"fmt"
	"os"
	"strings"

	"mcvelo-cli/internal/interactive"
	"mcvelo-cli/internal/interfaces"
	"mcvelo-cli/pkg/models"
)

const (
	defaultBind           = "0.0.0.0:25565"
	defaultMOTD           = "<#09add3>A Velocity Server"
	defaultShowMaxPlayers = 500
	defaultFirstServer    = "lobby"
	defaultFirstAddress   = "127.0.0.1:30066"
)

var forwardingModes = []string{"none", "legacy", "bungeeguard", "modern"}

// CollectSettings walks the operator through every install decision and
// returns the assembled settings, or nil when the operator aborted at the
// existing-directory check.
func CollectSettings(con *interactive.Console, catalog interfaces.VersionCatalog, cfg *interfaces.Config) (*models.InstallSettings, error) {
	dir, err := promptInstallDir(con, cfg.InstallDir)
	if err != nil {
		return nil, err
	}
	proceed, err := confirmExistingDir(con, dir)
	if err != nil {
		return nil, err
	}
	if !proceed {
		return nil, nil
	}

	con.Printf("Fetching the list of Velocity versions...\n")
	available, err := catalog.Fetch()
	if err != nil {
		return nil, err
	}
	version, err := promptVersion(con, available)
	if err != nil {
		return nil, err
	}

	servers, tryOrder, err := promptServers(con)
	if err != nil {
		return nil, err
	}

	mode, err := promptForwardingMode(con)
	if err != nil {
		return nil, err
	}
	var secret string
	if mode == "BUNGEEGUARD" || mode == "MODERN" {
		if secret, err = con.NonEmpty("Shared secret (stored in forwarding.secret)"); err != nil {
			return nil, err
		}
	}

	bind, err := con.WithDefault("Listen address", defaultBind)
	if err != nil {
		return nil, err
	}
	motd, err := con.WithDefault("MOTD", defaultMOTD)
	if err != nil {
		return nil, err
	}
	maxPlayers, err := con.Int("Displayed max players", defaultShowMaxPlayers)
	if err != nil {
		return nil, err
	}
	onlineMode, err := con.YesNo("Enable online mode?", true)
	if err != nil {
		return nil, err
	}
	forceKey, err := con.YesNo("Force key authentication?", true)
	if err != nil {
		return nil, err
	}

	xms, xmx, err := promptMemory(con, cfg.Xms, cfg.Xmx)
	if err != nil {
		return nil, err
	}

	return &models.InstallSettings{
		InstallDir:       dir,
		Version:          version,
		Bind:             bind,
		MOTD:             motd,
		ShowMaxPlayers:   maxPlayers,
		OnlineMode:       onlineMode,
		ForceKeyAuth:     forceKey,
		ForwardingMode:   mode,
		ForwardingSecret: secret,
		Servers:          servers,
		TryOrder:         tryOrder,
		Xms:              xms,
		Xmx:              xmx,
	}, nil
}

func promptInstallDir(con *interactive.Console, def string) (string, error) {
	for {
		dir, err := con.WithDefault("Install directory", def)
		if err != nil {
			return "", err
		}
		ok, err := con.YesNo(fmt.Sprintf("Install into %s?", dir), true)
		if err != nil {
			return "", err
		}
		if ok {
			return dir, nil
		}
	}
}

// confirmExistingDir asks before reusing a non-empty target directory.
// Declining aborts the whole install.
func confirmExistingDir(con *interactive.Console, dir string) (bool, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("inspect install dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return false, fmt.Errorf("install target %s is not a directory", dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, fmt.Errorf("inspect install dir %s: %w", dir, err)
	}
	if len(entries) == 0 {
		return true, nil
	}
	return con.YesNo("The directory already contains files. Overwrite and continue?", false)
}

func promptVersion(con *interactive.Console, available []models.VersionInfo) (models.VersionInfo, error) {
	labels := make([]string, len(available))
	for i, v := range available {
		labels[i] = fmt.Sprintf("%s (%s)", v.Version, v.Kind)
	}
	for {
		con.Printf("\n")
		index, err := con.ChooseOption("Available versions:", labels, 0)
		if err != nil {
			return models.VersionInfo{}, err
		}
		chosen := available[index]
		ok, err := con.YesNo(fmt.Sprintf("Use %s (%s)?", chosen.Version, chosen.Kind), true)
		if err != nil {
			return models.VersionInfo{}, err
		}
		if ok {
			return chosen, nil
		}
	}
}

// promptServers collects at least one backend server, then the try order.
// Unlike setup, the install flow is strict: the try order must reference
// only defined servers and contain no duplicates.
func promptServers(con *interactive.Console) ([]models.ServerEntry, []string, error) {
	var servers []models.ServerEntry
	for {
		nameDef, addrDef := "", ""
		if len(servers) == 0 {
			nameDef, addrDef = defaultFirstServer, defaultFirstAddress
		}

		name, err := con.WithDefault("Backend server name", nameDef)
		if err != nil {
			return nil, nil, err
		}
		if name == "" {
			con.Printf("Server name cannot be empty.\n")
			continue
		}
		if strings.Contains(name, ",") {
			con.Printf("Server names cannot contain commas.\n")
			continue
		}
		if hasEntry(servers, name) {
			con.Printf("A server with that name already exists.\n")
			continue
		}
		addr, err := con.WithDefault("Backend server address", addrDef)
		if err != nil {
			return nil, nil, err
		}
		if addr == "" {
			con.Printf("Server address cannot be empty.\n")
			continue
		}
		servers = append(servers, models.ServerEntry{Name: name, Address: addr})

		more, err := con.YesNo("Add another backend server?", false)
		if err != nil {
			return nil, nil, err
		}
		if !more {
			break
		}
	}

	tryOrder, err := promptTryOrder(con, servers)
	if err != nil {
		return nil, nil, err
	}
	return servers, tryOrder, nil
}

func promptTryOrder(con *interactive.Console, servers []models.ServerEntry) ([]string, error) {
	names := make([]string, len(servers))
	for i, s := range servers {
		names[i] = s.Name
	}
	def := strings.Join(names, ",")

	for {
		input, err := con.WithDefault("Connection try order (comma-separated)", def)
		if err != nil {
			return nil, err
		}
		var list []string
		for _, item := range strings.Split(input, ",") {
			if item = strings.TrimSpace(item); item != "" {
				list = append(list, item)
			}
		}
		if len(list) == 0 {
			con.Printf("Try order cannot be empty.\n")
			continue
		}
		if hasDuplicates(list) {
			con.Printf("Try order contains duplicates.\n")
			continue
		}
		var unknown []string
		for _, name := range list {
			if !hasEntry(servers, name) {
				unknown = append(unknown, name)
			}
		}
		if len(unknown) > 0 {
			con.Printf("Try order references undefined servers: %s\n", strings.Join(unknown, ", "))
			continue
		}
		return list, nil
	}
}

func promptForwardingMode(con *interactive.Console) (string, error) {
	for {
		con.Printf("\n")
		index, err := con.ChooseOption("Player info forwarding mode:", forwardingModes, 0)
		if err != nil {
			return "", err
		}
		chosen := forwardingModes[index]
		ok, err := con.YesNo(fmt.Sprintf("Use %s?", chosen), true)
		if err != nil {
			return "", err
		}
		if ok {
			return strings.ToUpper(chosen), nil
		}
	}
}

func promptMemory(con *interactive.Console, defXms, defXmx string) (string, string, error) {
	for {
		xms, err := con.WithDefault("Initial heap Xms", defXms)
		if err != nil {
			return "", "", err
		}
		xmx, err := con.WithDefault("Maximum heap Xmx", defXmx)
		if err != nil {
			return "", "", err
		}
		ok, err := con.YesNo(fmt.Sprintf("Use Xms=%s / Xmx=%s?", xms, xmx), true)
		if err != nil {
			return "", "", err
		}
		if ok {
			return xms, xmx, nil
		}
	}
}

func hasEntry(servers []models.ServerEntry, name string) bool {
	for _, s := range servers {
		if s.Name == name {
			return true
		}
	}
	return false
}

func hasDuplicates(list []string) bool {
	seen := make(map[string]bool, len(list))
	for _, item := range list {
		if seen[item] {
			return true
		}
		seen[item] = true
	}
	return false
}

// PrintSummary renders the collected settings for the final confirmation.
func PrintSummary(con *interactive.Console, settings *models.InstallSettings) {
	con.Printf("\nInstall summary:\n")
	con.Printf("- install dir: %s\n", settings.InstallDir)
	con.Printf("- version: %s (%s)\n", settings.Version.Version, settings.Version.Kind)
	con.Printf("- bind: %s\n", settings.Bind)
	con.Printf("- motd: %s\n", settings.MOTD)
	con.Printf("- displayed max players: %d\n", settings.ShowMaxPlayers)
	con.Printf("- online mode: %s\n", enabledText(settings.OnlineMode))
	con.Printf("- force key authentication: %s\n", enabledText(settings.ForceKeyAuth))
	con.Printf("- forwarding mode: %s\n", strings.ToLower(settings.ForwardingMode))
	if settings.ForwardingSecret != "" {
		con.Printf("- shared secret: set\n")
	} else {
		con.Printf("- shared secret: none\n")
	}
	con.Printf("- backend servers:\n")
	for _, server := range settings.Servers {
		con.Printf("  - %s = %s\n", server.Name, server.Address)
	}
	con.Printf("- try order: %s\n", strings.Join(settings.TryOrder, ", "))
	con.Printf("- memory: Xms=%s / Xmx=%s\n", settings.Xms, settings.Xmx)
}

func enabledText(v bool) string {
	if v {
		return "enabled"
	}
	return "disabled"
}
