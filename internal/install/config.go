package install

import (
	"fmt"
	"strings"

	"mcvelo-cli/pkg/models"
)

// configVersion is pinned to the velocity.toml schema this generator
// targets.
const configVersion = "2.7"

const defaultForwardingSecretFile = "forwarding.secret"

// BuildConfig renders a complete velocity.toml for a fresh install.
func BuildConfig(settings *models.InstallSettings) string {
	var out strings.Builder
	out.WriteString("# Config version. Do not change this\n")
	fmt.Fprintf(&out, "config-version = %q\n\n", configVersion)
	fmt.Fprintf(&out, "bind = \"%s\"\n", escapeTOML(settings.Bind))
	fmt.Fprintf(&out, "motd = \"%s\"\n", escapeTOML(settings.MOTD))
	fmt.Fprintf(&out, "show-max-players = %d\n", settings.ShowMaxPlayers)
	fmt.Fprintf(&out, "online-mode = %t\n", settings.OnlineMode)
	fmt.Fprintf(&out, "force-key-authentication = %t\n", settings.ForceKeyAuth)
	out.WriteString("prevent-client-proxy-connections = false\n")
	fmt.Fprintf(&out, "player-info-forwarding-mode = \"%s\"\n", settings.ForwardingMode)
	fmt.Fprintf(&out, "forwarding-secret-file = \"%s\"\n", defaultForwardingSecretFile)
	out.WriteString("announce-forge = false\n")
	out.WriteString("kick-existing-players = false\n")
	out.WriteString("ping-passthrough = \"DISABLED\"\n")
	out.WriteString("sample-players-in-ping = false\n")
	out.WriteString("enable-player-address-logging = true\n\n")

	out.WriteString("[servers]\n")
	for _, server := range settings.Servers {
		fmt.Fprintf(&out, "\"%s\" = \"%s\"\n", escapeTOML(server.Name), escapeTOML(server.Address))
	}
	out.WriteString("try = [\n")
	for _, name := range settings.TryOrder {
		fmt.Fprintf(&out, "    \"%s\",\n", escapeTOML(name))
	}
	out.WriteString("]\n\n")

	out.WriteString("[advanced]\n")
	out.WriteString("compression-threshold = 256\n")
	out.WriteString("compression-level = -1\n")
	out.WriteString("login-ratelimit = 3000\n")
	out.WriteString("connection-timeout = 5000\n")
	out.WriteString("read-timeout = 30000\n")
	out.WriteString("haproxy-protocol = false\n")
	out.WriteString("tcp-fast-open = false\n")
	out.WriteString("bungee-plugin-message-channel = true\n")
	out.WriteString("show-ping-requests = false\n")
	out.WriteString("failover-on-unexpected-server-disconnect = true\n")
	out.WriteString("announce-proxy-commands = true\n")
	out.WriteString("log-command-executions = false\n")
	out.WriteString("log-player-connections = true\n")
	out.WriteString("accepts-transfers = false\n")
	out.WriteString("enable-reuse-port = false\n")
	out.WriteString("command-rate-limit = 50\n")
	out.WriteString("forward-commands-if-rate-limited = true\n")
	out.WriteString("kick-after-rate-limited-commands = 0\n")
	out.WriteString("tab-complete-rate-limit = 10\n")
	out.WriteString("kick-after-rate-limited-tab-completes = 0\n\n")

	out.WriteString("[query]\n")
	out.WriteString("enabled = false\n")
	out.WriteString("port = 25565\n")
	out.WriteString("map = \"Velocity\"\n")
	out.WriteString("show-plugins = false\n")

	return out.String()
}

func escapeTOML(value string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
	)
	return replacer.Replace(value)
}
