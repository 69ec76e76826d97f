package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"mcvelo-cli/internal/app"
	"mcvelo-cli/pkg/models"
)

// Build-time variables injected via ldflags
var (
	version   = "dev"
	commit    = "unknown"
	date      = "unknown"
	goVersion = runtime.Version()
)

var rootCmd = &cobra.Command{
	Use:   "mcvelo",
	Short: "An interactive installer for the Velocity Minecraft proxy",
	Long: `mcvelo installs and configures the Velocity Minecraft proxy.

Running mcvelo with no subcommand walks through a fresh install: it fetches
the list of available builds, asks for the proxy settings (listen address,
backend servers, player info forwarding, memory), downloads the chosen jar,
and writes velocity.toml together with start scripts and a systemd unit.

Use 'mcvelo setup' to edit an existing velocity.toml in place. The editor
preserves comments, key order, and any settings it does not touch.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionFlag, _ := cmd.Flags().GetBool("version"); versionFlag {
			versionCmd.Run(cmd, args)
			return nil
		}

		request, err := buildInstallRequest(cmd)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}

		return app.RunInstall(request)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print detailed version information including build version, commit, date, and platform details.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mcvelo version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		fmt.Printf("  go version: %s\n", goVersion)
		fmt.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Edit an existing velocity.toml interactively",
	Long: `Walk through an existing velocity.toml field by field. Each field can be
skipped, changed, or deleted; comments and key order are preserved. Forced
host entries that reference removed servers are cleaned up before saving,
and nothing is written until the changes are reviewed and confirmed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildSetupRequest(cmd)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}

		return app.RunSetup(request)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check for a newer Velocity build",
	Long:  "Fetch the version catalog and report the latest available Velocity build.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildInstallRequest(cmd)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}

		return app.RunUpdate(request)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(updateCmd)

	setupCmd.Flags().StringP("file", "f", "", "velocity.toml to edit (default <install_dir>/velocity.toml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file path (default ~/.config/mcvelo/config.toml)")
	rootCmd.PersistentFlags().String("index-url", "", "version catalog URL (overrides config and MCVELO_INDEX_URL)")
	rootCmd.PersistentFlags().BoolP("version", "v", false, "print version information")

	// Main command flags
	rootCmd.Flags().StringP("dir", "d", "", "install directory offered as the prompt default")
}

// buildInstallRequest constructs an InstallRequest from command flags
func buildInstallRequest(cmd *cobra.Command) (*models.InstallRequest, error) {
	request := &models.InstallRequest{}

	var err error

	if request.ConfigPath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, fmt.Errorf("invalid config flag: %w", err)
	}

	if request.IndexURL, err = cmd.Flags().GetString("index-url"); err != nil {
		return nil, fmt.Errorf("invalid index-url flag: %w", err)
	}

	// The dir flag only exists on the root command
	if cmd.Flags().Lookup("dir") != nil {
		if request.InstallDir, err = cmd.Flags().GetString("dir"); err != nil {
			return nil, fmt.Errorf("invalid dir flag: %w", err)
		}
	}

	return request, nil
}

// buildSetupRequest constructs a SetupRequest from command flags
func buildSetupRequest(cmd *cobra.Command) (*models.SetupRequest, error) {
	request := &models.SetupRequest{}

	var err error

	if request.ConfigPath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, fmt.Errorf("invalid config flag: %w", err)
	}

	if request.File, err = cmd.Flags().GetString("file"); err != nil {
		return nil, fmt.Errorf("invalid file flag: %w", err)
	}

	return request, nil
}

func main() {
	// Disable usage on error to show only our custom error messages
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
