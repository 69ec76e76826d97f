package app

import (
	"fmt"
	"path/filepath"

	"mcvelo-cli/internal/config"
	"mcvelo-cli/internal/install"
	"mcvelo-cli/internal/interactive"
	"mcvelo-cli/internal/interfaces"
	"mcvelo-cli/internal/setup"
	"mcvelo-cli/internal/versions"
	"mcvelo-cli/pkg/models"
)

// RunInstall executes a full interactive install: collect settings, confirm,
// download the proxy jar, and write the server files.
func RunInstall(request *models.InstallRequest) error {
	cfg, err := loadConfiguration(request.ConfigPath, func(m *config.Manager) {
		m.SetFlag("install_dir", request.InstallDir)
		m.SetFlag("index_url", request.IndexURL)
	})
	if err != nil {
		return err
	}

	con := interactive.NewStdConsole()
	con.Printf("Velocity proxy installer\n")
	con.Printf("Answer the prompts to set up a new proxy. Press Enter to accept a default.\n\n")

	catalog := versions.NewCatalog(cfg.IndexURL)
	settings, err := install.CollectSettings(con, catalog, cfg)
	if err != nil {
		return fmt.Errorf("failed to collect install settings: %w", err)
	}
	if settings == nil {
		con.Printf("Install aborted.\n")
		return nil
	}

	install.PrintSummary(con, settings)
	proceed, err := con.YesNo("Proceed with these settings?", true)
	if err != nil {
		return err
	}
	if !proceed {
		con.Printf("Install aborted.\n")
		return nil
	}

	con.Printf("\nDownloading Velocity %s...\n", settings.Version.Version)
	if err := install.NewInstaller().Perform(settings); err != nil {
		return fmt.Errorf("install failed: %w", err)
	}

	con.Printf("\nInstall complete.\n")
	con.Printf("Start the proxy with %s\n", filepath.Join(settings.InstallDir, "start.sh"))
	con.Printf("Edit %s later with `mcvelo setup`.\n", filepath.Join(settings.InstallDir, "velocity.toml"))
	return nil
}

// RunSetup executes the interactive velocity.toml editing session.
func RunSetup(request *models.SetupRequest) error {
	cfg, err := loadConfiguration(request.ConfigPath, nil)
	if err != nil {
		return err
	}

	defaultPath := cfg.ConfigFile
	if request.File != "" {
		defaultPath = request.File
	}

	con := interactive.NewStdConsole()
	con.Printf("Velocity configuration editor\n\n")
	return setup.NewSession(con).Run(defaultPath)
}

// RunUpdate reports on a newer proxy build. In-place updates are not wired
// up yet; the installer already handles re-running into an existing dir.
func RunUpdate(request *models.InstallRequest) error {
	cfg, err := loadConfiguration(request.ConfigPath, func(m *config.Manager) {
		m.SetFlag("index_url", request.IndexURL)
	})
	if err != nil {
		return err
	}

	con := interactive.NewStdConsole()
	con.Printf("Fetching the list of Velocity versions...\n")
	available, err := versions.NewCatalog(cfg.IndexURL).Fetch()
	if err != nil {
		return err
	}

	latest := available[0]
	con.Printf("Latest available build: %s (%s)\n", latest.Version, latest.Kind)
	con.Printf("To update an existing install, re-run `mcvelo` into the same directory.\n")
	return nil
}

// loadConfiguration loads the tool configuration and applies flag overrides.
func loadConfiguration(configPath string, applyFlags func(*config.Manager)) (*interfaces.Config, error) {
	manager := config.NewManager()
	if _, err := manager.Load(configPath); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	if applyFlags != nil {
		applyFlags(manager)
	}
	cfg, err := manager.Resolve()
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	if err := manager.Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}
