// Package install performs a fresh proxy install: jar download with
// checksum verification, velocity.toml generation, launch scripts, and a
// systemd unit.
package install

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"mcvelo-cli/pkg/models"
)

// Installer downloads artifacts and writes the install directory contents.
type Installer struct {
	client *http.Client
}

// NewInstaller creates an installer with a long download timeout; proxy
// jars run tens of megabytes.
func NewInstaller() *Installer {
	return &Installer{client: &http.Client{Timeout: 10 * time.Minute}}
}

// Perform executes the install described by settings. The install
// directory is created on demand.
func (i *Installer) Perform(settings *models.InstallSettings) error {
	if err := os.MkdirAll(settings.InstallDir, 0o755); err != nil {
		return fmt.Errorf("create install dir %s: %w", settings.InstallDir, err)
	}

	jarName, err := i.DownloadJar(settings.Version, settings.InstallDir)
	if err != nil {
		return err
	}

	configPath := filepath.Join(settings.InstallDir, "velocity.toml")
	if err := os.WriteFile(configPath, []byte(BuildConfig(settings)), 0o644); err != nil {
		return fmt.Errorf("write velocity.toml: %w", err)
	}

	if settings.ForwardingSecret != "" {
		secretPath := filepath.Join(settings.InstallDir, defaultForwardingSecretFile)
		if err := os.WriteFile(secretPath, []byte(settings.ForwardingSecret), 0o600); err != nil {
			return fmt.Errorf("write forwarding secret: %w", err)
		}
	}

	if err := writeStartScripts(settings.InstallDir, jarName, settings.Xms, settings.Xmx); err != nil {
		return err
	}
	return writeSystemdUnit(settings.InstallDir)
}

// DownloadJar streams the jar for the given version into destDir while
// hashing it, verifies the SHA-256 digest, and returns the file name. A
// digest mismatch removes the partial file.
func (i *Installer) DownloadJar(version models.VersionInfo, destDir string) (string, error) {
	jarName := jarFileName(version.URL)
	destPath := filepath.Join(destDir, jarName)

	resp, err := i.client.Get(version.URL)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", version.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: HTTP %d", version.URL, resp.StatusCode)
	}

	file, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", destPath, err)
	}

	hasher := sha256.New()
	_, err = io.Copy(io.MultiWriter(file, hasher), resp.Body)
	closeErr := file.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(destPath)
		return "", fmt.Errorf("download %s: %w", version.URL, err)
	}

	actual := hex.EncodeToString(hasher.Sum(nil))
	expected := strings.ToLower(version.SHA256)
	if actual != expected {
		os.Remove(destPath)
		return "", fmt.Errorf("checksum mismatch for %s: expected=%s actual=%s", jarName, expected, actual)
	}
	return jarName, nil
}

// jarFileName derives the on-disk jar name from the download URL.
func jarFileName(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if name := path.Base(u.Path); name != "." && name != "/" && name != "" {
			return name
		}
	}
	return "velocity.jar"
}
