package install

import (
	"fmt"
	"os"
	"path/filepath"
)

// startScriptSh renders the POSIX launch script for the downloaded jar.
func startScriptSh(jarName, xms, xmx string) string {
	return fmt.Sprintf(
		"#!/usr/bin/env sh\nset -e\nDIR=\"$(cd \"$(dirname \"$0\")\" && pwd)\"\nexec java -Xms%s -Xmx%s -jar \"$DIR/%s\"\n",
		xms, xmx, jarName,
	)
}

// startScriptBat renders the Windows launch script. CRLF throughout.
func startScriptBat(jarName, xms, xmx string) string {
	return fmt.Sprintf(
		"@echo off\r\nset DIR=%%~dp0\r\njava -Xms%s -Xmx%s -jar \"%%DIR%%%s\"\r\n",
		xms, xmx, jarName,
	)
}

// writeStartScripts writes start.sh (executable) and start.bat into the
// install directory.
func writeStartScripts(dir, jarName, xms, xmx string) error {
	shPath := filepath.Join(dir, "start.sh")
	if err := os.WriteFile(shPath, []byte(startScriptSh(jarName, xms, xmx)), 0o755); err != nil {
		return fmt.Errorf("write start.sh: %w", err)
	}
	batPath := filepath.Join(dir, "start.bat")
	if err := os.WriteFile(batPath, []byte(startScriptBat(jarName, xms, xmx)), 0o644); err != nil {
		return fmt.Errorf("write start.bat: %w", err)
	}
	return nil
}

// systemdUnit renders a service unit that supervises the proxy through the
// generated start script. User/Group follow $USER, falling back to a
// dedicated "velocity" account.
func systemdUnit(dir string) string {
	user := os.Getenv("USER")
	if user == "" {
		user = "velocity"
	}
	return fmt.Sprintf(`[Unit]
Description=Velocity Minecraft Proxy
After=network-online.target
Wants=network-online.target
StartLimitIntervalSec=600
StartLimitBurst=6

[Service]
WorkingDirectory=%s
ExecStart=%s
User=%s
Group=%s
Restart=on-failure
RestartSec=5

[Install]
WantedBy=multi-user.target
`, dir, filepath.Join(dir, "start.sh"), user, user)
}

func writeSystemdUnit(dir string) error {
	path := filepath.Join(dir, "velocity.service")
	if err := os.WriteFile(path, []byte(systemdUnit(dir)), 0o644); err != nil {
		return fmt.Errorf("write velocity.service: %w", err)
	}
	return nil
}
