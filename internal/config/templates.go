package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Futures Trade Journal Configuration

[data]
# Folder scanned for broker CSV exports
dir = ""
# SQLite database file
database_path = ""
# Folder for chart-series artifacts
chart_dir = ""

[ai]
# Model used for trade analysis
model = "gpt-4o-mini"
# Analysis tone: analytical, supportive, blunt
default_tone = "analytical"
# Most recent trades included per analysis
max_trades = 20

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "02-Jan-2006"
`

const credentialsTemplate = `# Futures Trade Journal Credentials
# Keep this file private. OPENAI_API_KEY overrides the value here.

[openai]
api_key = ""
`

func createTemplateConfig(configDir string) error {
	return writeTemplate(configDir, "config.toml", configTemplate)
}

func createTemplateCredentials(configDir string) error {
	return writeTemplate(configDir, "credentials.toml", credentialsTemplate)
}

func writeTemplate(configDir, name, content string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	path := filepath.Join(configDir, name)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(content), 0600)
}
