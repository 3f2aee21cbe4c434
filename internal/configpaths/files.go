// Package configpaths locates the CLI settings file and the rule file.
//
// Two files are involved: the settings file holds CLI flag values and is
// read by the kong configuration loaders; the rule file holds the remaps.
package configpaths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	appName = "xremap"

	// SettingsBaseName is the base name of the CLI settings file.
	SettingsBaseName = "xremap"
	// RulesBaseName is the base name of the default rule file.
	RulesBaseName = "config"

	systemDir = "/etc/xremap"
)

// DefaultConfigDir returns $XDG_CONFIG_HOME/xremap.
func DefaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

// DefaultRulesPath returns the first existing rule file among the XDG
// config directories, or the YAML path in DefaultConfigDir when there is
// none yet.
func DefaultRulesPath() string {
	for _, ext := range []string{".yml", ".yaml", ".toml", ".json"} {
		rel := filepath.Join(appName, RulesBaseName+ext)
		if p, err := xdg.SearchConfigFile(rel); err == nil {
			return p
		}
	}
	return filepath.Join(DefaultConfigDir(), RulesBaseName+".yml")
}

// DefaultSettingsPath returns the settings file path for format inside
// DefaultConfigDir.
func DefaultSettingsPath(format string) string {
	return filepath.Join(DefaultConfigDir(), SettingsBaseName+"."+Ext(format))
}

// Ext maps a format name to a file extension; unknown formats map to json.
func Ext(format string) string {
	switch format {
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	}
	return "json"
}

// EnsureDir creates the directory holding filePath.
func EnsureDir(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), 0o755)
}

// ConfigCandidatePaths returns the settings files the kong loaders try,
// per format, most specific first. userPath, when set, comes first and is
// routed by extension.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	add := func(slice *[]string, p string) { *slice = append(*slice, p) }
	addDir := func(dir string) {
		add(&jsonPaths, filepath.Join(dir, SettingsBaseName+".json"))
		add(&yamlPaths, filepath.Join(dir, SettingsBaseName+".yaml"))
		add(&yamlPaths, filepath.Join(dir, SettingsBaseName+".yml"))
		add(&tomlPaths, filepath.Join(dir, SettingsBaseName+".toml"))
	}

	if userPath != "" {
		switch filepath.Ext(userPath) {
		case ".yaml", ".yml":
			add(&yamlPaths, userPath)
		case ".toml":
			add(&tomlPaths, userPath)
		default:
			add(&jsonPaths, userPath)
		}
	}

	if wd, err := os.Getwd(); err == nil {
		addDir(wd)
	}
	addDir(DefaultConfigDir())
	for _, dir := range xdg.ConfigDirs {
		addDir(filepath.Join(dir, appName))
	}
	addDir(systemDir)
	return
}
