package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config is the root configuration for tsheet, stored in ~/.tsheet/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	Storage StorageConfig `json:"storage"`
	Log     LogConfig     `json:"log"`
	Server  ServerConfig  `json:"server"`
	Export  ExportConfig  `json:"export"`
	Outlook OutlookConfig `json:"outlook"`
}

// StorageConfig selects where and how records are kept.
type StorageConfig struct {
	// Driver is one of "file", "buntdb" or "sqlite".
	Driver string `json:"driver"`
	// Path is the data directory. Empty = the directory holding config.json.
	Path string `json:"path"`
}

type LogConfig struct {
	Level string `json:"level"`
}

// ServerConfig configures `tsheet serve`.
type ServerConfig struct {
	Addr           string   `json:"addr"`
	AllowedOrigins []string `json:"allowed_origins"`
}

type ExportConfig struct {
	// Dir is where exports go when no --out is given. Empty = current directory.
	Dir string `json:"dir"`
}

// OutlookConfig holds Microsoft Graph / Outlook calendar import settings.
type OutlookConfig struct {
	// TenantID is the Azure AD tenant. Use "common" for personal/multi-tenant accounts.
	TenantID string `json:"tenant_id"`
	// ClientID is the Azure app (client) ID for the OAuth2 device code flow.
	ClientID string `json:"client_id"`
	// DefaultProject is the project name assigned to imported events. Empty
	// means the event subject is used.
	DefaultProject string `json:"default_project"`
	// Timezone is the IANA timezone for event times (e.g. "Europe/Berlin"). Empty = local.
	Timezone string `json:"timezone"`
}

const (
	DefaultDriver   = "file"
	DefaultLogLevel = "info"
	DefaultAddr     = ":8080"
	// DefaultTenantID is the Microsoft "common" tenant (supports personal and
	// multi-tenant organisational accounts without additional registration).
	DefaultTenantID = "common"
	// DefaultClientID is the well-known public Azure CLI app ID.
	// It supports device code flow without a client secret and requires no
	// app registration. Replace with your own registered app ID for
	// organisational or production deployments.
	DefaultClientID = "04b07795-8542-4c4a-95af-30b2c573d5ab"
)

// Default returns a Config pre-filled with the built-in defaults.
func Default() Config {
	return Config{
		Storage: StorageConfig{Driver: DefaultDriver},
		Log:     LogConfig{Level: DefaultLogLevel},
		Server:  ServerConfig{Addr: DefaultAddr, AllowedOrigins: []string{"*"}},
		Outlook: OutlookConfig{
			TenantID: DefaultTenantID,
			ClientID: DefaultClientID,
		},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// tsheet configuration – ~/.tsheet/config.json
//
// All settings are optional; the built-in defaults shown below work out of
// the box. Environment variables TSHEET_STORAGE_DRIVER, TSHEET_STORAGE_PATH,
// TSHEET_LOG_LEVEL and TSHEET_ADDR override the matching settings.
{
  // ── Storage ──────────────────────────────────────────────────────────────
  "storage": {
    // Backend for the working week, history and project catalogue.
    // • "file"   – one JSON file per record (default)
    // • "buntdb" – single embedded key/value file tsheet.db
    // • "sqlite" – single SQLite database tsheet.sqlite
    "driver": "file",

    // Data directory. Leave empty to keep data next to this file.
    "path": ""
  },

  // ── Diagnostics log (tsheet.log in the data directory) ───────────────────
  "log": {
    // One of "debug", "info", "warn", "error".
    "level": "info"
  },

  // ── Read-only dashboard API: tsheet serve ────────────────────────────────
  "server": {
    "addr": ":8080",
    "allowed_origins": ["*"]
  },

  // ── Export ───────────────────────────────────────────────────────────────
  "export": {
    // Directory for tsheet export when --out is not given. Empty = current directory.
    "dir": ""
  },

  // ── Microsoft Graph / Outlook calendar import ────────────────────────────
  "outlook": {
    // Azure AD tenant ID.
    // • "common"  – personal Microsoft accounts and any organisation (default)
    // • Your organisation's tenant GUID, e.g. "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx"
    "tenant_id": "common",

    // Azure application (client) ID used for the OAuth2 device code flow.
    // The built-in value is the public Azure CLI app – no app registration needed.
    "client_id": "04b07795-8542-4c4a-95af-30b2c573d5ab",

    // Project name for imported events. Empty = use each event's subject.
    // Can be overridden per-sync with: tsheet outlook sync --project <name>
    "default_project": "",

    // IANA timezone for interpreting calendar event times, e.g. "Europe/Berlin".
    // Leave empty to use local time. Override with: tsheet outlook sync --timezone <tz>
    "timezone": ""
  }
}
`

// Path returns the path to ~/.tsheet/config.json, honouring TSHEET_HOME.
func Path() (string, error) {
	if dir := os.Getenv("TSHEET_HOME"); dir != "" {
		return filepath.Join(dir, "config.json"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".tsheet", "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.tsheet/config.json. See LoadFrom.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return applyEnv(Default()), err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path, creating it with annotated defaults on
// first run, then applies environment overrides. A blank storage path
// resolves to the directory holding the file.
func LoadFrom(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
	case err != nil:
		return finish(cfg, path), fmt.Errorf("reading config file %s: %w", path, err)
	default:
		var parsed Config
		if err := json.Unmarshal(stripLineComments(data), &parsed); err != nil {
			return finish(cfg, path), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
		}
		cfg = withDefaults(parsed)
	}
	return finish(cfg, path), nil
}

func finish(cfg Config, path string) Config {
	cfg = applyEnv(cfg)
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = filepath.Dir(path)
	}
	return cfg
}

// withDefaults fills zero-value fields with built-in defaults so callers
// always get a usable Config even if the user only partially fills in the file.
func withDefaults(cfg Config) Config {
	def := Default()
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = def.Storage.Driver
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.Server.AllowedOrigins == nil {
		cfg.Server.AllowedOrigins = def.Server.AllowedOrigins
	}
	if cfg.Outlook.TenantID == "" {
		cfg.Outlook.TenantID = def.Outlook.TenantID
	}
	if cfg.Outlook.ClientID == "" {
		cfg.Outlook.ClientID = def.Outlook.ClientID
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func applyEnv(cfg Config) Config {
	cfg.Storage.Driver = getEnv("TSHEET_STORAGE_DRIVER", cfg.Storage.Driver)
	cfg.Storage.Path = getEnv("TSHEET_STORAGE_PATH", cfg.Storage.Path)
	cfg.Log.Level = getEnv("TSHEET_LOG_LEVEL", cfg.Log.Level)
	cfg.Server.Addr = getEnv("TSHEET_ADDR", cfg.Server.Addr)
	return cfg
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
