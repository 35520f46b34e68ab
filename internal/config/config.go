package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const maxRecent = 10

// Connection is a remote host a workbook was last opened from.
type Connection struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	KeyPath  string `json:"key_path,omitempty"`

	UserKnownHostsFile    string `json:"-"`
	StrictHostKeyChecking string `json:"-"`
}

// Config holds application configuration.
type Config struct {
	DefaultColumnWidth int          `json:"default_column_width"`
	MinColumnWidth     int          `json:"min_column_width"`
	MaxColumnWidth     int          `json:"max_column_width"`
	MaxNotifications   int          `json:"max_notifications"`
	SyncClipboard      bool         `json:"sync_clipboard"`
	RecentFiles        []string     `json:"recent_files"`
	RecentConnections  []Connection `json:"recent_connections,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DefaultColumnWidth: 15,
		MinColumnWidth:     5,
		MaxColumnWidth:     50,
		MaxNotifications:   5,
		SyncClipboard:      true,
	}
}

func configPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "xl-vim", "config.json")
}

// Load reads the config from disk. Missing fields keep their defaults; a
// missing or unreadable file yields Default().
func Load() (*Config, error) {
	p := configPath()
	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return Default(), nil
	}
	cfg.normalize()
	return cfg, nil
}

// normalize repairs widths that would make clamping impossible.
func (c *Config) normalize() {
	def := Default()
	if c.MinColumnWidth < 1 {
		c.MinColumnWidth = def.MinColumnWidth
	}
	if c.MaxColumnWidth < c.MinColumnWidth {
		c.MaxColumnWidth = max(def.MaxColumnWidth, c.MinColumnWidth)
	}
	c.DefaultColumnWidth = max(c.MinColumnWidth, min(c.DefaultColumnWidth, c.MaxColumnWidth))
	if c.MaxNotifications < 1 {
		c.MaxNotifications = def.MaxNotifications
	}
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	p := configPath()
	if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(p, data, 0600); err != nil {
		return err
	}
	FixOwnership(p)
	return nil
}

// AddRecentFile moves path to the front of the recent file list.
func (c *Config) AddRecentFile(path string) {
	for i, f := range c.RecentFiles {
		if f == path {
			c.RecentFiles = append(c.RecentFiles[:i], c.RecentFiles[i+1:]...)
			break
		}
	}
	c.RecentFiles = append([]string{path}, c.RecentFiles...)
	if len(c.RecentFiles) > maxRecent {
		c.RecentFiles = c.RecentFiles[:maxRecent]
	}
}

// AddRecent adds or updates a connection in the recent list.
func (c *Config) AddRecent(conn Connection) {
	for i, rc := range c.RecentConnections {
		if rc.Host == conn.Host && rc.Port == conn.Port && rc.Username == conn.Username {
			c.RecentConnections[i] = conn
			return
		}
	}
	c.RecentConnections = append([]Connection{conn}, c.RecentConnections...)
	if len(c.RecentConnections) > maxRecent {
		c.RecentConnections = c.RecentConnections[:maxRecent]
	}
}
