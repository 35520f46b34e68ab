package config

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// SSHHost is one Host alias from ~/.ssh/config.
type SSHHost struct {
	Alias        string
	HostName     string
	Port         string
	User         string
	IdentityFile string

	UserKnownHostsFile    string
	StrictHostKeyChecking string
}

// DisplayHost returns HostName if set, otherwise Alias.
func (h SSHHost) DisplayHost() string {
	if h.HostName != "" {
		return h.HostName
	}
	return h.Alias
}

// ToConnection converts h into connection parameters, defaulting the port.
func (h SSHHost) ToConnection() Connection {
	port := h.Port
	if port == "" {
		port = "22"
	}
	return Connection{
		Host:     h.DisplayHost(),
		Port:     port,
		Username: h.User,
		KeyPath:  h.IdentityFile,

		UserKnownHostsFile:    h.UserKnownHostsFile,
		StrictHostKeyChecking: h.StrictHostKeyChecking,
	}
}

// MatchSSHHost returns the entry whose alias equals name, or nil.
func MatchSSHHost(hosts []SSHHost, name string) *SSHHost {
	for i := range hosts {
		if hosts[i].Alias == name {
			return &hosts[i]
		}
	}
	return nil
}

// Resolve fills in connection parameters for host from ~/.ssh/config style
// entries. Explicit user and port win over the config.
func Resolve(hosts []SSHHost, host, user, port string) Connection {
	conn := Connection{Host: host, Port: "22"}
	if match := MatchSSHHost(hosts, host); match != nil {
		conn = match.ToConnection()
	}
	if user != "" {
		conn.Username = user
	}
	if port != "" {
		conn.Port = port
	}
	return conn
}

func sshConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".ssh", "config")
}

// LoadSSHConfig reads ~/.ssh/config. A missing file yields no hosts.
func LoadSSHConfig() []SSHHost {
	return LoadSSHConfigFrom(sshConfigPath())
}

// LoadSSHConfigFrom reads and parses an SSH config file at the given path.
func LoadSSHConfigFrom(path string) []SSHHost {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()

	return ParseSSHConfig(f)
}

// ParseSSHConfig parses SSH config content. A Host line naming several
// aliases yields one entry per alias; wildcard patterns are skipped.
func ParseSSHConfig(r io.Reader) []SSHHost {
	var hosts []SSHHost
	var block []SSHHost

	flush := func() {
		for _, h := range block {
			if !isWildcard(h.Alias) {
				hosts = append(hosts, h)
			}
		}
		block = nil
	}
	set := func(apply func(*SSHHost)) {
		for i := range block {
			apply(&block[i])
		}
	}

	home, _ := os.UserHomeDir()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value := splitSSHConfigLine(line)
		if key == "" {
			continue
		}

		switch strings.ToLower(key) {
		case "host":
			flush()
			for _, alias := range strings.Fields(value) {
				block = append(block, SSHHost{Alias: alias})
			}
		case "match":
			flush()
		case "hostname":
			set(func(h *SSHHost) { h.HostName = value })
		case "port":
			set(func(h *SSHHost) { h.Port = value })
		case "user":
			set(func(h *SSHHost) { h.User = value })
		case "userknownhostsfile":
			if files := strings.Fields(value); len(files) > 0 {
				set(func(h *SSHHost) { h.UserKnownHostsFile = expandTilde(files[0], home) })
			}
		case "stricthostkeychecking":
			set(func(h *SSHHost) { h.StrictHostKeyChecking = value })
		case "identityfile":
			// First IdentityFile wins, as with ssh(1).
			set(func(h *SSHHost) {
				if h.IdentityFile == "" {
					h.IdentityFile = expandTilde(value, home)
				}
			})
		}
	}
	flush()

	return hosts
}

// splitSSHConfigLine splits "Key value" or "Key=value".
func splitSSHConfigLine(line string) (string, string) {
	if key, val, ok := strings.Cut(line, "="); ok {
		return strings.TrimSpace(key), strings.TrimSpace(val)
	}
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i+1:])
}

func isWildcard(alias string) bool {
	return strings.ContainsAny(alias, "*?!")
}

func expandTilde(path, home string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		return home
	}
	return path
}
