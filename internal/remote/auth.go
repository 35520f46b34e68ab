package remote

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
	"golang.org/x/term"

	"xl-vim/internal/config"
)

// Prompt asks the user for a secret.
type Prompt func(prompt string) (string, error)

// PasswordAuth returns an AuthMethod for password authentication.
func PasswordAuth(password string) ssh.AuthMethod {
	return ssh.Password(password)
}

// PubKeyAuth returns an AuthMethod for public key authentication from a key file.
func PubKeyAuth(keyPath string) (ssh.AuthMethod, error) {
	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, err
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, err
	}
	return ssh.PublicKeys(signer), nil
}

// AgentAuth returns an AuthMethod backed by the agent at $SSH_AUTH_SOCK.
func AgentAuth() (ssh.AuthMethod, error) {
	sock := os.Getenv("SSH_AUTH_SOCK")
	if sock == "" {
		return nil, fmt.Errorf("SSH_AUTH_SOCK not set")
	}
	conn, err := net.Dial("unix", sock)
	if err != nil {
		return nil, fmt.Errorf("dial agent: %w", err)
	}
	return ssh.PublicKeysCallback(agent.NewClient(conn).Signers), nil
}

// DefaultKeyPaths returns the private keys ssh(1) tries by default.
func DefaultKeyPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	var paths []string
	for _, name := range []string{"id_ed25519", "id_ecdsa", "id_rsa"} {
		paths = append(paths, filepath.Join(home, ".ssh", name))
	}
	return paths
}

// AuthMethods assembles key, agent and interactive auth for conn. Key and
// agent methods come first so prompt is only used when they fail.
func AuthMethods(conn config.Connection, prompt Prompt) []ssh.AuthMethod {
	var methods []ssh.AuthMethod

	if conn.KeyPath != "" {
		if am, err := PubKeyAuth(conn.KeyPath); err == nil {
			methods = append(methods, am)
		}
	}
	if am, err := AgentAuth(); err == nil {
		methods = append(methods, am)
	}
	for _, kp := range DefaultKeyPaths() {
		if kp == conn.KeyPath {
			continue
		}
		if am, err := PubKeyAuth(kp); err == nil {
			methods = append(methods, am)
		}
	}
	if prompt == nil {
		return methods
	}

	methods = append(methods, ssh.PasswordCallback(func() (string, error) {
		return prompt(fmt.Sprintf("Password for %s@%s: ", conn.Username, conn.Host))
	}))
	methods = append(methods, ssh.KeyboardInteractive(
		func(user, instruction string, questions []string, echos []bool) ([]string, error) {
			answers := make([]string, len(questions))
			for i, q := range questions {
				if q == "" {
					q = fmt.Sprintf("Authentication for %s@%s: ", user, conn.Host)
				}
				a, err := prompt(q)
				if err != nil {
					return nil, err
				}
				answers[i] = a
			}
			return answers, nil
		},
	))
	return methods
}

// TerminalPrompt reads a secret from the controlling terminal without echo.
func TerminalPrompt(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("cannot prompt for a password: stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// HostKeyCallback checks host keys against the known_hosts files for conn.
// StrictHostKeyChecking=no accepts any key.
func HostKeyCallback(conn config.Connection) (ssh.HostKeyCallback, error) {
	if strings.EqualFold(conn.StrictHostKeyChecking, "no") {
		return ssh.InsecureIgnoreHostKey(), nil
	}
	files := knownHostsFiles(conn)
	if len(files) == 0 {
		return nil, fmt.Errorf("no known_hosts file; connect once with ssh to %s first", conn.Host)
	}
	cb, err := knownhosts.New(files...)
	if err != nil {
		return nil, fmt.Errorf("read known_hosts: %w", err)
	}
	return func(hostname string, remote net.Addr, key ssh.PublicKey) error {
		err := cb(hostname, remote, key)
		var keyErr *knownhosts.KeyError
		if errors.As(err, &keyErr) && len(keyErr.Want) == 0 {
			return fmt.Errorf("host %s is not in known_hosts (%s); connect once with ssh first", hostname, ssh.FingerprintSHA256(key))
		}
		return err
	}, nil
}

func knownHostsFiles(conn config.Connection) []string {
	candidates := []string{conn.UserKnownHostsFile}
	if conn.UserKnownHostsFile == "" {
		home, _ := os.UserHomeDir()
		candidates = []string{filepath.Join(home, ".ssh", "known_hosts")}
	}
	var files []string
	for _, f := range candidates {
		if _, err := os.Stat(f); err == nil {
			files = append(files, f)
		}
	}
	return files
}
