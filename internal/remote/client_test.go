package remote

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"xl-vim/internal/config"
)

// ---------------------------------------------------------------------------
// shellQuote
// ---------------------------------------------------------------------------

func TestShellQuoteSimple(t *testing.T) {
	got := shellQuote("/home/user/book.xlsx")
	want := "'/home/user/book.xlsx'"
	if got != want {
		t.Errorf("shellQuote simple = %q, want %q", got, want)
	}
}

func TestShellQuoteWithSingleQuote(t *testing.T) {
	got := shellQuote("/home/user/it's a book.xlsx")
	want := "'/home/user/it'\\''s a book.xlsx'"
	if got != want {
		t.Errorf("shellQuote with quote = %q, want %q", got, want)
	}
}

func TestShellQuoteEmpty(t *testing.T) {
	if got := shellQuote(""); got != "''" {
		t.Errorf("shellQuote empty = %q, want ''", got)
	}
}

func TestShellQuoteMultipleSingleQuotes(t *testing.T) {
	got := shellQuote("it's a 'test' path")
	if strings.Count(got, `'\''`) != 3 {
		t.Errorf("should escape 3 single quotes, got %q", got)
	}
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

func TestDefaultKeyPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	paths := DefaultKeyPaths()
	if len(paths) != 3 {
		t.Fatalf("got %d paths, want 3", len(paths))
	}
	for _, p := range paths {
		if !strings.HasPrefix(p, filepath.Join(home, ".ssh")) {
			t.Errorf("%s is not under ~/.ssh", p)
		}
	}
}

func TestPubKeyAuthBadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "id_rsa")
	os.WriteFile(p, []byte("not a key"), 0o600)
	if _, err := PubKeyAuth(p); err == nil {
		t.Error("expected error for invalid key")
	}
	if _, err := PubKeyAuth(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing key")
	}
}

func TestAgentAuthWithoutSocket(t *testing.T) {
	t.Setenv("SSH_AUTH_SOCK", "")
	if _, err := AgentAuth(); err == nil {
		t.Error("expected error without SSH_AUTH_SOCK")
	}
}

func TestAuthMethodsWithoutPrompt(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SSH_AUTH_SOCK", "")
	if got := AuthMethods(config.Connection{Host: "h"}, nil); len(got) != 0 {
		t.Errorf("got %d methods, want none", len(got))
	}
	prompt := func(string) (string, error) { return "", nil }
	if got := AuthMethods(config.Connection{Host: "h"}, prompt); len(got) != 2 {
		t.Errorf("got %d methods, want password and keyboard-interactive", len(got))
	}
}

func TestHostKeyCallbackStrictNo(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := HostKeyCallback(config.Connection{Host: "h", StrictHostKeyChecking: "No"}); err != nil {
		t.Errorf("StrictHostKeyChecking=no should not need known_hosts: %v", err)
	}
}

func TestHostKeyCallbackMissingKnownHosts(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := HostKeyCallback(config.Connection{Host: "h"}); err == nil {
		t.Error("expected error without known_hosts")
	}
}
