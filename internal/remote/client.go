package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/bramvdbogaerde/go-scp"
	"golang.org/x/crypto/ssh"

	"xl-vim/internal/config"
)

// Client wraps an SSH connection.
type Client struct {
	client  *ssh.Client
	address string
}

// Dial connects to conn with the given auth methods.
func Dial(conn config.Connection, authMethods []ssh.AuthMethod, hkCallback ssh.HostKeyCallback) (*Client, error) {
	cfg := &ssh.ClientConfig{
		User:            conn.Username,
		Auth:            authMethods,
		HostKeyCallback: hkCallback,
		Timeout:         10 * time.Second,
	}
	address := net.JoinHostPort(conn.Host, conn.Port)
	client, err := ssh.Dial("tcp", address, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", address, err)
	}
	log.Printf("[remote] connected to %s as %s", address, conn.Username)
	return &Client{client: client, address: address}, nil
}

// Close closes the SSH connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// Exists reports whether remotePath exists on the host.
func (c *Client) Exists(remotePath string) (exists bool, retErr error) {
	session, err := c.client.NewSession()
	if err != nil {
		return false, err
	}
	defer func() {
		if cErr := session.Close(); cErr != nil && !errors.Is(cErr, io.EOF) {
			retErr = errors.Join(retErr, fmt.Errorf("close session: %w", cErr))
		}
	}()

	err = session.Run("test -e " + shellQuote(remotePath))
	var exitErr *ssh.ExitError
	switch {
	case err == nil:
		return true, nil
	case errors.As(err, &exitErr) && exitErr.ExitStatus() == 1:
		return false, nil
	}
	return false, err
}

// Upload copies a local file to remotePath.
func (c *Client) Upload(localPath, remotePath string) (retErr error) {
	scpClient, err := scp.NewClientBySSH(c.client)
	if err != nil {
		return err
	}
	defer scpClient.Close()

	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer func() {
		if cErr := f.Close(); cErr != nil {
			retErr = errors.Join(retErr, fmt.Errorf("close local file: %w", cErr))
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	log.Printf("[remote] upload %s -> %s:%s", localPath, c.address, remotePath)
	return scpClient.CopyFile(context.Background(), f, remotePath, fmt.Sprintf("0%o", info.Mode().Perm()))
}

// Download copies remotePath into localDir and returns the local path.
func (c *Client) Download(remotePath, localDir string) (localPath string, retErr error) {
	scpClient, err := scp.NewClientBySSH(c.client)
	if err != nil {
		return "", err
	}
	defer scpClient.Close()

	localPath = filepath.Join(localDir, path.Base(remotePath))
	f, err := os.Create(localPath)
	if err != nil {
		return "", err
	}
	defer func() {
		if cErr := f.Close(); cErr != nil {
			retErr = errors.Join(retErr, fmt.Errorf("close local file: %w", cErr))
		}
	}()

	log.Printf("[remote] download %s:%s -> %s", c.address, remotePath, localPath)
	if err := scpClient.CopyFromRemote(context.Background(), f, remotePath); err != nil {
		return "", fmt.Errorf("download %s: %w", remotePath, err)
	}
	return localPath, nil
}

// shellQuote wraps a path in single quotes and escapes any single quotes within it,
// preventing shell injection when the path is used in a remote command.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}
