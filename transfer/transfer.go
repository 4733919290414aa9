// Package transfer copies release archives to the deploy host over SSH.
package transfer

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/scrappystats/shipper/config"
)

// Uploader copies a local file to a remote directory
type Uploader interface {
	Upload(localPath string) error
}

// SSHUploader uploads archives over SSH using SFTP
type SSHUploader struct {
	config *config.Config
}

var _ Uploader = (*SSHUploader)(nil)

func NewSSHUploader(cfg *config.Config) *SSHUploader {
	return &SSHUploader{config: cfg}
}

// Upload copies localPath into the configured remote directory, keeping the
// archive's base name. A transfer failure propagates as a build failure; the
// local archive remains valid either way.
func (u *SSHUploader) Upload(localPath string) error {
	clientConfig, err := u.clientConfig()
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", u.config.SSHHost, u.config.SSHPort)
	slog.Info("Uploading archive",
		"archive", localPath,
		"host", addr,
		"remote_path", u.config.SSHRemotePath)

	client, err := ssh.Dial("tcp", addr, clientConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			slog.Debug("Failed to close SSH client", "error", closeErr)
		}
	}()

	sftpClient, err := sftp.NewClient(client)
	if err != nil {
		return fmt.Errorf("failed to start SFTP session: %w", err)
	}
	defer func() {
		if closeErr := sftpClient.Close(); closeErr != nil {
			slog.Debug("Failed to close SFTP client", "error", closeErr)
		}
	}()

	local, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() {
		if closeErr := local.Close(); closeErr != nil {
			slog.Debug("Failed to close local archive", "error", closeErr)
		}
	}()

	remotePath := path.Join(u.config.SSHRemotePath, filepath.Base(localPath))
	remote, err := sftpClient.Create(remotePath)
	if err != nil {
		return fmt.Errorf("failed to create remote file %s: %w", remotePath, err)
	}

	if _, err := io.Copy(remote, local); err != nil {
		_ = remote.Close()
		return fmt.Errorf("failed to copy archive to %s: %w", remotePath, err)
	}
	if err := remote.Close(); err != nil {
		return fmt.Errorf("failed to finalize remote file %s: %w", remotePath, err)
	}

	slog.Info("Archive uploaded", "remote_path", remotePath)
	return nil
}

func (u *SSHUploader) clientConfig() (*ssh.ClientConfig, error) {
	key, err := os.ReadFile(u.config.SSHKeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read SSH key %s: %w", u.config.SSHKeyFile, err)
	}

	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SSH key %s: %w", u.config.SSHKeyFile, err)
	}

	return &ssh.ClientConfig{
		User: u.config.SSHUser,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         u.config.SSHTimeout,
	}, nil
}
