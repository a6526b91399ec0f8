package tools

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// SSHRunner executes build commands on a remote build host over SSH. It
// honors the same Invocation contract as ExecRunner: the working directory
// becomes a leading cd, extra environment entries become leading exports.
type SSHRunner struct {
	Host                        string
	Port                        string
	User                        string
	KeyPath                     string
	Passphrase                  []byte
	KnownHostsPath              string
	InsecureSkipHostKeyChecking bool
	Timeout                     time.Duration
}

func (r SSHRunner) Run(inv Invocation) (Result, error) {
	command := r.remoteCommand(inv)
	log.Info().Str("host", r.Host).Str("command", command).Msg("run")

	client, err := r.dial()
	if err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("%w: %v", ErrLaunch, err)
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("%w: %v", ErrLaunch, err)
	}
	defer session.Close()

	if inv.Verbose {
		session.Stdout = os.Stdout
		session.Stderr = os.Stderr
		return sshResult(session.Run(command))
	}

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr
	res, err := sshResult(session.Run(command))
	res.Stdout = strings.TrimRight(stdout.String(), "\n")
	res.Stderr = strings.TrimRight(stderr.String(), "\n")
	return res, err
}

// remoteCommand builds the remote shell command: exported environment
// entries, then the working-directory change, then the joined command.
func (r SSHRunner) remoteCommand(inv Invocation) string {
	var b strings.Builder
	for _, kv := range inv.Env {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "export %s=%s; ", key, shellEscape(value))
	}
	if inv.Dir != "" {
		fmt.Fprintf(&b, "cd %s; ", shellEscape(inv.Dir))
	}
	b.WriteString(inv.commandLine())
	return b.String()
}

// sshResult maps a session error to a Result, distinguishing a remote
// non-zero exit from a connection or protocol failure.
func sshResult(err error) (Result, error) {
	if err == nil {
		return Result{}, nil
	}
	var exitErr *ssh.ExitError
	if errors.As(err, &exitErr) {
		return Result{ExitCode: exitErr.ExitStatus()}, nil
	}
	return Result{ExitCode: -1}, fmt.Errorf("%w: %v", ErrLaunch, err)
}

func (r SSHRunner) dial() (*ssh.Client, error) {
	address, err := r.address()
	if err != nil {
		return nil, err
	}

	config, err := r.clientConfig()
	if err != nil {
		return nil, err
	}

	if r.Timeout <= 0 {
		return ssh.Dial("tcp", address, config)
	}

	conn, err := net.DialTimeout("tcp", address, r.Timeout)
	if err != nil {
		return nil, err
	}

	clientConn, chans, reqs, err := ssh.NewClientConn(conn, address, config)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return ssh.NewClient(clientConn, chans, reqs), nil
}

func (r SSHRunner) address() (string, error) {
	host := strings.TrimSpace(r.Host)
	if host == "" {
		return "", fmt.Errorf("ssh host is required")
	}

	if r.Port != "" {
		return net.JoinHostPort(host, r.Port), nil
	}

	if _, _, err := net.SplitHostPort(host); err == nil {
		return host, nil
	}

	return net.JoinHostPort(host, "22"), nil
}

func (r SSHRunner) clientConfig() (*ssh.ClientConfig, error) {
	if r.User == "" {
		return nil, fmt.Errorf("ssh user is required")
	}

	signer, err := r.signer()
	if err != nil {
		return nil, err
	}

	var hostKeyCallback ssh.HostKeyCallback
	if r.InsecureSkipHostKeyChecking {
		hostKeyCallback = ssh.InsecureIgnoreHostKey()
	} else {
		callback, err := r.knownHostsCallback()
		if err != nil {
			return nil, err
		}
		hostKeyCallback = callback
	}

	return &ssh.ClientConfig{
		User:            r.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         r.Timeout,
	}, nil
}

func (r SSHRunner) signer() (ssh.Signer, error) {
	if r.KeyPath == "" {
		return nil, fmt.Errorf("ssh key path is required")
	}

	privateKey, err := os.ReadFile(r.KeyPath)
	if err != nil {
		return nil, err
	}

	if len(r.Passphrase) > 0 {
		return ssh.ParsePrivateKeyWithPassphrase(privateKey, r.Passphrase)
	}

	return ssh.ParsePrivateKey(privateKey)
}

func (r SSHRunner) knownHostsCallback() (ssh.HostKeyCallback, error) {
	path := strings.TrimSpace(r.KnownHostsPath)
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("known hosts path not set and home dir unavailable")
		}
		path = filepath.Join(home, ".ssh", "known_hosts")
	}

	return knownhosts.New(path)
}
