package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/99designs/keyring"
	"golang.org/x/term"
)

const (
	keyringServiceName     = "ru.starline.api"
	keyringPasswordService = "password"
	keyringSecretService   = "appsecret"
	keyringDirectory       = "~/.starline_keys"
)

type backendType struct {
	config *Config
}

func (b backendType) String() string {
	if b.config == nil || len(b.config.Backend.AllowedBackends) == 0 {
		return string(keyring.InvalidBackend)
	}
	return string(b.config.Backend.AllowedBackends[0])
}

func (b backendType) Set(v string) error {
	value := keyring.BackendType(v)
	if b.config == nil {
		return fmt.Errorf("invalid backendType")
	}
	if v == "" {
		return nil
	}
	for _, name := range keyring.AvailableBackends() {
		if name == value {
			b.config.Backend.AllowedBackends = []keyring.BackendType{name}
			return nil
		}
	}
	return fmt.Errorf("unsupported credential storage")
}

// getKeyringPassword unlocks password-protected keyrings, prompting on a terminal if the password
// was not provided through the environment.
func (c *Config) getKeyringPassword(prompt string) (string, error) {
	if c.keyringPassword != nil && *c.keyringPassword != "" {
		return *c.keyringPassword, nil
	}

	var w io.Writer
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		fd = int(os.Stderr.Fd())
		if !term.IsTerminal(fd) {
			return "", fmt.Errorf("no terminal output available for password prompt")
		}
		w = os.Stderr
	} else {
		w = os.Stdout
	}

	fmt.Fprintf(w, "%s: ", prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	fmt.Fprintln(w)
	password := string(b)
	c.keyringPassword = &password
	return password, nil
}

func (c *Config) openKeyring() (keyring.Keyring, error) {
	if c.Debug {
		keyring.Debug = true
	}
	return keyring.Open(c.Backend)
}

func (c *Config) passwordKey() string {
	return keyringPasswordService + "." + c.Login
}

func (c *Config) secretKey() string {
	return keyringSecretService + "." + c.AppID
}

func (c *Config) load(key, what string) (string, error) {
	kr, err := c.openKeyring()
	if err != nil {
		return "", err
	}
	item, err := kr.Get(key)
	if err != nil {
		return "", fmt.Errorf("could not load %s: %w", what, err)
	}
	return string(item.Data), nil
}

func (c *Config) save(key, what, value string) error {
	kr, err := c.openKeyring()
	if err != nil {
		return err
	}
	if err := kr.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: "StarLine " + what,
	}); err != nil {
		return fmt.Errorf("failed to enroll %s in keyring: %w", what, err)
	}
	return nil
}

// LoadPasswordFromKeyring reads the password stored for c.Login.
func (c *Config) LoadPasswordFromKeyring() (string, error) {
	return c.load(c.passwordKey(), "password")
}

// SavePasswordToKeyring stores password under c.Login.
func (c *Config) SavePasswordToKeyring(password string) error {
	if c.Login == "" {
		return ErrNoLogin
	}
	return c.save(c.passwordKey(), "password", password)
}

// LoadSecretFromKeyring reads the application secret stored for c.AppID.
func (c *Config) LoadSecretFromKeyring() (string, error) {
	return c.load(c.secretKey(), "application secret")
}

// SaveSecretToKeyring stores secret under c.AppID.
func (c *Config) SaveSecretToKeyring(secret string) error {
	if c.AppID == "" {
		return ErrNoAppID
	}
	return c.save(c.secretKey(), "application secret", secret)
}

// DeleteCredentials removes the password and application secret of c from the keyring. Entries
// that do not exist are ignored.
func (c *Config) DeleteCredentials() error {
	kr, err := c.openKeyring()
	if err != nil {
		return err
	}
	for _, key := range []string{c.passwordKey(), c.secretKey()} {
		if err := kr.Remove(key); err != nil && err != keyring.ErrKeyNotFound && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
