/*
Package cli facilitates building command-line applications that talk to the StarLine APIs. It
defines a [Config] type that can be used to register common command-line flags (using the Golang
flag package) and environment variable equivalents, and turns them into a [starline.Config].

The package uses [keyring]'s platform-agnostic interface for storing the account password and the
application secret in an OS-dependent credential store.

# Examples

	config, err := cli.NewConfig(cli.FlagAll)
	if err != nil {
		panic(err)
	}
	config.RegisterCommandLineFlags() // Adds -login, -app-id, -password-file, etc.
	flag.Parse()
	config.ReadFromEnvironment()      // Fills in missing fields using STARLINE_* variables

	credentials, err := config.StarlineConfig() // May prompt for the keyring password
	if err != nil {
		panic(err)
	}
	client := starline.NewClient(credentials, nil)

Secrets are resolved in this order: an explicit value (from the environment), a file, and finally
the system keyring entry for the login or application id.
*/
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/99designs/keyring"

	"github.com/starline-go/starline/internal/log"
	"github.com/starline-go/starline/pkg/starline"
)

// Environment variable names used by [Config.ReadFromEnvironment] to set common parameters.
const (
	EnvStarlineLogin          = "STARLINE_LOGIN"
	EnvStarlinePassword       = "STARLINE_PASSWORD"
	EnvStarlinePasswordFile   = "STARLINE_PASSWORD_FILE"
	EnvStarlineAppID          = "STARLINE_APP_ID"
	EnvStarlineAppSecret      = "STARLINE_APP_SECRET"
	EnvStarlineAppSecretFile  = "STARLINE_APP_SECRET_FILE"
	EnvStarlineKeyringType    = "STARLINE_KEYRING_TYPE"
	EnvStarlineKeyringPass    = "STARLINE_KEYRING_PASSWORD"
	EnvStarlineKeyringPath    = "STARLINE_KEYRING_PATH"
	EnvStarlineKeyringDebug   = "STARLINE_KEYRING_DEBUG"
	EnvStarlineVerboseLogging = "STARLINE_VERBOSE"
)

// Flag controls what options should be scanned from the command line and/or environment variables.
type Flag int

func (f Flag) isSet(other Flag) bool {
	return (f & other) == other
}

const (
	FlagAccount     Flag = 1 // Enable login and password options. Required for FetchUserToken.
	FlagApplication Flag = 2 // Enable application id and secret options. Required for FetchCode/FetchToken.
	FlagAll         Flag = FlagAccount | FlagApplication
)

var (
	ErrNoLogin     = errors.New("account login not provided")
	ErrNoAppID     = errors.New("application id not provided")
	ErrKeyNotFound = keyring.ErrKeyNotFound
)

// Config fields determine which StarLine account and application a client authenticates as.
type Config struct {
	Flags            Flag // Controls which set of environment variables/CLI flags to use.
	Login            string
	AppID            string
	PasswordFilename string
	SecretFilename   string
	Backend          keyring.Config
	BackendType      backendType
	Debug            bool // Enable keyring debug messages

	password        string
	secret          string
	keyringPassword *string
}

func NewConfig(flags Flag) (*Config, error) {
	c := Config{
		Flags: flags,
		Backend: keyring.Config{
			ServiceName:              keyringServiceName,
			KeychainTrustApplication: true,
			KeyCtlScope:              "user",
		},
	}
	c.BackendType = backendType{&c}
	c.Backend.KeychainPasswordFunc = c.getKeyringPassword
	c.Backend.FilePasswordFunc = c.getKeyringPassword

	return &c, nil
}

func (c *Config) RegisterCommandLineFlags() {
	if c.Flags.isSet(FlagAccount) {
		flag.StringVar(&c.Login, "login", "", "my.starline.ru account `login`. Defaults to $STARLINE_LOGIN.")
		flag.StringVar(&c.PasswordFilename, "password-file", "", "A `file` containing the account password. Defaults to $STARLINE_PASSWORD_FILE.")
	}
	if c.Flags.isSet(FlagApplication) {
		flag.StringVar(&c.AppID, "app-id", "", "Application `id` issued by my.starline.ru. Defaults to $STARLINE_APP_ID.")
		flag.StringVar(&c.SecretFilename, "secret-file", "", "A `file` containing the application secret. Defaults to $STARLINE_APP_SECRET_FILE.")
	}
	if c.Flags.isSet(FlagAccount) || c.Flags.isSet(FlagApplication) {
		var names []string
		for _, name := range keyring.AvailableBackends() {
			names = append(names, string(name))
		}
		sort.Strings(names)
		flag.Var(&c.BackendType, "keyring-type", "Keyring `type` ("+strings.Join(names, "|")+"). Defaults to $STARLINE_KEYRING_TYPE.")
		flag.StringVar(&c.Backend.FileDir, "keyring-file-dir", keyringDirectory, "keyring `directory` for file-backed keyring types")
		flag.BoolVar(&c.Debug, "keyring-debug", false, "Enable keyring debug logging")
	}
}

// ReadFromEnvironment populates c using environment variables. Values that are already populated
// are not overwritten.
//
// Calling ReadFromEnvironment after flag.Parse() (or other initialization method) will prevent the
// environment from overriding explicit command-line parameters.
func (c *Config) ReadFromEnvironment() {
	if c.Flags.isSet(FlagAccount) {
		if c.Login == "" {
			c.Login = os.Getenv(EnvStarlineLogin)
			log.Debug("Set login to '%s'", c.Login)
		}
		if c.password == "" && c.PasswordFilename == "" {
			c.password = os.Getenv(EnvStarlinePassword)
			c.PasswordFilename = os.Getenv(EnvStarlinePasswordFile)
			log.Debug("Set password file to '%s'", c.PasswordFilename)
		}
	}
	if c.Flags.isSet(FlagApplication) {
		if c.AppID == "" {
			c.AppID = os.Getenv(EnvStarlineAppID)
			log.Debug("Set application id to '%s'", c.AppID)
		}
		if c.secret == "" && c.SecretFilename == "" {
			c.secret = os.Getenv(EnvStarlineAppSecret)
			c.SecretFilename = os.Getenv(EnvStarlineAppSecretFile)
			log.Debug("Set application secret file to '%s'", c.SecretFilename)
		}
	}
	if c.Flags.isSet(FlagAccount) || c.Flags.isSet(FlagApplication) {
		if c.BackendType.String() == string(keyring.InvalidBackend) {
			if err := c.BackendType.Set(os.Getenv(EnvStarlineKeyringType)); err == nil {
				log.Debug("Set keyring type to '%s'", c.BackendType)
			}
		}
		if c.keyringPassword == nil {
			password := os.Getenv(EnvStarlineKeyringPass)
			c.keyringPassword = &password
			if len(password) > 0 {
				log.Debug("Set keyring File Password to %s", strings.Repeat("*", len("hunter2")))
			}
		}
		if c.Backend.FileDir == "" {
			c.Backend.FileDir = os.Getenv(EnvStarlineKeyringPath)
			log.Debug("Set keyring File Path to '%s'", c.Backend.FileDir)
		}
		if !c.Debug {
			_, c.Debug = os.LookupEnv(EnvStarlineKeyringDebug)
			log.Debug("Set keyring Debug Logging to '%v'", c.Debug)
		}
	}
	if _, ok := os.LookupEnv(EnvStarlineVerboseLogging); ok {
		log.SetLevel(log.LevelDebug)
	}
}

// Password returns the account password, loading it from c.PasswordFilename or the keyring on
// first use.
func (c *Config) Password() (string, error) {
	if c.password != "" {
		return c.password, nil
	}
	if c.Login == "" {
		return "", ErrNoLogin
	}
	password, err := loadSecret(c.PasswordFilename, c.LoadPasswordFromKeyring)
	if err != nil {
		return "", err
	}
	c.password = password
	return password, nil
}

// Secret returns the application secret, loading it from c.SecretFilename or the keyring on
// first use.
func (c *Config) Secret() (string, error) {
	if c.secret != "" {
		return c.secret, nil
	}
	if c.AppID == "" {
		return "", ErrNoAppID
	}
	secret, err := loadSecret(c.SecretFilename, c.LoadSecretFromKeyring)
	if err != nil {
		return "", err
	}
	c.secret = secret
	return secret, nil
}

// loadSecret reads filename, falling back to fromKeyring if no file is configured or it does not
// exist.
func loadSecret(filename string, fromKeyring func() (string, error)) (string, error) {
	if filename != "" {
		data, err := os.ReadFile(filename)
		if err == nil {
			return strings.TrimSpace(string(data)), nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		log.Debug("%s does not exist, trying keyring", filename)
	}
	return fromKeyring()
}

// StarlineConfig assembles the credentials enabled by c.Flags. Credentials of a disabled group
// are left empty.
func (c *Config) StarlineConfig() (starline.Config, error) {
	var config starline.Config
	if c.Flags.isSet(FlagAccount) {
		password, err := c.Password()
		if err != nil {
			return config, fmt.Errorf("failed to load account password: %w", err)
		}
		config = config.WithLogin(c.Login).WithPassword(password)
	}
	if c.Flags.isSet(FlagApplication) {
		secret, err := c.Secret()
		if err != nil {
			return config, fmt.Errorf("failed to load application secret: %w", err)
		}
		config = config.WithAppID(c.AppID).WithSecret(secret)
	}
	return config, nil
}
