package starline

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
)

// Config carries the credentials of a my.starline.ru account and of the application registered
// for it. A Config is a value; the With* methods return modified copies.
type Config struct {
	login    string
	password string
	appID    string
	secret   string
}

// NewConfig returns a Config. No validation is performed.
func NewConfig(login, password, appID, secret string) Config {
	return Config{
		login:    login,
		password: password,
		appID:    appID,
		secret:   secret,
	}
}

// Login is the user login of the my.starline.ru account.
func (c Config) Login() string {
	return c.login
}

// Password is the plaintext account password. It is only sent as a SHA-1 digest.
func (c Config) Password() string {
	return c.password
}

// AppID is the application identifier issued by my.starline.ru.
func (c Config) AppID() string {
	return c.appID
}

// Secret is the application secret. It is only sent as an MD5 digest.
func (c Config) Secret() string {
	return c.secret
}

func (c Config) WithLogin(login string) Config {
	c.login = login
	return c
}

func (c Config) WithPassword(password string) Config {
	c.password = password
	return c
}

func (c Config) WithAppID(appID string) Config {
	c.appID = appID
	return c
}

func (c Config) WithSecret(secret string) Config {
	c.secret = secret
	return c
}

// passwordDigest is the "pass" field of the SLID login request.
func (c Config) passwordDigest() string {
	sum := sha1.Sum([]byte(c.password))
	return hex.EncodeToString(sum[:])
}

// secretDigest is the "secret" query parameter of the application code and token requests. The
// token request salts the secret with the application code; the code request passes "".
func (c Config) secretDigest(code string) string {
	sum := md5.Sum([]byte(c.secret + code))
	return hex.EncodeToString(sum[:])
}
