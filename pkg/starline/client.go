package starline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/starline-go/starline/internal/log"
)

const (
	developerURL = "https://developer.starline.ru"
	identityURL  = "https://id.starline.ru"
)

// DefaultTimeout bounds every request made by a Client.
const DefaultTimeout = 15 * time.Second

// MaxResponseLength caps the number of body bytes read from a response.
const MaxResponseLength = 1 << 20

// Names reported under the "method" key of Logger contexts.
const (
	MethodRunQuery         = "Client.RunQuery"
	MethodFetchDevicesInfo = "Client.FetchDevicesInfo"
	MethodFetchSLNETToken  = "Client.FetchSLNETToken"
	MethodFetchUserToken   = "Client.FetchUserToken"
	MethodFetchCode        = "Client.FetchCode"
	MethodFetchToken       = "Client.FetchToken"
)

// Client issues requests to the StarLine APIs. It keeps no session state; its fields are fixed at
// construction, so one Client may be shared between goroutines.
type Client struct {
	// The default UserAgent is built from the main module's build info, but can be overridden
	// with WithUserAgent.
	UserAgent string
	config    Config
	logger    Logger
	timeout   time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithUserAgent sets the application part of the User-Agent header, e.g. "my-app/1.2".
func WithUserAgent(app string) Option {
	return func(c *Client) {
		c.UserAgent = buildUserAgent(app)
	}
}

// WithTimeout replaces DefaultTimeout. Non-positive values are ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// NewClient returns a Client using config for credentials. Operational failures are reported to
// logger, which may be nil.
func NewClient(config Config, logger Logger, options ...Option) *Client {
	if logger == nil {
		logger = NopLogger{}
	}
	c := &Client{
		UserAgent: buildUserAgent(""),
		config:    config,
		logger:    logger,
		timeout:   DefaultTimeout,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Config returns the credentials the Client was created with.
func (c *Client) Config() Config {
	return c.config
}

// SLNETSession is the result of exchanging a user token with the developer API.
type SLNETSession struct {
	Token  string // Value of the slnet cookie.
	UserID string
}

// UserIDInt parses UserID for use with FetchDevicesInfo.
func (s SLNETSession) UserIDInt() (int, error) {
	id, err := strconv.Atoi(s.UserID)
	if err != nil {
		return 0, fmt.Errorf("invalid user id %q: %w", s.UserID, err)
	}
	return id, nil
}

// RunQuery sends a control command to a device. The params are serialized as the JSON body; see
// https://developer.starline.ru/#api-Administration-SetParam for the accepted keys.
//
// The decoded response is returned if it carries a non-empty "code" field.
func (c *Client) RunQuery(ctx context.Context, slnetToken, deviceID string, params interface{}) (map[string]interface{}, error) {
	if params == nil {
		params = map[string]interface{}{}
	}
	endpoint := fmt.Sprintf("%s/json/v1/device/%s/set_param", developerURL, url.PathEscape(deviceID))
	rsp, err := c.postJSON(ctx, endpoint, params, sessionHeader(slnetToken))
	if err != nil {
		return nil, err
	}
	return c.codedObject(rsp, MethodRunQuery)
}

// FetchDevicesInfo returns the data of every device visible to the user. The slnetToken and
// userID come from FetchSLNETToken and the userToken from FetchUserToken.
//
// Returns ErrInvalidParams without contacting the server if any argument is empty or zero.
func (c *Client) FetchDevicesInfo(ctx context.Context, slnetToken, userToken string, userID int) (map[string]interface{}, error) {
	if blank(slnetToken) || blank(userToken) || userID == 0 {
		return nil, ErrInvalidParams
	}
	endpoint := fmt.Sprintf("%s/json/v3/user/%d/data", developerURL, userID)
	rsp, err := c.get(ctx, endpoint, nil, sessionHeader(slnetToken))
	if err != nil {
		return nil, err
	}
	return c.codedObject(rsp, MethodFetchDevicesInfo)
}

// codedObject is the success test shared by RunQuery and FetchDevicesInfo.
func (c *Client) codedObject(rsp *response, method string) (map[string]interface{}, error) {
	if err := c.checkResponse(rsp, method); err != nil {
		return nil, err
	}
	object := decodeObject(rsp.Body)
	if blank(scalarString(object["code"])) {
		return nil, c.fail(method, rsp.StatusCode, "Error response", map[string]interface{}{
			"method":          method,
			"response_object": object,
		})
	}
	return object, nil
}

// FetchSLNETToken authorizes the user on the developer API with a token from FetchUserToken.
func (c *Client) FetchSLNETToken(ctx context.Context, userToken string) (SLNETSession, error) {
	const method = MethodFetchSLNETToken
	rsp, err := c.postJSON(ctx, developerURL+"/json/v2/auth.slid", map[string]string{"slid_token": userToken}, nil)
	if err != nil {
		return SLNETSession{}, err
	}
	if err := c.checkResponse(rsp, method); err != nil {
		return SLNETSession{}, err
	}

	object := decodeObject(rsp.Body)
	code := scalarString(object["code"])
	userID := scalarString(object["user_id"])
	if code != "200" || blank(userID) {
		return SLNETSession{}, c.fail(method, rsp.StatusCode, "Error response", map[string]interface{}{
			"method":          method,
			"response_object": object,
		})
	}

	token, ok := slnetCookie(rsp.Header)
	if !ok {
		return SLNETSession{}, c.fail(method, rsp.StatusCode, "SLNET not found in response cookies", map[string]interface{}{
			"method":         method,
			"headers_object": map[string][]string(rsp.Header),
		})
	}
	return SLNETSession{Token: token, UserID: userID}, nil
}

// slnetCookie extracts the session token. Only the first Set-Cookie header is considered, and it
// must be the slnet cookie.
func slnetCookie(header http.Header) (string, bool) {
	cookies := header.Values("Set-Cookie")
	if len(cookies) == 0 {
		return "", false
	}
	first := strings.Split(cookies[0], "; ")[0]
	if !strings.Contains(first, "slnet") {
		return "", false
	}
	parts := strings.Split(first, "=")
	if len(parts) < 2 || blank(parts[1]) {
		return "", false
	}
	return parts[1], true
}

// FetchUserToken logs the configured user in to SLID. The loginToken is an application token from
// FetchToken. The userIP of the end user is forwarded when not empty.
func (c *Client) FetchUserToken(ctx context.Context, loginToken, userIP string) (string, error) {
	const method = MethodFetchUserToken
	form := url.Values{}
	form.Set("login", c.config.Login())
	form.Set("pass", c.config.passwordDigest())
	if userIP != "" {
		form.Set("user_ip", userIP)
	}
	rsp, err := c.postForm(ctx, identityURL+"/apiV3/user/login", form, http.Header{"token": {loginToken}})
	if err != nil {
		return "", err
	}
	if err := c.checkResponse(rsp, method); err != nil {
		return "", err
	}

	object := decodeObject(rsp.Body)
	if state, ok := object["state"].(json.Number); !ok || state.String() != "1" {
		return "", c.fail(method, rsp.StatusCode, "fetchUserToken error response", map[string]interface{}{
			"method":          method,
			"response_object": object,
		})
	}
	userToken, ok := stringField(object, "desc", "user_token")
	if !ok || userToken == "" {
		return "", c.fail(method, rsp.StatusCode, "User token not found in response", map[string]interface{}{
			"method":          method,
			"response_object": object,
		})
	}
	return userToken, nil
}

// FetchCode requests an application code, the first step of application authorization.
func (c *Client) FetchCode(ctx context.Context) (string, error) {
	return c.fetchAppCredential(ctx, MethodFetchCode, "getCode", "", "code", "Code not found in response.")
}

// FetchToken exchanges an application code from FetchCode for an application token.
//
// Returns ErrEmptyCode without contacting the server if code is empty.
func (c *Client) FetchToken(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", ErrEmptyCode
	}
	return c.fetchAppCredential(ctx, MethodFetchToken, "getToken", code, "token", "Token not found in response api")
}

func (c *Client) fetchAppCredential(ctx context.Context, method, action, code, field, missing string) (string, error) {
	query := url.Values{}
	query.Set("appId", c.config.AppID())
	query.Set("secret", c.config.secretDigest(code))
	rsp, err := c.get(ctx, identityURL+"/apiV3/application/"+action, query, nil)
	if err != nil {
		return "", err
	}
	if err := c.checkResponse(rsp, method); err != nil {
		return "", err
	}

	object := decodeObject(rsp.Body)
	value, ok := stringField(object, "desc", field)
	if !ok {
		return "", c.fail(method, rsp.StatusCode, missing, map[string]interface{}{
			"method":          method,
			"response_object": object,
		})
	}
	return value, nil
}

func sessionHeader(slnetToken string) http.Header {
	return http.Header{"Cookie": {"slnet=" + slnetToken}}
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload interface{}, header http.Header) (*response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error encoding request to %s: %w", endpoint, err)
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error constructing request to %s: %w", endpoint, err)
	}
	request.Header.Set("Content-Type", "application/json")
	return c.do(request, header)
}

func (c *Client) postForm(ctx context.Context, endpoint string, form url.Values, header http.Header) (*response, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("error constructing request to %s: %w", endpoint, err)
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(request, header)
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, header http.Header) (*response, error) {
	target := endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("error constructing request to %s: %w", endpoint, err)
	}
	return c.do(request, header)
}

// do sends request on a client of its own and reads the whole (capped) body.
func (c *Client) do(request *http.Request, header http.Header) (*response, error) {
	for key, values := range header {
		for _, value := range values {
			request.Header.Add(key, value)
		}
	}
	request.Header.Set("User-Agent", c.UserAgent)
	request.Header.Set("Accept", "application/json")

	endpoint := request.URL.Scheme + "://" + request.URL.Host + request.URL.Path
	log.Debug("Requesting %s %s...", request.Method, endpoint)
	client := &http.Client{Timeout: c.timeout}
	result, err := client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", endpoint, err)
	}
	defer result.Body.Close()

	reader := io.LimitedReader{R: result.Body, N: MaxResponseLength}
	body, err := io.ReadAll(&reader)
	if err != nil {
		return nil, fmt.Errorf("error reading response from %s: %w", endpoint, err)
	}
	log.Debug("Server returned %d: %s", result.StatusCode, body)
	return &response{StatusCode: result.StatusCode, Header: result.Header, Body: body}, nil
}
