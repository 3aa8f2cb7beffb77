package starline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// response is a fully read HTTP response.
type response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// checkResponse reports and returns a *ResponseError unless rsp has status 200 and a body.
func (c *Client) checkResponse(rsp *response, method string) error {
	if rsp.StatusCode != http.StatusOK {
		return c.fail(method, rsp.StatusCode, fmt.Sprintf("Respond status code: %d", rsp.StatusCode), map[string]interface{}{
			"method": method,
		})
	}
	if len(rsp.Body) == 0 {
		return c.fail(method, rsp.StatusCode, "Response is empty: ", map[string]interface{}{
			"method":  method,
			"content": "",
		})
	}
	return nil
}

func (c *Client) fail(method string, statusCode int, message string, context map[string]interface{}) error {
	c.logger.LogError(message, context)
	return &ResponseError{Method: method, StatusCode: statusCode, Message: message}
}

// decodeObject decodes a JSON object, keeping numbers as json.Number. It returns nil if body is
// not a JSON object.
func decodeObject(body []byte) map[string]interface{} {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var object map[string]interface{}
	if err := decoder.Decode(&object); err != nil {
		return nil
	}
	return object
}

// lookup walks nested objects along keys.
func lookup(object map[string]interface{}, keys ...string) (interface{}, bool) {
	var value interface{} = object
	for _, key := range keys {
		m, ok := value.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if value, ok = m[key]; !ok {
			return nil, false
		}
	}
	return value, true
}

// scalarString renders a decoded scalar as text: numbers keep their literal form, true becomes
// "1", and null, false, arrays and objects become "".
func scalarString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "1"
		}
	}
	return ""
}

// blank reports whether s counts as an absent value in StarLine payloads, which use "0" as well
// as "" for unset codes and ids.
func blank(s string) bool {
	return s == "" || s == "0"
}

// stringField returns the value at keys if, and only if, it is a JSON string.
func stringField(object map[string]interface{}, keys ...string) (string, bool) {
	value, ok := lookup(object, keys...)
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}
