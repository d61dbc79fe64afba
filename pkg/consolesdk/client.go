package consolesdk

import (
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Client is a client for the console backend. The session cookie the sign-in
// endpoint sets is kept in a cookie jar and sent automatically on every
// subsequent request, mirroring a browser.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a console client with its own cookie jar.
func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
	}, nil
}

// ClearCookies drops every cookie the client holds, including the session
// cookie. Used on sign-out and after credential changes.
func (c *Client) ClearCookies() error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	c.HTTPClient.Jar = jar
	return nil
}
