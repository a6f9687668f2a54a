package client

import (
	"net/http"
	"net/url"
	"time"

	"github.com/karthik-H/httpcat/internal/logging"
)

const defaultUserAgent = "httpcat/1.0"

type Config struct {
	Timeout   time.Duration
	KATimeout time.Duration
	ProxyURL  string
	UserAgent string
	Headers   map[string]string
}

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client wraps *http.Client with the session-wide defaults (user
// agent, extra headers) applied on every request. Transparent
// compression is disabled so that response bodies arrive exactly as
// the server sent them; Range-based resumption is meaningless over a
// recompressed stream.
type Client struct {
	client *http.Client
	config Config
}

func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.KATimeout == 0 {
		cfg.KATimeout = 60 * time.Second
	}
	transport := &http.Transport{
		IdleConnTimeout:     cfg.KATimeout,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		DisableCompression:  true,
	}
	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err == nil {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}
	return &Client{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		config: cfg,
	}
}

func (c *Client) SetHeader(key, value string) {
	if c.config.Headers == nil {
		c.config.Headers = make(map[string]string)
	}
	c.config.Headers[key] = value
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		if c.config.UserAgent != "" {
			req.Header.Set("User-Agent", c.config.UserAgent)
		} else {
			req.Header.Set("User-Agent", defaultUserAgent)
		}
	}
	for k, v := range c.config.Headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	log := logging.GetLogger("client")
	log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Msg("sending request")
	return c.client.Do(req)
}
