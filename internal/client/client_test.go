package client

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeaderArgs(t *testing.T) {
	got := ParseHeaderArgs([]string{
		"Authorization: Bearer token",
		"X-Spaced :  padded value ",
		"Accept:application/json",
		"no-colon-entry",
		": empty name",
	})

	assert.Equal(t, map[string]string{
		"Authorization": "Bearer token",
		"X-Spaced":      "padded value",
		"Accept":        "application/json",
	}, got)
}

func TestDoAppliesDefaults(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	defer server.Close()

	c := New(Config{
		UserAgent: "agent/2.0",
		Headers:   map[string]string{"X-Default": "yes"},
	})

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	resp, err := c.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "agent/2.0", got.Get("User-Agent"))
	assert.Equal(t, "yes", got.Get("X-Default"))
}

func TestDoDoesNotOverrideExplicitHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	defer server.Close()

	c := New(Config{
		UserAgent: "agent/2.0",
		Headers:   map[string]string{"X-Default": "yes"},
	})
	c.SetHeader("X-Extra", "added")

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "explicit/1.0")
	req.Header.Set("X-Default", "no")
	resp, err := c.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "explicit/1.0", got.Get("User-Agent"))
	assert.Equal(t, "no", got.Get("X-Default"))
	assert.Equal(t, "added", got.Get("X-Extra"))
}

func TestDoFallbackUserAgent(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	c := New(Config{Timeout: time.Second})

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	resp, err := c.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, defaultUserAgent, got)
}
