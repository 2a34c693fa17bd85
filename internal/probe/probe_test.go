package probe

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"modelmgr/config"
)

// capture records everything the server saw about the probe request.
type capture struct {
	path    string
	headers http.Header
	body    string
}

// newCaptureServer returns a test server answering with the given status and
// a pointer to the last captured request.
func newCaptureServer(t *testing.T, status int, respBody string) (*httptest.Server, *capture) {
	t.Helper()
	rec := &capture{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec.path = r.URL.Path
		rec.headers = r.Header.Clone()
		rec.body = string(body)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}))
	t.Cleanup(server.Close)
	return server, rec
}

func TestProbeSuccess(t *testing.T) {
	server, rec := newCaptureServer(t, http.StatusOK, `{"choices":[]}`)

	result := New().Test(config.Profile{
		Name:    "p",
		BaseURL: server.URL,
		Model:   "glm-4",
		APIKey:  "sk-test",
	})

	require.Equal(t, StatusSuccess, result.Status)
	assert.True(t, result.Success)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.GreaterOrEqual(t, result.ElapsedMs, int64(0))

	// Unknown hosts use the OpenAI-compatible contract.
	assert.Equal(t, "/v1/chat/completions", rec.path)
	assert.Equal(t, "Bearer sk-test", rec.headers.Get("Authorization"))
	assert.Empty(t, rec.headers.Get("x-api-key"))
	assert.Equal(t, "application/json", rec.headers.Get("Content-Type"))
	assert.Equal(t, "Claude-Code-Model-Manager/1.0.0", rec.headers.Get("User-Agent"))

	assert.Equal(t, "glm-4", gjson.Get(rec.body, "model").String())
	assert.Equal(t, int64(10), gjson.Get(rec.body, "max_tokens").Int())
	assert.Equal(t, "user", gjson.Get(rec.body, "messages.0.role").String())
	assert.Contains(t, gjson.Get(rec.body, "messages.0.content").String(), "connection test")
}

func TestProbeAnthropicContract(t *testing.T) {
	server, rec := newCaptureServer(t, http.StatusOK, `{}`)

	// Putting the vendor marker in the path makes the test server an
	// anthropic-style endpoint.
	result := New().Test(config.Profile{
		Name:    "p",
		BaseURL: server.URL + "/anthropic",
		Model:   "claude-3-opus",
		APIKey:  "sk-ant-test",
	})

	require.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, "/anthropic/v1/messages", rec.path)
	assert.Equal(t, "sk-ant-test", rec.headers.Get("x-api-key"))
	assert.Equal(t, "2023-06-01", rec.headers.Get("anthropic-version"))
	assert.Empty(t, rec.headers.Get("Authorization"))
}

func TestProbeNoKeySendsNoAuthHeaders(t *testing.T) {
	server, rec := newCaptureServer(t, http.StatusOK, `{}`)

	result := New().Test(config.Profile{
		Name:    "p",
		BaseURL: server.URL,
		Model:   "m",
	})

	require.Equal(t, StatusSuccess, result.Status)
	assert.Empty(t, rec.headers.Get("Authorization"))
	assert.Empty(t, rec.headers.Get("x-api-key"))
	assert.Empty(t, rec.headers.Get("anthropic-version"))
}

func TestProbeTrailingSlashJoin(t *testing.T) {
	server, rec := newCaptureServer(t, http.StatusOK, `{}`)

	New().Test(config.Profile{
		Name:    "p",
		BaseURL: server.URL + "/",
		Model:   "m",
	})

	assert.Equal(t, "/v1/chat/completions", rec.path)
}

func TestProbeAuthFailure(t *testing.T) {
	server, _ := newCaptureServer(t, http.StatusUnauthorized, `{"error":"bad key"}`)

	result := New().Test(config.Profile{
		Name:    "p",
		BaseURL: server.URL,
		Model:   "m",
		APIKey:  "sk-wrong",
	})

	require.Equal(t, StatusAuthFailure, result.Status)
	assert.False(t, result.Success)
	assert.Equal(t, http.StatusUnauthorized, result.StatusCode)
	assert.Contains(t, result.Message, "API key")
}

func TestProbeNotFound(t *testing.T) {
	server, _ := newCaptureServer(t, http.StatusNotFound, ``)

	result := New().Test(config.Profile{
		Name:    "p",
		BaseURL: server.URL,
		Model:   "no-such-model",
	})

	require.Equal(t, StatusNotFound, result.Status)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
}

func TestProbeAPIErrorKeepsBody(t *testing.T) {
	server, _ := newCaptureServer(t, http.StatusInternalServerError, `{"error":{"message":"overloaded"}}`)

	result := New().Test(config.Profile{
		Name:    "p",
		BaseURL: server.URL,
		Model:   "m",
	})

	require.Equal(t, StatusAPIError, result.Status)
	assert.Equal(t, http.StatusInternalServerError, result.StatusCode)
	assert.Contains(t, result.Body, "overloaded")
	assert.Contains(t, result.Message, "500")
}

func TestProbeAPIErrorBodyIsCapped(t *testing.T) {
	server, _ := newCaptureServer(t, http.StatusBadGateway, strings.Repeat("x", 64<<10))

	result := New().Test(config.Profile{
		Name:    "p",
		BaseURL: server.URL,
		Model:   "m",
	})

	require.Equal(t, StatusAPIError, result.Status)
	assert.LessOrEqual(t, len(result.Body), 4<<10)
}

func TestProbeTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	result := New(WithTimeout(50 * time.Millisecond)).Test(config.Profile{
		Name:    "p",
		BaseURL: server.URL,
		Model:   "m",
	})

	require.Equal(t, StatusTimeout, result.Status)
	assert.Contains(t, result.Message, "timed out")
}

func TestProbeConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close() // nothing listens here anymore

	result := New().Test(config.Profile{
		Name:    "p",
		BaseURL: url,
		Model:   "m",
	})

	require.Equal(t, StatusConnectionError, result.Status)
	assert.Contains(t, result.Message, "base URL")
}

func TestProbeInvalidProfile(t *testing.T) {
	tests := []struct {
		name    string
		profile config.Profile
	}{
		{"no base url", config.Profile{Name: "p", Model: "m"}},
		{"no model", config.Profile{Name: "p", BaseURL: "https://api.example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New().Test(tt.profile)
			assert.Equal(t, StatusInvalidProfile, result.Status)
			assert.False(t, result.Success)
			assert.Zero(t, result.StatusCode)
		})
	}
}
