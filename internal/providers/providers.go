// Package providers is the single vendor-detection table shared by the
// environment exporter and the connectivity probe. Detection is an ordered,
// case-insensitive substring match against the profile's base URL; URLs that
// match nothing get an OpenAI-compatible fallback.
package providers

import "strings"

// AuthScheme selects how an API key is attached to a probe request.
type AuthScheme int

const (
	// AuthBearer sends the key as "Authorization: Bearer <key>".
	AuthBearer AuthScheme = iota
	// AuthAPIKey sends the key as "x-api-key" plus an "anthropic-version"
	// header.
	AuthAPIKey
)

// Provider describes one known endpoint family.
type Provider struct {
	// Name identifies the provider (e.g. "anthropic").
	Name string
	// Marker is the lowercase substring that identifies the provider in a
	// base URL. Empty for the fallback.
	Marker string
	// ChatPath is the chat endpoint path appended to the base URL.
	ChatPath string
	// Scheme is the auth header style for probe requests.
	Scheme AuthScheme
	// Canonical marks the vendor that owns the ANTHROPIC_* variable
	// namespace; the exporter routes keys for canonical URLs to the
	// auth-token variable.
	Canonical bool
}

// registry holds the known providers in matching priority order.
var registry []Provider

// fallback is used for URLs that match no registered provider.
var fallback = Provider{
	Name:     "openai-compatible",
	ChatPath: "/v1/chat/completions",
	Scheme:   AuthBearer,
}

// Register appends a provider to the detection table. Registration order is
// matching priority.
func Register(p Provider) {
	registry = append(registry, p)
}

// Detect returns the provider whose marker appears in the base URL, or the
// OpenAI-compatible fallback.
func Detect(baseURL string) Provider {
	lowered := strings.ToLower(baseURL)
	for _, p := range registry {
		if p.Marker != "" && strings.Contains(lowered, p.Marker) {
			return p
		}
	}
	return fallback
}

// List returns the names of all registered providers plus the fallback.
func List() []string {
	names := make([]string, 0, len(registry)+1)
	for _, p := range registry {
		names = append(names, p.Name)
	}
	return append(names, fallback.Name)
}

func init() {
	Register(Provider{
		Name:      "anthropic",
		Marker:    "anthropic",
		ChatPath:  "/v1/messages",
		Scheme:    AuthAPIKey,
		Canonical: true,
	})
	Register(Provider{
		Name:     "siliconflow",
		Marker:   "siliconflow",
		ChatPath: "/v1/chat/completions",
		Scheme:   AuthBearer,
	})
}
