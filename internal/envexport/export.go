// Package envexport derives the environment variables a Claude Code process
// reads from an endpoint profile.
package envexport

import (
	"modelmgr/config"
	"modelmgr/internal/providers"
)

// Exported variable names.
const (
	VarBaseURL   = "ANTHROPIC_BASE_URL"
	VarModel     = "ANTHROPIC_MODEL"
	VarAuthToken = "ANTHROPIC_AUTH_TOKEN"
	VarAPIKey    = "ANTHROPIC_API_KEY"
)

// ConflictVars is the pair of mutually exclusive auth variables. At most one
// of them may be non-empty in any exported mapping; activation removes both
// from the environment when the mapping mentions neither.
var ConflictVars = []string{VarAuthToken, VarAPIKey}

// Order lists the exported variable names in display order for shell output.
var Order = []string{VarBaseURL, VarModel, VarAuthToken, VarAPIKey}

// Export turns a profile into environment variable assignments. A nil
// profile exports nothing.
//
// The base URL and model are always exported. A non-empty API key lands in
// exactly one of the two auth variables: URLs owned by the canonical vendor
// use the auth-token variable, everything else the api-key variable. The
// sibling variable is exported as an explicit empty string so a consumer
// applying the mapping overwrites any stale value from a previous profile.
func Export(p *config.Profile) map[string]string {
	if p == nil {
		return map[string]string{}
	}

	vars := map[string]string{
		VarBaseURL: p.BaseURL,
		VarModel:   p.Model,
	}
	if p.APIKey == "" {
		return vars
	}

	if providers.Detect(p.BaseURL).Canonical {
		vars[VarAuthToken] = p.APIKey
		vars[VarAPIKey] = ""
	} else {
		vars[VarAPIKey] = p.APIKey
		vars[VarAuthToken] = ""
	}
	return vars
}
