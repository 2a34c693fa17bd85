package providers

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		provider string
	}{
		{"anthropic official", "https://api.anthropic.com", "anthropic"},
		{"anthropic mixed case", "https://API.Anthropic.COM", "anthropic"},
		{"anthropic in path", "https://gw.example.com/anthropic/proxy", "anthropic"},
		{"siliconflow", "https://api.siliconflow.cn", "siliconflow"},
		{"siliconflow mixed case", "https://API.SILICONFLOW.cn/v1", "siliconflow"},
		{"unknown host", "https://llm.example.com", "openai-compatible"},
		{"empty url", "", "openai-compatible"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.baseURL)
			if got.Name != tt.provider {
				t.Errorf("Detect(%q) = %q, want %q", tt.baseURL, got.Name, tt.provider)
			}
		})
	}
}

func TestDetectAnthropicWinsOverSiliconflow(t *testing.T) {
	// Registration order is matching priority: a URL mentioning both markers
	// resolves to the first-registered provider.
	got := Detect("https://anthropic.siliconflow.example.com")
	if got.Name != "anthropic" {
		t.Errorf("Expected anthropic to win by priority, got %q", got.Name)
	}
}

func TestProviderContracts(t *testing.T) {
	anthropic := Detect("https://api.anthropic.com")
	if anthropic.ChatPath != "/v1/messages" {
		t.Errorf("anthropic chat path = %q", anthropic.ChatPath)
	}
	if anthropic.Scheme != AuthAPIKey {
		t.Error("anthropic must use the x-api-key scheme")
	}
	if !anthropic.Canonical {
		t.Error("anthropic must be the canonical vendor")
	}

	for _, url := range []string{"https://api.siliconflow.cn", "https://other.example.com"} {
		p := Detect(url)
		if p.ChatPath != "/v1/chat/completions" {
			t.Errorf("%s chat path = %q", p.Name, p.ChatPath)
		}
		if p.Scheme != AuthBearer {
			t.Errorf("%s must use bearer auth", p.Name)
		}
		if p.Canonical {
			t.Errorf("%s must not be canonical", p.Name)
		}
	}
}

func TestListIncludesFallback(t *testing.T) {
	names := List()
	if len(names) < 3 {
		t.Fatalf("Expected at least 3 providers, got %v", names)
	}
	if names[len(names)-1] != "openai-compatible" {
		t.Errorf("Expected fallback listed last, got %v", names)
	}
}
