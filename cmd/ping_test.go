package cmd

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

func TestPingCommandJSONOutput(t *testing.T) {
	setupTestEnv(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	addProfile(t, "local", "-u", server.URL, "-m", "test-model", "-k", "sk-x")

	output, err := executeCommand(t, "ping", "local", "-j")
	if err != nil {
		t.Fatalf("ping failed: %v", err)
	}
	output = strings.TrimSpace(output)

	if !gjson.Valid(output) {
		t.Fatalf("Expected JSON output, got:\n%s", output)
	}
	if got := gjson.Get(output, "status").String(); got != "success" {
		t.Errorf("status = %q", got)
	}
	if !gjson.Get(output, "success").Bool() {
		t.Error("success = false")
	}
	if gjson.Get(output, "statusCode").Int() != 200 {
		t.Errorf("statusCode = %d", gjson.Get(output, "statusCode").Int())
	}
}

func TestPingCommandUnknownProfile(t *testing.T) {
	setupTestEnv(t)

	_, err := executeCommand(t, "ping", "ghost", "-j")
	if err == nil {
		t.Fatal("Expected ping of an unknown profile to fail")
	}
}

func TestPingCommandNoActiveProfile(t *testing.T) {
	setupTestEnv(t)

	_, err := executeCommand(t, "ping", "-j")
	if err == nil || !strings.Contains(err.Error(), "no active profile") {
		t.Fatalf("Expected the no-active-profile error, got: %v", err)
	}
}
