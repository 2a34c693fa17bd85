// Package activation orchestrates switching the active profile: marking it
// in the store, deriving its environment variables, applying them to an
// environment sink, and optionally pushing them into the system-wide store.
package activation

import (
	"fmt"
	"sort"
	"strings"

	"modelmgr/config"
	"modelmgr/internal/envexport"
	"modelmgr/internal/sysenv"
)

// StepStatus classifies the outcome of one activation step.
type StepStatus string

const (
	StepApplied           StepStatus = "applied"
	StepSkipped           StepStatus = "skipped"
	StepFailed            StepStatus = "failed"
	StepPrivilegeRequired StepStatus = "privilege_required"
)

// StepResult is the outcome of one activation step.
type StepResult struct {
	Status  StepStatus
	Message string
}

// Result is the composite outcome of a switch. ProcessEnv and SystemEnv are
// reported separately so a caller can tell a fully persistent activation
// from a current-process-only one.
type Result struct {
	Success    bool
	Message    string
	ProcessEnv StepResult
	SystemEnv  StepResult
}

// Service wires the store, the environment sink, and the system installer.
type Service struct {
	store     *config.Store
	sink      EnvironmentSink
	installer sysenv.Installer
}

// Option configures a Service.
type Option func(*Service)

// WithSink replaces the process environment sink.
func WithSink(sink EnvironmentSink) Option {
	return func(s *Service) { s.sink = sink }
}

// WithInstaller replaces the system environment installer.
func WithInstaller(installer sysenv.Installer) Option {
	return func(s *Service) { s.installer = installer }
}

// NewService creates a Service that mutates the real process environment and
// uses the platform installer, unless overridden by options.
func NewService(store *config.Store, opts ...Option) *Service {
	s := &Service{
		store:     store,
		sink:      ProcessEnv(),
		installer: sysenv.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SwitchTo activates the named profile. It returns config.ErrNotFound
// (wrapped) when the name is unknown; the store is left unchanged in that
// case. Overall success tracks the process-environment step; the system
// step is informational and reported in the result.
func (s *Service) SwitchTo(name string, pushSystemEnv bool) (*Result, error) {
	if err := s.store.SetActive(name); err != nil {
		return nil, err
	}

	active, _ := s.store.Active()
	vars := envexport.Export(&active)

	res := &Result{
		ProcessEnv: s.applyProcessEnv(vars),
		SystemEnv:  StepResult{Status: StepSkipped, Message: "system environment not requested"},
	}
	if pushSystemEnv {
		res.SystemEnv = s.installSystemEnv(vars)
	}

	res.Success = res.ProcessEnv.Status == StepApplied
	res.Message = summarize(name, res)
	return res, nil
}

// applyProcessEnv pushes the mapping into the sink. Conflict variables the
// exporter didn't mention are removed first, so a keyless profile never
// inherits auth values from a previous activation. Values exported as empty
// strings are applied as empty.
func (s *Service) applyProcessEnv(vars map[string]string) StepResult {
	for _, name := range envexport.ConflictVars {
		if _, ok := vars[name]; ok {
			continue
		}
		if err := s.sink.Unset(name); err != nil {
			return StepResult{Status: StepFailed, Message: fmt.Sprintf("failed to clear %s: %v", name, err)}
		}
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := s.sink.Set(k, vars[k]); err != nil {
			return StepResult{Status: StepFailed, Message: fmt.Sprintf("failed to set %s: %v", k, err)}
		}
	}

	return StepResult{
		Status:  StepApplied,
		Message: fmt.Sprintf("%d variables applied to the current process", len(vars)),
	}
}

// installSystemEnv asks the platform installer to persist the mapping. A
// missing privilege is reported, not treated as an error; the caller decides
// whether to elevate and retry.
func (s *Service) installSystemEnv(vars map[string]string) StepResult {
	if s.installer == nil || !s.installer.IsAvailable() {
		return StepResult{Status: StepSkipped, Message: "no system environment installer on this platform"}
	}
	if !s.installer.IsPrivileged() {
		return StepResult{
			Status:  StepPrivilegeRequired,
			Message: "elevated privileges are required to install system environment variables",
		}
	}
	if err := s.installer.Install(vars); err != nil {
		return StepResult{Status: StepFailed, Message: fmt.Sprintf("system environment install failed: %v", err)}
	}
	return StepResult{Status: StepApplied, Message: "system environment variables installed"}
}

func summarize(name string, res *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "switched to profile %q", name)
	fmt.Fprintf(&b, "\n- %s", res.ProcessEnv.Message)
	if res.SystemEnv.Status != StepSkipped {
		fmt.Fprintf(&b, "\n- %s", res.SystemEnv.Message)
	}
	return b.String()
}
