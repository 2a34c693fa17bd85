package activation

import "os"

// EnvironmentSink applies variable changes to an environment. Abstracting
// the process environment keeps the service testable without mutating
// global state.
type EnvironmentSink interface {
	Set(key, value string) error
	Unset(key string) error
}

type processEnv struct{}

func (processEnv) Set(key, value string) error { return os.Setenv(key, value) }
func (processEnv) Unset(key string) error      { return os.Unsetenv(key) }

// ProcessEnv returns a sink backed by the current process environment.
func ProcessEnv() EnvironmentSink {
	return processEnv{}
}
