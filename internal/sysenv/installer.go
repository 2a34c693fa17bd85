// Package sysenv writes environment variables into the platform's persistent
// system-wide store. The concrete writer is chosen by build tags; callers
// only see the Installer interface.
package sysenv

// Installer is the narrow capability the activation service consumes.
type Installer interface {
	// IsAvailable reports whether this platform has a persistent store.
	IsAvailable() bool
	// IsPrivileged reports whether the process can write to it.
	IsPrivileged() bool
	// Install writes the variables. Empty values remove the variable
	// instead of writing an empty string.
	Install(vars map[string]string) error
}

// New returns the installer for the current platform.
func New() Installer {
	return newPlatformInstaller()
}
