//go:build windows

package sysenv

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const systemEnvKey = `SYSTEM\CurrentControlSet\Control\Session Manager\Environment`

const (
	hwndBroadcast   = 0xFFFF
	wmSettingChange = 0x001A
	smtoAbortIfHung = 0x0002
)

var (
	moduser32              = windows.NewLazySystemDLL("user32.dll")
	procSendMessageTimeout = moduser32.NewProc("SendMessageTimeoutW")
)

// registryInstaller persists variables in the machine-wide environment
// registry key. Requires elevation.
type registryInstaller struct{}

func newPlatformInstaller() Installer {
	return &registryInstaller{}
}

func (r *registryInstaller) IsAvailable() bool {
	return true
}

func (r *registryInstaller) IsPrivileged() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}

// Install writes each variable as REG_EXPAND_SZ; empty values delete the
// registry value instead. Running processes are notified via a
// WM_SETTINGCHANGE broadcast so new shells pick up the change.
func (r *registryInstaller) Install(vars map[string]string) error {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, systemEnvKey, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open system environment key: %w", err)
	}
	defer key.Close()

	for name, value := range vars {
		if value == "" {
			if err := key.DeleteValue(name); err != nil && !errors.Is(err, registry.ErrNotExist) {
				return fmt.Errorf("failed to delete %s: %w", name, err)
			}
			continue
		}
		if err := key.SetExpandStringValue(name, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", name, err)
		}
	}

	broadcastSettingChange()
	return nil
}

func broadcastSettingChange() {
	param, err := windows.UTF16PtrFromString("Environment")
	if err != nil {
		return
	}
	// Best effort: a hung window must not block the install.
	procSendMessageTimeout.Call(
		uintptr(hwndBroadcast),
		uintptr(wmSettingChange),
		0,
		uintptr(unsafe.Pointer(param)),
		uintptr(smtoAbortIfHung),
		1000,
		0,
	)
}
