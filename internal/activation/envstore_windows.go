//go:build windows

package activation

import (
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/thoreinstein/aliasx/internal/errors"
)

const (
	hwndBroadcast    = 0xffff
	wmSettingChange  = 0x001A
	smtoAbortIfHung  = 0x0002
	broadcastTimeout = 5000
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSendMessageTimeoutW = user32.NewProc("SendMessageTimeoutW")
)

// RegistryStore is the EnvStore for HKCU\Environment.
type RegistryStore struct{}

// NewRegistryStore returns the user environment store.
func NewRegistryStore() (EnvStore, error) {
	return RegistryStore{}, nil
}

// Get implements EnvStore.
func (RegistryStore) Get(name string) (string, bool, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, "Environment", registry.QUERY_VALUE)
	if err != nil {
		return "", false, errors.Wrap(err, "opening HKCU\\Environment")
	}
	defer k.Close()

	v, _, err := k.GetStringValue(name)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "reading %s", name)
	}
	return v, true, nil
}

// Set implements EnvStore. Values containing %VAR% references are stored as
// REG_EXPAND_SZ so Windows expands them.
func (RegistryStore) Set(name, value string) error {
	k, err := registry.OpenKey(registry.CURRENT_USER, "Environment", registry.SET_VALUE)
	if err != nil {
		return errors.Wrap(err, "opening HKCU\\Environment")
	}
	defer k.Close()

	if strings.Contains(value, "%") {
		err = k.SetExpandStringValue(name, value)
	} else {
		err = k.SetStringValue(name, value)
	}
	return errors.Wrapf(err, "writing %s", name)
}

// Broadcast implements EnvStore by sending WM_SETTINGCHANGE.
func (RegistryStore) Broadcast() error {
	param, err := windows.UTF16PtrFromString("Environment")
	if err != nil {
		return errors.Wrap(err, "encoding broadcast parameter")
	}
	var result uintptr
	r, _, callErr := procSendMessageTimeoutW.Call(
		hwndBroadcast,
		wmSettingChange,
		0,
		uintptr(unsafe.Pointer(param)),
		smtoAbortIfHung,
		broadcastTimeout,
		uintptr(unsafe.Pointer(&result)),
	)
	if r == 0 {
		return errors.Wrap(callErr, "SendMessageTimeoutW")
	}
	return nil
}
