// Package platform maps the running host onto the closed set of platforms
// the tool catalog guarantees artifacts for.
package platform

import (
	"errors"
	"fmt"
	"runtime"
)

var ErrUnsupportedPlatform = errors.New("platform: unsupported host")

type ID string

const (
	LinuxX86 ID = "linux-x86_64"
	MacX86   ID = "macos-x86_64"
	MacARM   ID = "macos-arm64"
)

// All lists the supported platforms. The tool catalog must define an
// artifact for each of these for every entry.
func All() []ID {
	return []ID{LinuxX86, MacX86, MacARM}
}

// Resolve identifies the current host. Any combination outside the
// supported set is a hard failure; the catalog makes no promises there.
func Resolve() (ID, error) {
	return FromHost(runtime.GOOS, runtime.GOARCH)
}

// FromHost maps an os/arch pair onto a platform identifier.
func FromHost(goos string, goarch string) (ID, error) {
	switch {
	case goos == "linux" && goarch == "amd64":
		return LinuxX86, nil
	case goos == "darwin" && goarch == "amd64":
		return MacX86, nil
	case goos == "darwin" && goarch == "arm64":
		return MacARM, nil
	}
	return "", fmt.Errorf("%w: %s/%s", ErrUnsupportedPlatform, goos, goarch)
}
