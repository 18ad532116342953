package platform

import (
	"errors"
	"testing"

	"github.com/incatools/odkctl/internal/testutil/testlog"
)

func TestFromHost(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		goos   string
		goarch string
		want   ID
		ok     bool
	}{
		{"linux", "amd64", LinuxX86, true},
		{"darwin", "amd64", MacX86, true},
		{"darwin", "arm64", MacARM, true},
		{"linux", "arm64", "", false},
		{"windows", "amd64", "", false},
		{"freebsd", "amd64", "", false},
		{"linux", "386", "", false},
	}
	for _, tc := range cases {
		got, err := FromHost(tc.goos, tc.goarch)
		if tc.ok {
			if err != nil {
				t.Fatalf("%s/%s: unexpected error %v", tc.goos, tc.goarch, err)
			}
			if got != tc.want {
				t.Fatalf("%s/%s: got %q want %q", tc.goos, tc.goarch, got, tc.want)
			}
			continue
		}
		if !errors.Is(err, ErrUnsupportedPlatform) {
			t.Fatalf("%s/%s: expected ErrUnsupportedPlatform, got %v", tc.goos, tc.goarch, err)
		}
	}
}

func TestAllCoversEveryConstant(t *testing.T) {
	testlog.Start(t)
	all := All()
	if len(all) != 3 {
		t.Fatalf("expected 3 supported platforms, got %d", len(all))
	}
	seen := make(map[ID]struct{}, len(all))
	for _, id := range all {
		seen[id] = struct{}{}
	}
	for _, id := range []ID{LinuxX86, MacX86, MacARM} {
		if _, ok := seen[id]; !ok {
			t.Fatalf("All() missing %s", id)
		}
	}
}
