package version

import (
	"strings"
	"testing"
)

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{
			name: "unstamped",
			info: Info{Version: "dev", Commit: "unknown", Date: "unknown", GoVersion: "go1.25.1", Platform: "linux/amd64"},
			want: "swatch version dev (go1.25.1, linux/amd64)",
		},
		{
			name: "release",
			info: Info{Version: "1.2.0", Commit: "0123456789abcdef", Date: "2026-01-02T03:04:05Z", GoVersion: "go1.25.1", Platform: "darwin/arm64"},
			want: "swatch version 1.2.0 (commit: 01234567, built: 2026-01-02T03:04:05Z, go1.25.1, darwin/arm64)",
		},
		{
			name: "short commit",
			info: Info{Version: "1.2.0", Commit: "abc", Date: "2026-01-02", GoVersion: "go1.25.1", Platform: "linux/arm64"},
			want: "swatch version 1.2.0 (commit: abc, built: 2026-01-02, go1.25.1, linux/arm64)",
		},
		{
			name: "commit without date",
			info: Info{Version: "1.2.0", Commit: "abc", Date: "unknown", GoVersion: "go1.25.1", Platform: "linux/arm64"},
			want: "swatch version 1.2.0 (go1.25.1, linux/arm64)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetInfo(t *testing.T) {
	info := GetInfo()
	if info.Version != Version || info.GoVersion != GoVersion {
		t.Errorf("GetInfo() = %+v, want build variables", info)
	}
	if !strings.Contains(info.Platform, "/") {
		t.Errorf("Platform = %q, want os/arch", info.Platform)
	}
	if String() != info.String() {
		t.Errorf("String() = %q, want %q", String(), info.String())
	}
}
