package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date
	t.Cleanup(func() {
		Version, Commit, Date = origVersion, origCommit, origDate
	})

	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		want    []string
	}{
		{
			name:    "development build",
			version: "dev",
			commit:  "unknown",
			date:    "unknown",
			want:    []string{"pixelize version dev ("},
		},
		{
			name:    "release build",
			version: "1.2.0",
			commit:  "0123456789abcdef",
			date:    "2025-01-02T03:04:05Z",
			want:    []string{"pixelize version 1.2.0", "commit: 01234567,", "built: 2025-01-02T03:04:05Z"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit, Date = tt.version, tt.commit, tt.date

			got := String()
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("String() = %q, missing %q", got, want)
				}
			}
			if Short() != tt.version {
				t.Errorf("Short() = %q, want %q", Short(), tt.version)
			}
		})
	}
}

func TestGetInfo(t *testing.T) {
	info := GetInfo()
	if info.GoVersion == "" || !strings.Contains(info.Platform, "/") {
		t.Errorf("GetInfo() = %+v, want Go version and os/arch platform", info)
	}
}

func TestShortCommit(t *testing.T) {
	tests := []struct {
		commit string
		want   string
	}{
		{"0123456789abcdef", "01234567"},
		{"abc", "abc"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := (Info{Commit: tt.commit}).ShortCommit(); got != tt.want {
			t.Errorf("ShortCommit(%q) = %q, want %q", tt.commit, got, tt.want)
		}
	}

	if (Info{Commit: "abc", Date: unknown}).Release() {
		t.Error("build without a date reported as release")
	}
}

func TestUserAgent(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })
	Version = "1.2.0"

	got := UserAgent()
	if !strings.HasPrefix(got, "pixelize/1.2.0 (") || !strings.HasSuffix(got, ")") {
		t.Errorf("UserAgent() = %q", got)
	}
	if GetInfo().Name != Name {
		t.Errorf("GetInfo().Name = %q, want %q", GetInfo().Name, Name)
	}
}
