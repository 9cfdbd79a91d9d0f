package gtlang

import "testing"

func TestFullVersion(t *testing.T) {
	version, commit := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = version, commit })

	Version = "1.2.3"
	tests := []struct {
		commit string
		want   string
	}{
		{"unknown", "1.2.3"},
		{"", "1.2.3"},
		{"1a2b3c4d5e6f", "1.2.3+1a2b3c4"},
		{"abc", "1.2.3+abc"},
	}
	for _, tt := range tests {
		GitCommit = tt.commit
		if got := FullVersion(); got != tt.want {
			t.Errorf("FullVersion() with commit %q = %q, want %q", tt.commit, got, tt.want)
		}
	}
}

func TestUserAgent(t *testing.T) {
	if got, want := UserAgent(), "gtlang/"+Version; got != want {
		t.Errorf("UserAgent() = %q, want %q", got, want)
	}
}
