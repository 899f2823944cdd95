package browser

import (
	"strings"
	"testing"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		goos    string
		url     string
		wantBin string
		wantErr bool
	}{
		{"darwin", "https://example.com", "open", false},
		{"linux", "http://example.com/x", "xdg-open", false},
		{"windows", "https://example.com", "rundll32", false},
		{"plan9", "https://example.com", "", true},
		{"linux", "file:///etc/passwd", "", true},
		{"linux", "javascript:alert(1)", "", true},
		{"linux", "https://", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.goos+" "+tc.url, func(t *testing.T) {
			cmd, err := command(tc.goos, tc.url)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("command(%q, %q) should fail", tc.goos, tc.url)
				}
				return
			}
			if err != nil {
				t.Fatalf("command() error: %v", err)
			}
			if !strings.HasSuffix(cmd.Path, tc.wantBin) && cmd.Args[0] != tc.wantBin {
				t.Errorf("command = %v, want %s", cmd.Args, tc.wantBin)
			}
			if cmd.Args[len(cmd.Args)-1] != tc.url {
				t.Errorf("last arg = %q, want %q", cmd.Args[len(cmd.Args)-1], tc.url)
			}
		})
	}
}

func TestTrailerSearchURL(t *testing.T) {
	tests := []struct {
		title string
		year  int
		want  string
	}{
		{"Dune", 2021, "https://www.youtube.com/results?search_query=Dune+2021+trailer"},
		{"Heat", 0, "https://www.youtube.com/results?search_query=Heat+trailer"},
		{"Tom & Jerry", 0, "https://www.youtube.com/results?search_query=Tom+%26+Jerry+trailer"},
	}
	for _, tc := range tests {
		if got := TrailerSearchURL(tc.title, tc.year); got != tc.want {
			t.Errorf("TrailerSearchURL(%q, %d) = %q, want %q", tc.title, tc.year, got, tc.want)
		}
	}
}
