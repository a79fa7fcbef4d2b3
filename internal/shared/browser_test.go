package shared

import (
	"errors"
	"testing"
)

func TestBrowserCommand(t *testing.T) {
	tc := []struct {
		goos string
		want string
	}{
		{goos: "darwin", want: "open"},
		{goos: "linux", want: "xdg-open"},
		{goos: "windows", want: "rundll32"},
	}

	for _, tt := range tc {
		t.Run(tt.goos, func(t *testing.T) {
			cmd, err := browserCommand(tt.goos, "http://127.0.0.1:5000")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cmd.Args[0] != tt.want {
				t.Errorf("expected %s, got %s", tt.want, cmd.Args[0])
			}
			if last := cmd.Args[len(cmd.Args)-1]; last != "http://127.0.0.1:5000" {
				t.Errorf("expected url as last argument, got %s", last)
			}
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		if _, err := browserCommand("plan9", "http://x"); !errors.Is(err, ErrNotImplemented) {
			t.Errorf("expected ErrNotImplemented, got %v", err)
		}
	})
}
