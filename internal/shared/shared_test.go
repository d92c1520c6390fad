package shared

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func TestGenerateID(t *testing.T) {
	t.Run("produces v7 uuids", func(t *testing.T) {
		id := GenerateID()
		parsed, err := uuid.Parse(id)
		if err != nil {
			t.Fatalf("expected parseable uuid, got %q: %v", id, err)
		}
		if parsed.Version() != 7 {
			t.Errorf("expected version 7, got %d", parsed.Version())
		}
	})

	t.Run("pairwise distinct", func(t *testing.T) {
		seen := make(map[string]struct{}, 1000)
		for range 1000 {
			id := GenerateID()
			if _, ok := seen[id]; ok {
				t.Fatalf("duplicate id generated: %s", id)
			}
			seen[id] = struct{}{}
		}
	})
}

func TestParseLogLevel(t *testing.T) {
	tc := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{" WARN ", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.InfoLevel},
		{"chatty", log.InfoLevel},
	}

	for _, tt := range tc {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLogLevel(tt.in); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLinks(t *testing.T) {
	tc := []struct {
		name   string
		origin string
		id     string
		share  string
		edit   string
	}{
		{
			name:   "plain origin",
			origin: "http://localhost:3000",
			id:     "abc123",
			share:  "http://localhost:3000/pastes/abc123",
			edit:   "http://localhost:3000/?pasteId=abc123",
		},
		{
			name:   "trailing slash",
			origin: "https://paste.example.com/",
			id:     "0190-ab",
			share:  "https://paste.example.com/pastes/0190-ab",
			edit:   "https://paste.example.com/?pasteId=0190-ab",
		},
		{
			name:   "escapes ids",
			origin: "http://h",
			id:     "a b",
			share:  "http://h/pastes/a%20b",
			edit:   "http://h/?pasteId=a+b",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShareURL(tt.origin, tt.id); got != tt.share {
				t.Errorf("ShareURL() = %v, want %v", got, tt.share)
			}
			if got := EditURL(tt.origin, tt.id); got != tt.edit {
				t.Errorf("EditURL() = %v, want %v", got, tt.edit)
			}
		})
	}
}

func TestBrowserCommand(t *testing.T) {
	orig := getRuntime
	t.Cleanup(func() { getRuntime = orig })

	for _, rt := range []string{"darwin", "linux", "windows"} {
		t.Run(rt, func(t *testing.T) {
			getRuntime = func() string { return rt }
			cmd, err := browserCommand("http://localhost/pastes/1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cmd == nil || len(cmd.Args) == 0 {
				t.Fatal("expected a command")
			}
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		getRuntime = func() string { return "plan9" }
		if _, err := browserCommand("http://localhost"); err == nil {
			t.Error("expected error for unsupported platform")
		}
	})
}

func TestParseLink(t *testing.T) {
	tc := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "bare id", in: "abc123", want: "abc123"},
		{name: "bare id with spaces", in: "  abc123\n", want: "abc123"},
		{name: "share link", in: "http://localhost:3000/pastes/abc123", want: "abc123"},
		{name: "escaped share link", in: "http://h/pastes/a%20b", want: "a b"},
		{name: "edit link", in: "http://localhost:3000/?pasteId=abc123", want: "abc123"},
		{name: "empty", in: " ", wantErr: true},
		{name: "unrelated url", in: "http://localhost:3000/other", wantErr: true},
		{name: "nested path", in: "http://h/pastes/a/b", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLink(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLink(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLink(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
