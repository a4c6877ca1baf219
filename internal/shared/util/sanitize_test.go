package util

import "testing"

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: "resume.pdf", want: "resume.pdf"},
		{name: "spaces trimmed", in: "  resume.pdf  ", want: "resume.pdf"},
		{name: "slash replaced", in: "a/b.pdf", want: "a_b.pdf"},
		{name: "backslash replaced", in: `a\b.pdf`, want: "a_b.pdf"},
		{name: "traversal rejected", in: "../../etc/passwd", wantErr: true},
		{name: "empty rejected", in: "   ", wantErr: true},
		{name: "dots only rejected", in: ".", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeFileName(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
