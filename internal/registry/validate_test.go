package registry

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "already http",
			raw:  "http://example.com",
			want: "http://example.com",
		},
		{
			name: "already https",
			raw:  "https://example.com/path",
			want: "https://example.com/path",
		},
		{
			name: "bare hostname",
			raw:  "freecodecamp.org",
			want: "http://freecodecamp.org",
		},
		{
			name: "uppercase scheme",
			raw:  "HTTP://example.com",
			want: "HTTP://example.com",
		},
		{
			name: "other scheme gets prefixed",
			raw:  "ftp://example.com",
			want: "http://ftp://example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{
			name: "https with host",
			raw:  "https://example.com",
			want: true,
		},
		{
			name: "http with host and path",
			raw:  "http://www.example.com/some/path?q=1",
			want: true,
		},
		{
			name: "bare hostname normalized",
			raw:  "freecodecamp.org",
			want: true,
		},
		{
			name: "not a url",
			raw:  "not a url",
			want: false,
		},
		{
			name: "scheme without host",
			raw:  "http://",
			want: false,
		},
		{
			name: "ftp scheme",
			raw:  "ftp://example.com",
			want: false,
		},
		{
			name: "hostname without dot",
			raw:  "http://localhost",
			want: false,
		},
		{
			name: "hostname without dot and port",
			raw:  "http://localhost:8080",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.raw); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestHostname(t *testing.T) {
	tests := []struct {
		name       string
		normalized string
		want       string
	}{
		{
			name:       "plain host",
			normalized: "http://example.com/path",
			want:       "example.com",
		},
		{
			name:       "host with port",
			normalized: "https://example.com:8443",
			want:       "example.com",
		},
		{
			name:       "www host",
			normalized: "http://www.example.com",
			want:       "www.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hostname(tt.normalized); got != tt.want {
				t.Errorf("Hostname(%q) = %q, want %q", tt.normalized, got, tt.want)
			}
		})
	}
}
