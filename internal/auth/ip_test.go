package auth

import "testing"

func TestNormalizeIP(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain ipv4", "203.0.113.5", "203.0.113.5"},
		{"mapped ipv4", "::ffff:203.0.113.5", "203.0.113.5"},
		{"ipv6 loopback", "::1", "127.0.0.1"},
		{"localhost", "localhost", "127.0.0.1"},
		{"ipv4 loopback", "127.0.0.1", "127.0.0.1"},
		{"mapped loopback", "::ffff:127.0.0.1", "127.0.0.1"},
		{"surrounding whitespace", "  203.0.113.5 ", "203.0.113.5"},
		{"real ipv6 untouched", "2001:db8::1", "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeIP(tt.in); got != tt.want {
				t.Errorf("NormalizeIP(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIPMatch(t *testing.T) {
	tests := []struct {
		name       string
		clientIP   string
		assignedIP string
		want       bool
	}{
		{"exact match", "203.0.113.5", "203.0.113.5", true},
		{"mapped client matches plain assignment", "::ffff:203.0.113.5", "203.0.113.5", true},
		{"loopback forms match", "::1", "127.0.0.1", true},
		{"different addresses", "203.0.113.5", "198.51.100.7", false},
		{"empty client", "", "203.0.113.5", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IPMatch(tt.clientIP, tt.assignedIP); got != tt.want {
				t.Errorf("IPMatch(%q, %q) = %v, want %v", tt.clientIP, tt.assignedIP, got, tt.want)
			}
		})
	}
}
