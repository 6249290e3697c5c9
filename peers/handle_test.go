package peers

import "testing"

func TestNormalizeHandle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"@channelA", "channelA"},
		{"channelA", "channelA"},
		{"  @channelA  ", "channelA"},
		{"https://t.me/channelA", "channelA"},
		{"http://t.me/channelA/", "channelA"},
		{"t.me/channelA", "channelA"},
		{"telegram.me/channelA", "channelA"},
		{"+15551234567", "+15551234567"},
		{"-1001234", "-1001234"},
	}
	for _, tt := range tests {
		if got := normalizeHandle(tt.in); got != tt.want {
			t.Errorf("normalizeHandle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
