package library

import "testing"

func TestJoinMulti(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{name: "two", values: []string{"DJ One", "DJ Two"}, want: "DJ One\\␀DJ Two"},
		{name: "single element", values: []string{"Solo"}, want: "Solo"},
		{name: "empty", values: []string{}, want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := JoinMulti(tc.values); got != tc.want {
				t.Fatalf("JoinMulti(%q) = %q, want %q", tc.values, got, tc.want)
			}
		})
	}
}

func TestDelimiterBytes(t *testing.T) {
	if MultiDelimiter[0] != '\\' {
		t.Fatalf("delimiter must start with a backslash, got %q", MultiDelimiter)
	}
	if got := []rune(MultiDelimiter)[1]; got != '␀' {
		t.Fatalf("delimiter placeholder = %U, want U+2400", got)
	}
}
