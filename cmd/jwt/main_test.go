package main

import (
	"strings"
	"testing"
)

func TestReadLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "newline terminated", in: "token-text\nrest", want: "token-text\n"},
		{name: "eof without newline", in: "token-text", want: "token-text"},
		{name: "empty input", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readLine(strings.NewReader(tt.in))
			if err != nil {
				t.Fatalf("readLine failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("readLine = %q, want %q", got, tt.want)
			}
		})
	}
}
