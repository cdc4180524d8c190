package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestArgsReorder(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "flags after text are moved first",
			args:     []string{"what is a cat", "-instruction", "retrieve"},
			expected: []string{"-instruction", "retrieve", "what is a cat"},
		},
		{
			name:     "flags first returns unchanged",
			args:     []string{"-instruction", "retrieve", "what is a cat"},
			expected: []string{"-instruction", "retrieve", "what is a cat"},
		},
		{
			name:     "text only returns unchanged",
			args:     []string{"what is a cat"},
			expected: []string{"what is a cat"},
		},
		{
			name:     "empty args returns unchanged",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "multiple positionals then flags",
			args:     []string{"one", "two", "-output", "json"},
			expected: []string{"-output", "json", "one", "two"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := argsReorder(tt.args)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("argsReorder() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBuildText(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"single word", []string{"cats"}, "cats"},
		{"multiple words", []string{"what", "is", "a", "cat"}, "what is a cat"},
		{"single quoted phrase", []string{"what is a cat"}, "what is a cat"},
		{"empty", []string{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildText(tt.args); got != tt.expected {
				t.Errorf("buildText() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	if _, err := parseOutputFormat("yaml"); err == nil {
		t.Error("unknown format should error")
	}
	if f, err := parseOutputFormat("json"); err != nil || f != "json" {
		t.Errorf("json format: got %q, %v", f, err)
	}
	if f, err := parseOutputFormat("text"); err != nil || f != "text" {
		t.Errorf("text format: got %q, %v", f, err)
	}
}

func TestLoadConfig_explicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `
server:
  port: 9100
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, resolved, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != path {
		t.Errorf("resolved path: got %q, want %q", resolved, path)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("port: got %d, want 9100", cfg.Server.Port)
	}
}
