/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package schema_test

import (
	"errors"
	"testing"

	"bennypowers.dev/tokencraft/schema"
)

func TestVersion_String(t *testing.T) {
	tests := []struct {
		version  schema.Version
		expected string
	}{
		{schema.Unknown, "unknown"},
		{schema.V2025_10, "2025.10"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.version.String(); got != tt.expected {
				t.Errorf("Version.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected schema.Version
		wantErr  bool
	}{
		{"2025.10", schema.V2025_10, false},
		{"v2025.10", schema.V2025_10, false},
		{"v2025_10", schema.V2025_10, false},
		{"1.0", schema.Unknown, true},
		{"", schema.Unknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := schema.FromString(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromString(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, schema.ErrUnknownVersion) {
				t.Errorf("expected ErrUnknownVersion, got %v", err)
			}
			if got != tt.expected {
				t.Errorf("FromString(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDetectVersion(t *testing.T) {
	tests := []struct {
		name     string
		data     map[string]any
		config   *schema.DetectionConfig
		expected schema.Version
		wantErr  bool
	}{
		{
			name:     "version field",
			data:     map[string]any{"version": "2025.10"},
			expected: schema.V2025_10,
		},
		{
			name:     "schema url",
			data:     map[string]any{"$schema": "https://www.designtokens.org/schemas/2025.10/resolver.json"},
			expected: schema.V2025_10,
		},
		{
			name:     "config default",
			data:     map[string]any{},
			config:   &schema.DetectionConfig{DefaultVersion: schema.V2025_10},
			expected: schema.V2025_10,
		},
		{
			name:     "nothing declared",
			data:     map[string]any{},
			expected: schema.Unknown,
		},
		{
			name:    "unsupported version",
			data:    map[string]any{"version": "0.1"},
			wantErr: true,
		},
		{
			name:    "non-string version",
			data:    map[string]any{"version": 2025.1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := schema.DetectVersion(tt.data, tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DetectVersion() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("DetectVersion() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestVersion_Supported(t *testing.T) {
	if !schema.V2025_10.Supported() {
		t.Error("expected 2025.10 to be supported")
	}
	if schema.Unknown.Supported() {
		t.Error("expected Unknown to be unsupported")
	}
}
