package main

import (
	"testing"

	"github.com/1broseidon/snaptile/internal/config"
	"github.com/1broseidon/snaptile/internal/tiling"
)

func TestParsePoint(t *testing.T) {
	tests := []struct {
		x, y    string
		wantX   int
		wantY   int
		wantErr bool
	}{
		{"10", "20", 10, 20, false},
		{"-46", "80", -46, 80, false},
		{"ten", "20", 0, 0, true},
		{"10", "", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.x+","+tt.y, func(t *testing.T) {
			x, y, err := parsePoint(tt.x, tt.y)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePoint: %v", err)
			}
			if x != tt.wantX || y != tt.wantY {
				t.Fatalf("got (%d,%d), want (%d,%d)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestPreviewSize(t *testing.T) {
	surface := tiling.Rect{Width: 1920, Height: 1080}
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"explicit", 40, 10, 40, 10},
		{"height from aspect", 80, 0, 80, 22},
		{"minimum height", 4, 0, 4, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := previewSize(tt.width, tt.height, surface)
			if w != tt.wantW || h != tt.wantH {
				t.Fatalf("previewSize = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestFormatSource(t *testing.T) {
	tests := []struct {
		src  config.Source
		want string
	}{
		{config.Source{Kind: config.SourceFile, File: "/c.yaml", Line: 3, Column: 1}, "file:/c.yaml:3:1"},
		{config.Source{Kind: config.SourceFile, File: "/c.yaml"}, "file:/c.yaml"},
		{config.Source{Kind: config.SourceFile}, "file"},
		{config.Source{Kind: config.SourceDefault, Name: "snap_margin"}, "default:snap_margin"},
		{config.Source{Kind: config.SourceDefault}, "default"},
	}
	for _, tt := range tests {
		if got := formatSource(tt.src); got != tt.want {
			t.Errorf("formatSource(%+v) = %q, want %q", tt.src, got, tt.want)
		}
	}
}
