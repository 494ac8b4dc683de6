package gltf

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveBuffers_DataURI(t *testing.T) {
	payload := []byte{1, 2, 3, 4}
	doc := &Document{Buffers: []Buffer{{
		URI:        "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(payload),
		ByteLength: 4,
	}}}

	if err := doc.ResolveBuffers("."); err != nil {
		t.Fatalf("ResolveBuffers failed: %v", err)
	}
	if got := doc.Buffers[0].Data; len(got) != 4 || got[3] != 4 {
		t.Errorf("resolved data = %v, want %v", got, payload)
	}
}

func TestResolveBuffers_File(t *testing.T) {
	dir := t.TempDir()
	payload := []byte{9, 8, 7}
	if err := os.WriteFile(filepath.Join(dir, "payload.bin"), payload, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	doc := &Document{Buffers: []Buffer{{URI: "payload.bin", ByteLength: 3}}}
	if err := doc.ResolveBuffers(dir); err != nil {
		t.Fatalf("ResolveBuffers failed: %v", err)
	}
	if got := doc.Buffers[0].Data; len(got) != 3 || got[0] != 9 {
		t.Errorf("resolved data = %v, want %v", got, payload)
	}
}

func TestResolveBuffers_Errors(t *testing.T) {
	tests := []struct {
		name string
		buf  Buffer
	}{
		{"no URI and no data", Buffer{ByteLength: 4}},
		{"missing file", Buffer{URI: "missing.bin", ByteLength: 4}},
		{"malformed data URI", Buffer{URI: "data:application/octet-stream", ByteLength: 4}},
		{"non-base64 data URI", Buffer{URI: "data:text/plain,hello", ByteLength: 4}},
		{"short payload", Buffer{URI: "data:application/octet-stream;base64,AQI=", ByteLength: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &Document{Buffers: []Buffer{tt.buf}}
			if err := doc.ResolveBuffers(t.TempDir()); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseFile_GLBDetection(t *testing.T) {
	dir := t.TempDir()

	// A .gltf file whose content is actually GLB still parses, and a
	// plain JSON document parses regardless of extension.
	glbPath := filepath.Join(dir, "model.glb")
	if err := os.WriteFile(glbPath, makeGLB([]byte(minimalJSON), []byte{0, 0, 0, 0}), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	jsonPath := filepath.Join(dir, "model.gltf")
	if err := os.WriteFile(jsonPath, []byte(`{"asset":{"version":"2.0"}}`), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	for _, path := range []string{glbPath, jsonPath} {
		doc, err := ParseFile(path)
		if err != nil {
			t.Errorf("ParseFile(%s) failed: %v", filepath.Base(path), err)
			continue
		}
		if doc.Asset.Version != "2.0" {
			t.Errorf("ParseFile(%s): version = %q", filepath.Base(path), doc.Asset.Version)
		}
	}
}
