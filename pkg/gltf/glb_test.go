package gltf

import (
	"encoding/binary"
	"errors"
	"testing"
)

// makeGLB assembles a GLB blob from a JSON chunk and optional BIN chunk.
func makeGLB(jsonChunk, binChunk []byte) []byte {
	total := glbHeaderSize + glbChunkSize + len(jsonChunk)
	if binChunk != nil {
		total += glbChunkSize + len(binChunk)
	}

	data := make([]byte, 0, total)
	var scratch [4]byte

	put := func(v uint32) {
		binary.LittleEndian.PutUint32(scratch[:], v)
		data = append(data, scratch[:]...)
	}

	put(glbMagic)
	put(2)
	put(uint32(total))

	put(uint32(len(jsonChunk)))
	put(glbChunkJSON)
	data = append(data, jsonChunk...)

	if binChunk != nil {
		put(uint32(len(binChunk)))
		put(glbChunkBIN)
		data = append(data, binChunk...)
	}
	return data
}

const minimalJSON = `{"asset":{"version":"2.0"},"buffers":[{"byteLength":4}]}`

func TestParseGLB(t *testing.T) {
	bin := []byte{1, 2, 3, 4}
	doc, err := ParseGLB(makeGLB([]byte(minimalJSON), bin))
	if err != nil {
		t.Fatalf("ParseGLB failed: %v", err)
	}

	if doc.Asset.Version != "2.0" {
		t.Errorf("Asset.Version = %q, want %q", doc.Asset.Version, "2.0")
	}
	if len(doc.Buffers) != 1 {
		t.Fatalf("buffer count = %d, want 1", len(doc.Buffers))
	}
	if got := doc.Buffers[0].Data; len(got) != 4 || got[0] != 1 {
		t.Errorf("buffer 0 data = %v, want BIN chunk bytes", got)
	}
}

func TestParseGLB_NoBINChunk(t *testing.T) {
	doc, err := ParseGLB(makeGLB([]byte(`{"asset":{"version":"2.0"}}`), nil))
	if err != nil {
		t.Fatalf("ParseGLB failed: %v", err)
	}
	if len(doc.Buffers) != 0 {
		t.Errorf("buffer count = %d, want 0", len(doc.Buffers))
	}
}

func TestParseGLB_Errors(t *testing.T) {
	valid := makeGLB([]byte(minimalJSON), nil)

	badMagic := append([]byte(nil), valid...)
	badMagic[0] = 'X'

	badVersion := append([]byte(nil), valid...)
	badVersion[4] = 1

	truncated := valid[:len(valid)-5]
	// Header still declares the full length.

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"bad magic", badMagic, ErrInvalidGLBMagic},
		{"bad version", badVersion, ErrUnsupportedGLBVersion},
		{"too short", []byte{0, 1, 2}, ErrTruncatedGLB},
		{"truncated chunk", truncated, ErrTruncatedGLB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGLB(tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsGLB(t *testing.T) {
	if !IsGLB(makeGLB([]byte(minimalJSON), nil)) {
		t.Error("IsGLB = false for valid GLB")
	}
	if IsGLB([]byte(`{"asset":{"version":"2.0"}}`)) {
		t.Error("IsGLB = true for JSON data")
	}
}
