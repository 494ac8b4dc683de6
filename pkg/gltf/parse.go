package gltf

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Parse decodes a glTF JSON document. Buffer payloads are left
// unresolved; call ResolveBuffers afterwards.
func Parse(data []byte) (*Document, error) {
	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return doc, nil
}

// ParseGLB decodes a GLB blob: the embedded JSON chunk plus the BIN chunk
// bound to buffer 0.
func ParseGLB(data []byte) (*Document, error) {
	jsonChunk, binChunk, err := glbChunks(data)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(jsonChunk)
	if err != nil {
		return nil, err
	}
	if binChunk != nil && len(doc.Buffers) > 0 && doc.Buffers[0].URI == "" {
		doc.Buffers[0].Data = binChunk
	}
	return doc, nil
}

// ParseFile loads a glTF document from disk. A .glb extension selects the
// binary container; anything else is treated as glTF JSON. External and
// data-URI buffers are resolved relative to the file's directory.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading glTF file: %w", err)
	}

	var doc *Document
	if strings.EqualFold(filepath.Ext(path), ".glb") || IsGLB(data) {
		doc, err = ParseGLB(data)
	} else {
		doc, err = Parse(data)
	}
	if err != nil {
		return nil, err
	}

	if err := doc.ResolveBuffers(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return doc, nil
}

const dataURIPrefix = "data:"

// ResolveBuffers materializes every buffer payload: base64 data URIs are
// decoded in place, file URIs are read relative to dir. Buffers already
// carrying data (the GLB BIN chunk) are left untouched.
func (d *Document) ResolveBuffers(dir string) error {
	for i := range d.Buffers {
		buf := &d.Buffers[i]
		if buf.Data != nil {
			continue
		}
		switch {
		case buf.URI == "":
			return fmt.Errorf("%w: buffer %d has no URI and no bound data", ErrMissingBufferData, i)
		case strings.HasPrefix(buf.URI, dataURIPrefix):
			data, err := decodeDataURI(buf.URI)
			if err != nil {
				return fmt.Errorf("buffer %d: %w", i, err)
			}
			buf.Data = data
		default:
			data, err := os.ReadFile(filepath.Join(dir, buf.URI))
			if err != nil {
				return fmt.Errorf("buffer %d: %w", i, err)
			}
			buf.Data = data
		}
		if buf.ByteLength > len(buf.Data) {
			return fmt.Errorf("%w: buffer %d declares %d bytes, resolved %d",
				ErrMissingBufferData, i, buf.ByteLength, len(buf.Data))
		}
	}
	return nil
}

// decodeDataURI decodes a base64-encoded data URI payload.
func decodeDataURI(uri string) ([]byte, error) {
	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return nil, fmt.Errorf("%w: malformed data URI", ErrMissingBufferData)
	}
	meta, payload := uri[len(dataURIPrefix):comma], uri[comma+1:]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("%w: data URI is not base64-encoded", ErrMissingBufferData)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingBufferData, err)
	}
	return data, nil
}
