// GLB binary container parsing.
package gltf

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// GLB container errors.
var (
	ErrInvalidGLBMagic       = errors.New("invalid GLB magic: expected 'glTF'")
	ErrUnsupportedGLBVersion = errors.New("unsupported GLB version")
	ErrTruncatedGLB          = errors.New("truncated GLB data")
	ErrInvalidGLBChunk       = errors.New("invalid GLB chunk")
)

const (
	glbMagic     = 0x46546c67 // "glTF"
	glbChunkJSON = 0x4e4f534a // "JSON"
	glbChunkBIN  = 0x004e4942 // "BIN\0"

	glbHeaderSize = 12
	glbChunkSize  = 8
)

// glbChunks splits a GLB blob into its JSON chunk and optional BIN chunk.
func glbChunks(data []byte) (jsonChunk, binChunk []byte, err error) {
	if len(data) < glbHeaderSize {
		return nil, nil, ErrTruncatedGLB
	}
	if binary.LittleEndian.Uint32(data[0:]) != glbMagic {
		return nil, nil, ErrInvalidGLBMagic
	}
	if v := binary.LittleEndian.Uint32(data[4:]); v != 2 {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnsupportedGLBVersion, v)
	}
	total := int(binary.LittleEndian.Uint32(data[8:]))
	if total > len(data) {
		return nil, nil, ErrTruncatedGLB
	}

	offset := glbHeaderSize
	for offset+glbChunkSize <= total {
		length := int(binary.LittleEndian.Uint32(data[offset:]))
		kind := binary.LittleEndian.Uint32(data[offset+4:])
		offset += glbChunkSize
		if offset+length > total {
			return nil, nil, ErrTruncatedGLB
		}
		payload := data[offset : offset+length]
		offset += length

		switch kind {
		case glbChunkJSON:
			if jsonChunk != nil {
				return nil, nil, fmt.Errorf("%w: duplicate JSON chunk", ErrInvalidGLBChunk)
			}
			jsonChunk = payload
		case glbChunkBIN:
			if binChunk != nil {
				return nil, nil, fmt.Errorf("%w: duplicate BIN chunk", ErrInvalidGLBChunk)
			}
			binChunk = payload
		default:
			// Unknown chunk types must be skipped per the GLB spec.
		}
	}

	if jsonChunk == nil {
		return nil, nil, fmt.Errorf("%w: missing JSON chunk", ErrInvalidGLBChunk)
	}
	return jsonChunk, binChunk, nil
}

// IsGLB reports whether data starts with a GLB version 2 header.
func IsGLB(data []byte) bool {
	return len(data) >= glbHeaderSize &&
		binary.LittleEndian.Uint32(data[0:]) == glbMagic &&
		binary.LittleEndian.Uint32(data[4:]) == 2
}
