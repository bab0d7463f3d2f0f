package gpu

import (
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gogpu/naga"
)

// Embedded WGSL shader sources.

//go:embed shaders/points.wgsl
var pointShaderSource string

// Shader entry points in points.wgsl.
const (
	pointVertexEntry   = "vs_main"
	pointFragmentEntry = "fs_main"
)

// PointShaderSource returns the WGSL source for the point shader.
func PointShaderSource() string {
	return pointShaderSource
}

// CompileShader validates WGSL source with naga and returns the SPIR-V
// words. Any failure wraps ErrShaderCompile.
func CompileShader(wgsl string) ([]uint32, error) {
	if wgsl == "" {
		return nil, fmt.Errorf("%w: empty source", ErrShaderCompile)
	}

	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShaderCompile, err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("%w: %w", ErrShaderCompile, errors.New("SPIR-V length is not a multiple of 4"))
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return words, nil
}
