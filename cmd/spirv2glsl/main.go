// Command spirv2glsl translates a SPIR-V binary module into GLSL-family
// source or a flat variable-interface manifest.
//
// Usage:
//
//	spirv2glsl translate --lang glsl --stage fragment --version 300 --es in.spv
//	spirv2glsl translate --lang varlist --format print in.spv
package main

import (
	"os"

	"github.com/shaderkit/spirvtext/cmd/spirv2glsl/internal/app"
)

func main() {
	if err := app.Execute(); err != nil {
		os.Exit(1)
	}
}
