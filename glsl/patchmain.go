// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import "bytes"

// splicePatchMain merges a tessellation control shader's patch_main body
// into main. SPIR-V producers structure per-patch work as a separate
// patch_main function guarded by invocation zero; GLSL tessellation
// control shaders expect that work inline within main. Both buffers are
// split by newline: the first two lines of main (signature and opening
// brace) are kept, then every patch_main line is emitted indented by one
// tab — except lines whose trailing seven characters are exactly
// "return;", which end patch_main early and must not end main — then the
// rest of main follows.
func splicePatchMain(mainBody, patchBody []byte) []byte {
	mainLines := splitLines(mainBody)
	patchLines := splitLines(patchBody)
	if len(mainLines) < 2 {
		return mainBody
	}

	var out []byte
	for _, line := range mainLines[:2] {
		out = append(out, line...)
		out = append(out, '\n')
	}
	for _, line := range patchLines {
		if isReturnLine(line) {
			continue
		}
		out = append(out, '\t')
		out = append(out, line...)
		out = append(out, '\n')
	}
	for _, line := range mainLines[2:] {
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// splitLines splits by newline, dropping the empty tail a trailing
// newline produces.
func splitLines(buf []byte) [][]byte {
	lines := bytes.Split(buf, []byte{'\n'})
	if len(lines) > 0 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func isReturnLine(line []byte) bool {
	return len(line) >= 7 && bytes.Equal(line[len(line)-7:], []byte("return;"))
}
