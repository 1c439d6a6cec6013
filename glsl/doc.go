// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package glsl renders a decoded SPIR-V module as GLSL-family source: a
// version directive, the storage-qualified global declarations a target's
// GLSL version calls for, struct definitions, and function bodies, with
// tessellation control shaders' patch_main spliced into main as their own
// last step.
//
// Emitter embeds cstyle.Emitter and overrides EmitOp only for OpLabel,
// where it needs to emit the one-time prologue before the first
// function's body starts; every other opcode falls through to the
// embedded C-style default.
package glsl
