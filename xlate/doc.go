// Package xlate provides the Translator base: the generic forward walk that
// feeds every decoded instruction to a symtab.Table (for table bookkeeping)
// and then to a Backend (for text emission), plus the shared error-recovery
// policy used by every concrete backend.
//
// Backend implementations embed a shared default rather than reimplement
// the whole dispatch: package cstyle provides the C-family default that
// package glsl embeds and selectively overrides, mirroring how the source
// project layers a GLSL-specific translator over a shared C-style base
// over a common translator base.
package xlate
