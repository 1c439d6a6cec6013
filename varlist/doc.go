// Package varlist renders a decoded SPIR-V module's externally-visible
// interface variables (Input, Output and UniformConstant storage classes)
// as a flat manifest: one "<qualifier> <type> <name>" line per variable
// that has a debug name, preceded by a stage header line.
//
// Three sinks share the same manifest: RenderCode's "<qualifier> <type>
// <name>" lines written to a file or stdout, RenderPrint's
// "#<qualifier>:<name>:<type>" diagnostic form written to stderr, and
// ToSlice's in-memory []InterfaceVariable for callers (the inspector)
// that want the data without text.
package varlist
