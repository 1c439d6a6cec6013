// Package inspect implements the interactive terminal browser behind the
// spirvinspect command: a read-only, scrollable view over a decoded SPIR-V
// module's instruction stream, its type table, and its interface-variable
// manifest.
//
// The browser is a bubbletea program in the standard model/update/view
// shape. It consumes exactly the data the translation pipeline itself
// builds — decode.Instruction values and a symtab.Table populated by the
// same Apply pass every backend runs — and the variable view renders
// varlist.ToSlice's records, so the interactive view and the varlist
// manifest cannot disagree.
package inspect
