// Package symtab maintains the per-translation symbol tables built while
// walking a decoded SPIR-V instruction stream: types, variables, constants,
// names, decorations and functions, all keyed by SPIR-V result id.
//
// Every table is a flat map keyed by id rather than a pointer graph, since
// the id space is bounded by the module's declared bound and ids are
// themselves just indices into the module, not addresses. A Table is owned
// exclusively by one Translator for the lifetime of one translation; it is
// never shared between modules.
package symtab
