// Package cstyle implements the C-family statement and expression
// rendering shared by every brace-and-semicolon backend (today, just
// GLSL): binary/unary operators, composite access, conversions, extended
// instructions and structured control flow.
//
// Structured control flow is lowered into nested if/else, while and switch
// text by matching OpSelectionMerge/OpLoopMerge merge ids to the OpLabel
// that later closes them, per a stack of open constructs kept on the
// current Function (symtab.Function.CFStack): entering a selection or loop
// pushes a frame and raises indentation, the matching merge label pops it
// and lowers indentation again, and a selection's false-branch label (if
// distinct from its merge) reopens as "} else {" in between. Loops render
// uniformly as "while (true) { ... }" with the structured exit test
// rewritten as "if (cond) break;" at the point its conditional branch is
// reached, rather than as a hoisted while(cond) header. A conditional
// branch that matches neither shape (no preceding OpSelectionMerge reached
// it, and no open loop frame's merge is one of its targets) falls back to
// a comment marker instead of guessing at incorrect control flow.
package cstyle
