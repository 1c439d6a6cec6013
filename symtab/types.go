package symtab

import "github.com/shaderkit/spirvtext/spirv"

// Type is the rendering-relevant projection of a SPIR-V type, keyed by the
// type's result id in Table.Types.
type Type struct {
	ID uint32

	// Name is the emitted textual type, e.g. "float", "vec3", "mat4",
	// "sampler2D", "samplerExternalOES", or a struct's name. Non-square
	// matrices get no Type at all; see Table.installMatrix.
	Name string

	// Length is the element count for arrays, or the constituent count
	// synthesized for vectors/matrices; it has no meaning otherwise.
	Length int

	IsArray   bool
	IsPointer bool

	// Members is the ordered list of struct members; empty for non-struct
	// types.
	Members []Member

	// scalar classifies the type for literal-formatting and
	// prefix-synthesis purposes (int/uint/float/bool); zero value
	// (scalarFloat) is also the harmless default for non-scalar types,
	// which never consult it.
	scalar scalarKind
}

// Member is one named field of a struct Type.
type Member struct {
	Name string
	Type Type
}

type scalarKind uint8

const (
	scalarFloat scalarKind = iota
	scalarInt
	scalarUint
	scalarBool
)

// Variable is a SPIR-V OpVariable, keyed by its result id in
// Table.Variables.
type Variable struct {
	ID      uint32
	Type    uint32 // id of the variable's pointer type
	Storage spirv.StorageClass
	Builtin bool
}

// Constant is a SPIR-V OpConstant/OpConstantComposite/OpConstantNull,
// keyed by its result id in Table.Constants. Value holds the literal as it
// should be rendered at use sites (already dialect-formatted).
type Constant struct {
	ID    uint32
	Type  uint32
	Value string
}

// Decoration accumulates the OpDecorate/OpMemberDecorate payloads recorded
// for one id (or one struct member). Only the fields the in-scope emitters
// consult are kept as typed, optional values; anything else is dropped at
// decode time, matching this repository's non-goal of full SPIR-V semantic
// validation.
type Decoration struct {
	BuiltIn       *spirv.BuiltIn
	Location      *uint32
	Binding       *uint32
	DescriptorSet *uint32
	ArrayStride   *uint32
	Offset        *uint32
}

// Param is one parameter of a Function.
type Param struct {
	ID   uint32
	Type uint32
}

// Function accumulates one function's signature and emitted body text.
// Functions are stored in Table.Functions in the order their OpFunction
// appeared, which is also the order the final file assembles them in.
type Function struct {
	ID         uint32
	Name       string
	ReturnType uint32
	Parameters []Param

	// Text accumulates the rendered body, starting from the first OpLabel
	// (inclusive of the signature and opening brace). It is owned
	// exclusively by this Function and is never touched once
	// OpFunctionEnd closes it.
	Text []byte

	// FirstLabelSeen distinguishes the function-prologue label from
	// subsequent block-boundary labels within the same function.
	FirstLabelSeen bool

	// Indentation is the emitter's current nesting depth within this
	// function's body.
	Indentation int

	// CFStack is the open structured-control-flow constructs (innermost
	// last) whose merge blocks haven't been reached yet, used to lower
	// OpSelectionMerge/OpLoopMerge/OpBranchConditional/OpSwitch into nested
	// if/else/while/switch text as each construct's blocks are walked.
	CFStack []ControlFrame

	// PendingSelectionMerge is the merge block id recorded by an
	// OpSelectionMerge, held until the terminator in the same block
	// (always the very next instruction that has rendering effect)
	// consumes it to decide the if/else shape.
	PendingSelectionMerge uint32
}

// ControlKind distinguishes the structured-control-flow constructs a
// ControlFrame tracks.
type ControlKind uint8

const (
	ControlSelection ControlKind = iota
	ControlLoop
	ControlSwitch
)

// ControlFrame is one open structured-control-flow construct, closed when
// the walk reaches its Merge label.
type ControlFrame struct {
	Kind  ControlKind
	Merge uint32

	// Else is a selection's false-branch label; 0 when the
	// OpBranchConditional's false target was already Merge (a plain "if"
	// with no "else").
	Else       uint32
	ElseOpened bool

	// Continue is a loop's continue-target block id; recorded for
	// completeness, not currently consulted (this repository's loop
	// lowering renders continue the same as any other not-specially-
	// tracked label: a plain fallthrough point).
	Continue uint32

	// Cases maps a switch's case-target label id to its still-unwritten
	// "case <literal>:" (or "default:") line, consumed the first time that
	// label is reached.
	Cases map[uint32]string
}

// Top returns the innermost open control frame, or nil if none is open.
func (fn *Function) Top() *ControlFrame {
	if len(fn.CFStack) == 0 {
		return nil
	}
	return &fn.CFStack[len(fn.CFStack)-1]
}

// Push opens a new control frame.
func (fn *Function) Push(f ControlFrame) {
	fn.CFStack = append(fn.CFStack, f)
}

// Pop closes the innermost control frame.
func (fn *Function) Pop() {
	fn.CFStack = fn.CFStack[:len(fn.CFStack)-1]
}
