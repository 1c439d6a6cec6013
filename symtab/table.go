package symtab

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shaderkit/spirvtext/decode"
	"github.com/shaderkit/spirvtext/spirv"
	"github.com/shaderkit/spirvtext/target"
	"github.com/shaderkit/spirvtext/xerr"
)

// Table holds every symbol table populated while walking one module, plus
// the reference table used to resolve an id to its textual expression at
// point of use.
type Table struct {
	Bound uint32

	Types       map[uint32]*Type
	Variables   map[uint32]*Variable
	Constants   map[uint32]*Constant
	Names       map[uint32]string
	MemberNames map[uint32]map[uint32]string

	Decorations       map[uint32]*Decoration
	MemberDecorations map[uint32]map[uint32]*Decoration

	Functions    []*Function
	functionByID map[uint32]*Function

	// References maps an id to the textual expression that refers to its
	// value at point of use, e.g. "v_17", "(a + b)". Populated by the
	// emitter as it renders value-producing ops; consulted through Ref.
	References map[uint32]string

	// Current is the function currently being emitted, or nil between
	// OpFunctionEnd and the next OpFunction.
	Current *Function

	// Target and Stage give OpTypeImage installation the context it needs
	// to decide Android's external-image sampler substitution and to
	// record any resulting #extension requirement.
	Target target.Target
	Stage  target.Stage

	// NeedsExternalImageExtension is set the first time an external-image
	// sampler substitution happens, so the GLSL prologue knows to emit
	// the #extension directive exactly once.
	NeedsExternalImageExtension bool

	// Sanitize is consulted by NameOrSynth before an OpName-declared
	// identifier is handed back as a reference, so the "Name preservation"
	// law's carve-out ("sanitized only if it collides with a dialect
	// keyword") is enforced by the dialect that knows its own keyword set
	// rather than by this dialect-agnostic table. nil means no dialect has
	// opted in, so names pass through unchanged.
	Sanitize func(string) string
}

// New returns an empty Table scoped to one translation.
func New(bound uint32, tgt target.Target, stage target.Stage) *Table {
	return &Table{
		Bound:             bound,
		Types:             make(map[uint32]*Type),
		Variables:         make(map[uint32]*Variable),
		Constants:         make(map[uint32]*Constant),
		Names:             make(map[uint32]string),
		MemberNames:       make(map[uint32]map[uint32]string),
		Decorations:       make(map[uint32]*Decoration),
		MemberDecorations: make(map[uint32]map[uint32]*Decoration),
		functionByID:      make(map[uint32]*Function),
		References:        make(map[uint32]string),
		Target:            tgt,
		Stage:             stage,
	}
}

// NameOrSynth returns the OpName-declared identifier for id, or the
// synthesized fallback "_<id>" if none was recorded. This is the "Name
// preservation" law from the testable properties: if OpName is present,
// this is exactly what callers must use as the id's reference.
func (t *Table) NameOrSynth(id uint32) string {
	if n, ok := t.Names[id]; ok && n != "" {
		if t.Sanitize != nil {
			return t.Sanitize(n)
		}
		return n
	}
	return fmt.Sprintf("_%d", id)
}

// memberName returns the declared member name for (typeID, index), or a
// synthesized fallback.
func (t *Table) memberName(typeID, index uint32) string {
	if members, ok := t.MemberNames[typeID]; ok {
		if n, ok := members[index]; ok && n != "" {
			return n
		}
	}
	return fmt.Sprintf("_m%d", index)
}

// Ref resolves id to the expression that should appear at its use sites:
// a cached rendering-time reference first, then a known constant's literal,
// then the declared-or-synthesized name. Unlike the original, this never
// fails outright for an unknown id — callers that must treat a missing
// reference as fatal (per the MissingSymbol invariant) use RefStrict.
func (t *Table) Ref(id uint32) string {
	if s, ok := t.References[id]; ok {
		return s
	}
	if c, ok := t.Constants[id]; ok {
		return c.Value
	}
	return t.NameOrSynth(id)
}

// RefStrict is Ref, but reports MissingSymbol when nothing at all is known
// about id (no cached reference, constant, name, variable, type or
// function is recorded for it). The module's id bound is not consulted.
func (t *Table) RefStrict(id uint32) (string, error) {
	if _, ok := t.References[id]; ok {
		return t.Ref(id), nil
	}
	if _, ok := t.Constants[id]; ok {
		return t.Ref(id), nil
	}
	if _, ok := t.Names[id]; ok {
		return t.Ref(id), nil
	}
	if _, ok := t.Variables[id]; ok {
		return t.Ref(id), nil
	}
	if _, ok := t.Types[id]; ok {
		return t.Ref(id), nil
	}
	if _, ok := t.functionByID[id]; ok {
		return t.Ref(id), nil
	}
	return "", xerr.MissingSym(id)
}

// SetRef records the rendered expression for id.
func (t *Table) SetRef(id uint32, expr string) {
	t.References[id] = expr
}

// Apply installs the generic symbol-table effect of one instruction: type,
// variable, name, decoration and function bookkeeping opcodes, per the
// opcode dispatch table. Opcodes with no table effect (arithmetic,
// control flow, loads/stores, ...) are left untouched for the emitter to
// handle; Apply never errors on those, it simply does nothing.
func (t *Table) Apply(inst decode.Instruction) error {
	switch inst.Opcode {
	case spirv.OpTypeVoid:
		t.Types[inst.Operand(0)] = &Type{ID: inst.Operand(0), Name: "void"}
	case spirv.OpTypeBool:
		t.Types[inst.Operand(0)] = &Type{ID: inst.Operand(0), Name: "bool", scalar: scalarBool}
	case spirv.OpTypeInt:
		t.installScalarInt(inst)
	case spirv.OpTypeFloat:
		t.Types[inst.Operand(0)] = &Type{ID: inst.Operand(0), Name: "float", scalar: scalarFloat}
	case spirv.OpTypeVector:
		t.installVector(inst)
	case spirv.OpTypeMatrix:
		t.installMatrix(inst)
	case spirv.OpTypeArray:
		t.installArray(inst, false)
	case spirv.OpTypeRuntimeArray:
		t.installArray(inst, true)
	case spirv.OpTypeStruct:
		t.installStruct(inst)
	case spirv.OpTypePointer:
		t.installPointer(inst)
	case spirv.OpTypeImage:
		t.installImage(inst)
	case spirv.OpTypeSampler:
		t.Types[inst.Operand(0)] = &Type{ID: inst.Operand(0), Name: "sampler"}
	case spirv.OpTypeSampledImage:
		t.installSampledImage(inst)
	case spirv.OpTypeFunction:
		// Parameter types are read directly off each OpFunctionParameter;
		// the function-type id itself has no rendering-relevant shape.

	case spirv.OpName:
		t.Names[inst.Operand(0)] = inst.String
	case spirv.OpMemberName:
		typeID, idx := inst.Operand(0), inst.Operand(1)
		if t.MemberNames[typeID] == nil {
			t.MemberNames[typeID] = make(map[uint32]string)
		}
		t.MemberNames[typeID][idx] = inst.String

	case spirv.OpDecorate:
		t.applyDecorate(inst)
	case spirv.OpMemberDecorate:
		t.applyMemberDecorate(inst)

	case spirv.OpConstantTrue:
		t.Constants[inst.Operand(1)] = &Constant{ID: inst.Operand(1), Type: inst.Operand(0), Value: "true"}
	case spirv.OpConstantFalse:
		t.Constants[inst.Operand(1)] = &Constant{ID: inst.Operand(1), Type: inst.Operand(0), Value: "false"}
	case spirv.OpConstant:
		t.installConstant(inst)
	case spirv.OpConstantComposite:
		t.installConstantComposite(inst)
	case spirv.OpConstantNull:
		t.installConstantNull(inst)

	case spirv.OpVariable:
		t.installVariable(inst)

	case spirv.OpFunction:
		t.openFunction(inst)
	case spirv.OpFunctionParameter:
		if t.Current != nil {
			t.Current.Parameters = append(t.Current.Parameters, Param{ID: inst.Operand(1), Type: inst.Operand(0)})
		}
	case spirv.OpFunctionEnd:
		t.Current = nil
	}
	return nil
}

func (t *Table) installScalarInt(inst decode.Instruction) {
	id := inst.Operand(0)
	signed := inst.Operand(2) != 0
	if signed {
		t.Types[id] = &Type{ID: id, Name: "int", scalar: scalarInt}
	} else {
		t.Types[id] = &Type{ID: id, Name: "uint", scalar: scalarUint}
	}
}

func (t *Table) installVector(inst decode.Instruction) {
	id := inst.Operand(0)
	compID := inst.Operand(1)
	count := int(inst.Operand(2))

	comp, ok := t.Types[compID]
	if !ok {
		return
	}
	prefix := vectorPrefix(comp.scalar)
	t.Types[id] = &Type{ID: id, Name: fmt.Sprintf("%svec%d", prefix, count), Length: count, scalar: comp.scalar}
}

func vectorPrefix(k scalarKind) string {
	switch k {
	case scalarInt:
		return "i"
	case scalarUint:
		return "u"
	case scalarBool:
		return "b"
	default:
		return ""
	}
}

// installMatrix synthesizes a canonical matN name for square matrices.
// Non-square matrices deliberately fall through without setting
// types[id], preserving the ambiguous-but-documented source behavior
// noted in this repository's design notes: a later lookup of such a type
// id finds no Type at all (value-producing ops of that type fail with
// MissingSymbol, and globals of that type are not declared).
func (t *Table) installMatrix(inst decode.Instruction) {
	id := inst.Operand(0)
	colTypeID := inst.Operand(1)
	colCount := int(inst.Operand(2))

	col, ok := t.Types[colTypeID]
	if !ok || col.Length != colCount {
		return
	}
	t.Types[id] = &Type{ID: id, Name: fmt.Sprintf("mat%d", colCount), Length: colCount}
}

func (t *Table) installArray(inst decode.Instruction, runtime bool) {
	id := inst.Operand(0)
	elemID := inst.Operand(1)
	elem, ok := t.Types[elemID]
	if !ok {
		return
	}
	length := 0
	if !runtime {
		if c, ok := t.Constants[inst.Operand(2)]; ok {
			if n, err := strconv.Atoi(c.Value); err == nil {
				length = n
			}
		}
	}
	cp := *elem
	cp.ID = id
	cp.IsArray = true
	cp.Length = length
	t.Types[id] = &cp
}

func (t *Table) installStruct(inst decode.Instruction) {
	id := inst.Operand(0)
	members := make([]Member, 0, len(inst.Operands)-1)
	for idx, memberTypeID := range inst.Operands[1:] {
		memberType, ok := t.Types[memberTypeID]
		if !ok {
			continue
		}
		members = append(members, Member{Name: t.memberName(id, uint32(idx)), Type: *memberType})
	}
	t.Types[id] = &Type{ID: id, Name: t.NameOrSynth(id), Members: members}
}

func (t *Table) installPointer(inst decode.Instruction) {
	id := inst.Operand(0)
	pointee, ok := t.Types[inst.Operand(2)]
	if !ok {
		return
	}
	cp := *pointee
	cp.ID = id
	cp.IsPointer = true
	t.Types[id] = &cp
}

func (t *Table) installImage(inst decode.Instruction) {
	id := inst.Operand(0)
	sampledTypeID := inst.Operand(1)
	dim := spirv.Dim(inst.Operand(2))
	depth := inst.Operand(3) == 1
	arrayed := inst.Operand(4) == 1

	sampled, _ := t.Types[sampledTypeID]
	prefix := ""
	if sampled != nil {
		prefix = vectorPrefix(sampled.scalar)
	}

	if t.Target.ExternalImageSampler(t.Stage) {
		t.NeedsExternalImageExtension = true
		t.Types[id] = &Type{ID: id, Name: "samplerExternalOES"}
		return
	}

	name := prefix + "sampler" + dimSuffix(dim)
	if arrayed {
		name += "Array"
	}
	if depth {
		name += "Shadow"
	}
	t.Types[id] = &Type{ID: id, Name: name}
}

func dimSuffix(d spirv.Dim) string {
	switch d {
	case spirv.Dim1D:
		return "1D"
	case spirv.Dim2D:
		return "2D"
	case spirv.Dim3D:
		return "3D"
	case spirv.DimCube:
		return "Cube"
	case spirv.DimRect:
		return "2DRect"
	case spirv.DimBuffer:
		return "Buffer"
	default:
		return "2D"
	}
}

func (t *Table) installSampledImage(inst decode.Instruction) {
	id := inst.Operand(0)
	if img, ok := t.Types[inst.Operand(1)]; ok {
		cp := *img
		cp.ID = id
		t.Types[id] = &cp
	}
}

func (t *Table) installConstant(inst decode.Instruction) {
	typeID, id := inst.Operand(0), inst.Operand(1)
	typ := t.Types[typeID]
	var value string
	bits := inst.Operand(2)
	switch {
	case typ != nil && typ.scalar == scalarFloat:
		value = formatFloat(math.Float32frombits(bits))
	case typ != nil && typ.scalar == scalarInt:
		value = strconv.FormatInt(int64(int32(bits)), 10)
	default:
		value = strconv.FormatUint(uint64(bits), 10)
	}
	t.Constants[id] = &Constant{ID: id, Type: typeID, Value: value}
}

func formatFloat(f float32) string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 32)
	for _, r := range s {
		if r == '.' || r == 'e' || r == 'E' {
			return s
		}
	}
	return s + ".0"
}

func (t *Table) installConstantComposite(inst decode.Instruction) {
	typeID, id := inst.Operand(0), inst.Operand(1)
	typ := t.Types[typeID]
	name := ""
	if typ != nil {
		name = typ.Name
	}
	parts := make([]string, 0, len(inst.Operands)-2)
	for _, constituent := range inst.Operands[2:] {
		parts = append(parts, t.Ref(constituent))
	}
	t.Constants[id] = &Constant{ID: id, Type: typeID, Value: name + "(" + joinComma(parts) + ")"}
}

func (t *Table) installConstantNull(inst decode.Instruction) {
	typeID, id := inst.Operand(0), inst.Operand(1)
	typ := t.Types[typeID]
	name := ""
	if typ != nil {
		name = typ.Name
	}
	t.Constants[id] = &Constant{ID: id, Type: typeID, Value: name + "(0)"}
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}

func (t *Table) installVariable(inst decode.Instruction) {
	typeID, id, storage := inst.Operand(0), inst.Operand(1), spirv.StorageClass(inst.Operand(2))
	v := &Variable{ID: id, Type: typeID, Storage: storage}
	if dec, ok := t.Decorations[id]; ok && dec.BuiltIn != nil {
		v.Builtin = true
	}
	t.Variables[id] = v
}

func (t *Table) applyDecorate(inst decode.Instruction) {
	id := inst.Operand(0)
	dec := inst.Operand(1)
	d := t.decorationFor(id)
	switch spirv.Decoration(dec) {
	case spirv.DecorationBuiltIn:
		b := spirv.BuiltIn(inst.Operand(2))
		d.BuiltIn = &b
	case spirv.DecorationLocation:
		v := inst.Operand(2)
		d.Location = &v
	case spirv.DecorationBinding:
		v := inst.Operand(2)
		d.Binding = &v
	case spirv.DecorationDescriptorSet:
		v := inst.Operand(2)
		d.DescriptorSet = &v
	case spirv.DecorationArrayStride:
		v := inst.Operand(2)
		d.ArrayStride = &v
	}
}

func (t *Table) decorationFor(id uint32) *Decoration {
	d, ok := t.Decorations[id]
	if !ok {
		d = &Decoration{}
		t.Decorations[id] = d
	}
	return d
}

func (t *Table) applyMemberDecorate(inst decode.Instruction) {
	typeID, idx, dec := inst.Operand(0), inst.Operand(1), inst.Operand(2)
	if t.MemberDecorations[typeID] == nil {
		t.MemberDecorations[typeID] = make(map[uint32]*Decoration)
	}
	d, ok := t.MemberDecorations[typeID][idx]
	if !ok {
		d = &Decoration{}
		t.MemberDecorations[typeID][idx] = d
	}
	switch spirv.Decoration(dec) {
	case spirv.DecorationOffset:
		v := inst.Operand(3)
		d.Offset = &v
	case spirv.DecorationBuiltIn:
		b := spirv.BuiltIn(inst.Operand(3))
		d.BuiltIn = &b
	}
}

func (t *Table) openFunction(inst decode.Instruction) {
	returnType, id := inst.Operand(0), inst.Operand(1)
	fn := &Function{ID: id, ReturnType: returnType, Name: t.NameOrSynth(id)}
	t.Functions = append(t.Functions, fn)
	t.functionByID[id] = fn
	t.Current = fn
}

// FunctionByID looks up a function by its SPIR-V id, used to resolve
// OpFunctionCall targets.
func (t *Table) FunctionByID(id uint32) (*Function, bool) {
	f, ok := t.functionByID[id]
	return f, ok
}
