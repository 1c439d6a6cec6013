package cstyle

import (
	"fmt"
	"strings"

	"github.com/shaderkit/spirvtext/decode"
	"github.com/shaderkit/spirvtext/spirv"
	"github.com/shaderkit/spirvtext/symtab"
	"github.com/shaderkit/spirvtext/xerr"
	"github.com/shaderkit/spirvtext/xlate"
)

// Emitter is the default C-family Backend. A dialect backend embeds
// Emitter and overrides EmitOp for the opcodes it needs to special-case,
// calling the embedded Emitter.EmitOp for everything else.
type Emitter struct{}

var binaryOps = map[spirv.OpCode]string{
	spirv.OpIAdd: "+", spirv.OpFAdd: "+",
	spirv.OpISub: "-", spirv.OpFSub: "-",
	spirv.OpIMul: "*", spirv.OpFMul: "*",
	spirv.OpUDiv: "/", spirv.OpSDiv: "/", spirv.OpFDiv: "/",
	spirv.OpUMod: "%", spirv.OpSRem: "%", spirv.OpSMod: "%", spirv.OpFRem: "%", spirv.OpFMod: "%",
	spirv.OpLogicalEqual: "==", spirv.OpLogicalNotEqual: "!=",
	spirv.OpLogicalOr: "||", spirv.OpLogicalAnd: "&&",
	spirv.OpIEqual: "==", spirv.OpINotEqual: "!=",
	spirv.OpUGreaterThan: ">", spirv.OpSGreaterThan: ">", spirv.OpFOrdGreaterThan: ">",
	spirv.OpUGreaterThanEqual: ">=", spirv.OpSGreaterThanEqual: ">=", spirv.OpFOrdGreaterThanEqual: ">=",
	spirv.OpULessThan: "<", spirv.OpSLessThan: "<", spirv.OpFOrdLessThan: "<",
	spirv.OpULessThanEqual: "<=", spirv.OpSLessThanEqual: "<=", spirv.OpFOrdLessThanEqual: "<=",
	spirv.OpFOrdEqual: "==", spirv.OpFOrdNotEqual: "!=",
	spirv.OpShiftRightLogical: ">>", spirv.OpShiftRightArithmetic: ">>", spirv.OpShiftLeftLogical: "<<",
	spirv.OpBitwiseOr: "|", spirv.OpBitwiseXor: "^", spirv.OpBitwiseAnd: "&",
	spirv.OpVectorTimesScalar: "*", spirv.OpMatrixTimesScalar: "*",
	spirv.OpVectorTimesMatrix: "*", spirv.OpMatrixTimesVector: "*", spirv.OpMatrixTimesMatrix: "*",
}

var callOps = map[spirv.OpCode]string{
	spirv.OpDot: "dot", spirv.OpOuterProduct: "outerProduct", spirv.OpTranspose: "transpose",
	spirv.OpDPdx: "dFdx", spirv.OpDPdy: "dFdy", spirv.OpFwidth: "fwidth",
	spirv.OpDPdxFine: "dFdx", spirv.OpDPdyFine: "dFdy", spirv.OpFwidthFine: "fwidth",
	spirv.OpDPdxCoarse: "dFdx", spirv.OpDPdyCoarse: "dFdy", spirv.OpFwidthCoarse: "fwidth",
}

var unaryOps = map[spirv.OpCode]string{
	spirv.OpSNegate: "-", spirv.OpFNegate: "-", spirv.OpLogicalNot: "!", spirv.OpNot: "~",
}

// EmitOp renders one instruction's statement or expression effect. It
// assumes Translator.Run has already applied the instruction's symbol
// table effect, so type/variable/constant lookups are current.
func (Emitter) EmitOp(tr *xlate.Translator, inst decode.Instruction) error {
	tbl := tr.Table

	if op, ok := binaryOps[inst.Opcode]; ok {
		a, b := tbl.Ref(inst.Operand(2)), tbl.Ref(inst.Operand(3))
		return assign(tr, inst, fmt.Sprintf("(%s %s %s)", a, op, b))
	}
	if fn, ok := callOps[inst.Opcode]; ok {
		args := make([]string, 0, len(inst.Operands)-2)
		for _, id := range inst.Operands[2:] {
			args = append(args, tbl.Ref(id))
		}
		return assign(tr, inst, fmt.Sprintf("%s(%s)", fn, strings.Join(args, ", ")))
	}
	if op, ok := unaryOps[inst.Opcode]; ok {
		return assign(tr, inst, fmt.Sprintf("(%s%s)", op, tbl.Ref(inst.Operand(2))))
	}

	switch inst.Opcode {
	case spirv.OpLabel:
		return emitLabel(tr, inst)

	case spirv.OpLoad:
		tbl.SetRef(inst.Operand(1), tbl.Ref(inst.Operand(2)))
		return nil
	case spirv.OpStore:
		writeStmt(tr, fmt.Sprintf("%s = %s;", tbl.Ref(inst.Operand(0)), tbl.Ref(inst.Operand(1))))
		return nil

	case spirv.OpAccessChain, spirv.OpInBoundsAccessChain:
		tbl.SetRef(inst.Operand(1), accessChainExpr(tbl, inst))
		return nil
	case spirv.OpCopyObject:
		tbl.SetRef(inst.Operand(1), tbl.Ref(inst.Operand(2)))
		return nil
	case spirv.OpSampledImage, spirv.OpImage:
		// Both pair or unpair an image and a sampler; GLSL has no separate
		// sampler object, so the reference is just the underlying image's.
		tbl.SetRef(inst.Operand(1), tbl.Ref(inst.Operand(2)))
		return nil

	case spirv.OpCompositeConstruct:
		return emitCompositeConstruct(tr, inst)
	case spirv.OpCompositeExtract:
		return emitCompositeExtract(tr, inst)
	case spirv.OpCompositeInsert:
		return emitCompositeInsert(tr, inst)
	case spirv.OpVectorShuffle:
		return emitVectorShuffle(tr, inst)
	case spirv.OpVectorExtractDynamic:
		a, i := tbl.Ref(inst.Operand(2)), tbl.Ref(inst.Operand(3))
		return assign(tr, inst, fmt.Sprintf("%s[%s]", a, i))

	case spirv.OpSelect:
		cond, a, b := tbl.Ref(inst.Operand(2)), tbl.Ref(inst.Operand(3)), tbl.Ref(inst.Operand(4))
		return assign(tr, inst, fmt.Sprintf("(%s ? %s : %s)", cond, a, b))

	case spirv.OpConvertFToU, spirv.OpConvertFToS, spirv.OpConvertSToF, spirv.OpConvertUToF,
		spirv.OpUConvert, spirv.OpSConvert, spirv.OpFConvert, spirv.OpBitcast:
		return emitConvert(tr, inst)

	case spirv.OpExtInst:
		return emitExtInst(tr, inst)

	case spirv.OpFunctionCall:
		return emitFunctionCall(tr, inst)

	case spirv.OpImageSampleImplicitLod, spirv.OpImageSampleExplicitLod:
		img, coord := tbl.Ref(inst.Operand(2)), tbl.Ref(inst.Operand(3))
		return assign(tr, inst, fmt.Sprintf("%s(%s, %s)", sampleCallName(tbl, inst.Operand(2)), img, coord))
	case spirv.OpImageFetch:
		img, coord := tbl.Ref(inst.Operand(2)), tbl.Ref(inst.Operand(3))
		return assign(tr, inst, fmt.Sprintf("texelFetch(%s, %s, 0)", img, coord))

	case spirv.OpReturn:
		writeStmt(tr, "return;")
		return nil
	case spirv.OpReturnValue:
		writeStmt(tr, fmt.Sprintf("return %s;", tbl.Ref(inst.Operand(0))))
		return nil
	case spirv.OpKill:
		writeStmt(tr, "discard;")
		return nil
	case spirv.OpUnreachable:
		return nil

	case spirv.OpSelectionMerge:
		fn := tbl.Current
		if fn != nil {
			fn.PendingSelectionMerge = inst.Operand(0)
		}
		return nil
	case spirv.OpLoopMerge:
		return emitLoopMerge(tr, inst)
	case spirv.OpBranch:
		return nil
	case spirv.OpBranchConditional:
		return emitBranchConditional(tr, inst)
	case spirv.OpSwitch:
		return emitSwitch(tr, inst)
	case spirv.OpPhi:
		return emitPhi(tr, inst)

	case spirv.OpVariable:
		return emitLocalVariable(tr, inst)

	// Table-effect and module-layout opcodes: their work happened in
	// symtab.Table.Apply (or they carry no rendering effect at all).
	case spirv.OpNop, spirv.OpUndef, spirv.OpLine, spirv.OpSource, spirv.OpSourceContinued,
		spirv.OpSourceExtension, spirv.OpString, spirv.OpName, spirv.OpMemberName,
		spirv.OpExtension, spirv.OpExtInstImport, spirv.OpMemoryModel, spirv.OpEntryPoint,
		spirv.OpExecutionMode, spirv.OpCapability, spirv.OpDecorate, spirv.OpMemberDecorate,
		spirv.OpTypeVoid, spirv.OpTypeBool, spirv.OpTypeInt, spirv.OpTypeFloat,
		spirv.OpTypeVector, spirv.OpTypeMatrix, spirv.OpTypeImage, spirv.OpTypeSampler,
		spirv.OpTypeSampledImage, spirv.OpTypeArray, spirv.OpTypeRuntimeArray,
		spirv.OpTypeStruct, spirv.OpTypeOpaque, spirv.OpTypePointer, spirv.OpTypeFunction,
		spirv.OpConstantTrue, spirv.OpConstantFalse, spirv.OpConstant,
		spirv.OpConstantComposite, spirv.OpConstantSampler, spirv.OpConstantNull,
		spirv.OpFunction, spirv.OpFunctionParameter, spirv.OpFunctionEnd:
		return nil

	default:
		return xerr.UnsupportedOp(uint16(inst.Opcode))
	}
}

// sampleCallName picks the sampling builtin for the target's version:
// the unified "texture" from 300 on, the typed texture2D/textureCube
// spellings below. imgID is the sampled-image operand; when it can be
// traced back to a declared sampler variable, the sampler's type name
// decides the typed spelling.
func sampleCallName(tbl *symtab.Table, imgID uint32) string {
	if tbl.Target.Version >= 300 {
		return "texture"
	}
	if v, ok := tbl.Variables[imgID]; ok {
		if t, ok := tbl.Types[v.Type]; ok && strings.Contains(t.Name, "Cube") {
			return "textureCube"
		}
	}
	return "texture2D"
}

// emitLocalVariable declares a function-local variable at its OpVariable.
// Module-scope variables (inputs, outputs, uniforms, privates) have no
// body text: their declarations belong to the dialect's module prologue.
func emitLocalVariable(tr *xlate.Translator, inst decode.Instruction) error {
	fn := tr.Table.Current
	storage := spirv.StorageClass(inst.Operand(2))
	if fn == nil || storage != spirv.StorageClassFunction {
		return nil
	}
	typeID, id := inst.Operand(0), inst.Operand(1)
	typ, ok := tr.Table.Types[typeID]
	if !ok {
		return xerr.MissingSym(typeID)
	}
	name := tr.Table.NameOrSynth(id)
	if len(inst.Operands) > 3 {
		writeStmt(tr, fmt.Sprintf("%s %s = %s;", typ.Name, name, tr.Table.Ref(inst.Operand(3))))
	} else {
		writeStmt(tr, fmt.Sprintf("%s %s;", typ.Name, name))
	}
	tr.Table.SetRef(id, name)
	return nil
}

// Finalize concatenates every function's body text in declaration order.
// Dialects that need a prologue or a patch_main splice override this.
func (Emitter) Finalize(tr *xlate.Translator) ([]byte, error) {
	var out []byte
	for _, fn := range tr.Table.Functions {
		out = append(out, fn.Text...)
	}
	return out, nil
}

// emitLabel closes or reopens whatever structured-control-flow frame this
// label's id belongs to (the function's innermost-open frame's Merge,
// a selection's Else, or a switch's next case) by matching merge ids to
// block boundaries. A label that matches none of those is an
// ordinary block boundary within an already-open construct: it renders
// nothing, since this repository's single text buffer already places its
// statements at the right place simply by having been reached in stream
// order.
func emitLabel(tr *xlate.Translator, inst decode.Instruction) error {
	fn := tr.Table.Current
	if fn == nil {
		return nil
	}
	if !fn.FirstLabelSeen {
		fn.FirstLabelSeen = true
		return nil
	}

	id := inst.Operand(0)
	for {
		top := fn.Top()
		if top == nil || top.Merge != id {
			break
		}
		fn.Pop()
		fn.Indentation--
		writeStmt(tr, "}")
	}

	top := fn.Top()
	if top == nil {
		return nil
	}
	switch top.Kind {
	case symtab.ControlSelection:
		if top.Else != 0 && top.Else == id && !top.ElseOpened {
			top.ElseOpened = true
			fn.Indentation--
			writeStmt(tr, "} else {")
			fn.Indentation++
		}
	case symtab.ControlSwitch:
		if line, ok := top.Cases[id]; ok {
			delete(top.Cases, id)
			writeStmt(tr, line)
		}
	}
	return nil
}

// emitLoopMerge opens a loop as "while (true) { ... }": every in-scope
// loop this repository decodes is the canonical structured shape (header
// branches unconditionally into a condition-check block whose
// OpBranchConditional targets either the body or the merge block), so the
// exit test is rendered at the point that conditional branch is reached
// rather than as a C-style while(cond) header, which would require
// hoisting the first condition evaluation above the loop.
func emitLoopMerge(tr *xlate.Translator, inst decode.Instruction) error {
	fn := tr.Table.Current
	if fn == nil {
		return nil
	}
	fn.Push(symtab.ControlFrame{
		Kind:     symtab.ControlLoop,
		Merge:    inst.Operand(0),
		Continue: inst.Operand(1),
	})
	writeStmt(tr, "while (true) {")
	fn.Indentation++
	return nil
}

// emitBranchConditional lowers a selection's test into a nested "if" (and,
// once its Else label is reached, "} else {"), or — when the innermost
// open frame is a loop whose merge block is one of this branch's two
// targets — into the loop's "if (...) break;" exit guard.
func emitBranchConditional(tr *xlate.Translator, inst decode.Instruction) error {
	fn := tr.Table.Current
	if fn == nil {
		return nil
	}
	tbl := tr.Table
	cond, trueL, falseL := tbl.Ref(inst.Operand(0)), inst.Operand(1), inst.Operand(2)

	if merge := fn.PendingSelectionMerge; merge != 0 {
		fn.PendingSelectionMerge = 0
		elseLabel := falseL
		if falseL == merge {
			elseLabel = 0
		}
		writeStmt(tr, fmt.Sprintf("if (%s) {", cond))
		fn.Indentation++
		fn.Push(symtab.ControlFrame{Kind: symtab.ControlSelection, Merge: merge, Else: elseLabel})
		return nil
	}

	if top := fn.Top(); top != nil && top.Kind == symtab.ControlLoop {
		switch top.Merge {
		case trueL:
			writeStmt(tr, fmt.Sprintf("if (%s) break;", cond))
			return nil
		case falseL:
			writeStmt(tr, fmt.Sprintf("if (!(%s)) break;", cond))
			return nil
		}
	}

	// A conditional branch this repository doesn't recognize as either a
	// selection (no preceding OpSelectionMerge reached us) or a loop exit
	// test falls back to a comment marker rather than emitting incorrect
	// control flow; see the package documentation.
	writeStmt(tr, fmt.Sprintf("// if (%s) goto %%%d; else goto %%%d", cond, trueL, falseL))
	return nil
}

// emitSwitch opens a switch statement and records each case label's
// "case <literal>:" text for emitLabel to write out when that label is
// reached. Integer selectors are assumed to be 32-bit (one literal word
// per case), matching the vertex/fragment/geometry/tessellation subset
// this repository targets.
func emitSwitch(tr *xlate.Translator, inst decode.Instruction) error {
	fn := tr.Table.Current
	if fn == nil {
		return nil
	}
	tbl := tr.Table
	selector := tbl.Ref(inst.Operand(0))
	defaultLabel := inst.Operand(1)
	merge := fn.PendingSelectionMerge
	fn.PendingSelectionMerge = 0

	cases := make(map[uint32]string)
	pairs := inst.Operands[2:]
	for i := 0; i+1 < len(pairs); i += 2 {
		literal, label := pairs[i], pairs[i+1]
		if label == merge {
			continue
		}
		if _, exists := cases[label]; !exists {
			cases[label] = fmt.Sprintf("case %d:", int32(literal))
		}
	}
	if defaultLabel != merge {
		cases[defaultLabel] = "default:"
	}

	writeStmt(tr, fmt.Sprintf("switch (%s) {", selector))
	fn.Indentation++
	fn.Push(symtab.ControlFrame{Kind: symtab.ControlSwitch, Merge: merge, Cases: cases})
	return nil
}

func assign(tr *xlate.Translator, inst decode.Instruction, expr string) error {
	typeID, id := inst.Operand(0), inst.Operand(1)
	typ, ok := tr.Table.Types[typeID]
	if !ok {
		return xerr.MissingSym(typeID)
	}
	name := tr.Table.NameOrSynth(id)
	writeStmt(tr, fmt.Sprintf("%s %s = %s;", typ.Name, name, expr))
	tr.Table.SetRef(id, name)
	return nil
}

func writeStmt(tr *xlate.Translator, line string) {
	fn := tr.Table.Current
	if fn == nil {
		return
	}
	fn.Text = append(fn.Text, []byte(strings.Repeat("\t", fn.Indentation+1)+line+"\n")...)
}

// accessChainExpr walks an OpAccessChain's index operands against the type
// table: struct steps with a constant index become ".field", and every
// other step (arrays, matrices, vectors) becomes "[idx]".
func accessChainExpr(tbl *symtab.Table, inst decode.Instruction) string {
	base := inst.Operand(2)
	expr := tbl.Ref(base)

	var cur *symtab.Type
	if v, ok := tbl.Variables[base]; ok {
		cur = tbl.Types[v.Type]
	}

	for _, idxID := range inst.Operands[3:] {
		if cur != nil && len(cur.Members) > 0 {
			if n, ok := constantIndex(tbl, idxID); ok && n < len(cur.Members) {
				expr += "." + cur.Members[n].Name
				cur = &cur.Members[n].Type
				continue
			}
		}
		expr += fmt.Sprintf("[%s]", tbl.Ref(idxID))
		cur = nil
	}
	return expr
}

// constantIndex resolves id to a small non-negative integer literal, if it
// names an integer constant.
func constantIndex(tbl *symtab.Table, id uint32) (int, bool) {
	c, ok := tbl.Constants[id]
	if !ok {
		return 0, false
	}
	n := 0
	for _, r := range c.Value {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

func emitCompositeConstruct(tr *xlate.Translator, inst decode.Instruction) error {
	typeID := inst.Operand(0)
	typ, ok := tr.Table.Types[typeID]
	if !ok {
		return xerr.MissingSym(typeID)
	}
	args := make([]string, 0, len(inst.Operands)-2)
	for _, id := range inst.Operands[2:] {
		args = append(args, tr.Table.Ref(id))
	}
	return assign(tr, inst, fmt.Sprintf("%s(%s)", typ.Name, strings.Join(args, ", ")))
}

var swizzleLetters = []string{"x", "y", "z", "w"}

func emitCompositeExtract(tr *xlate.Translator, inst decode.Instruction) error {
	base := tr.Table.Ref(inst.Operand(2))
	expr := base
	baseTypeID := uint32(0)
	if v, ok := tr.Table.Variables[inst.Operand(2)]; ok {
		baseTypeID = v.Type
	}
	for _, idx := range inst.Operands[3:] {
		if baseTypeID != 0 {
			if t, ok := tr.Table.Types[baseTypeID]; ok && len(t.Members) > int(idx) {
				expr += "." + t.Members[idx].Name
				baseTypeID = t.Members[idx].Type.ID
				continue
			}
		}
		if int(idx) < len(swizzleLetters) {
			expr += "." + swizzleLetters[idx]
		} else {
			expr += fmt.Sprintf("[%d]", idx)
		}
	}
	return assign(tr, inst, expr)
}

func emitCompositeInsert(tr *xlate.Translator, inst decode.Instruction) error {
	object, composite := tr.Table.Ref(inst.Operand(2)), tr.Table.Ref(inst.Operand(3))
	indices := inst.Operands[4:]
	target := composite
	for _, idx := range indices {
		if int(idx) < len(swizzleLetters) {
			target += "." + swizzleLetters[idx]
		} else {
			target += fmt.Sprintf("[%d]", idx)
		}
	}
	if err := assign(tr, inst, composite); err != nil {
		return err
	}
	writeStmt(tr, fmt.Sprintf("%s = %s;", target, object))
	return nil
}

func emitVectorShuffle(tr *xlate.Translator, inst decode.Instruction) error {
	v1 := tr.Table.Ref(inst.Operand(2))
	components := inst.Operands[4:]
	letters := make([]string, 0, len(components))
	for _, c := range components {
		if int(c) < len(swizzleLetters) {
			letters = append(letters, swizzleLetters[c])
		}
	}
	return assign(tr, inst, fmt.Sprintf("%s.%s", v1, strings.Join(letters, "")))
}

func emitConvert(tr *xlate.Translator, inst decode.Instruction) error {
	typeID := inst.Operand(0)
	typ, ok := tr.Table.Types[typeID]
	if !ok {
		return xerr.MissingSym(typeID)
	}
	return assign(tr, inst, fmt.Sprintf("%s(%s)", typ.Name, tr.Table.Ref(inst.Operand(2))))
}

func emitExtInst(tr *xlate.Translator, inst decode.Instruction) error {
	ext := spirv.GLSLstd450(inst.Operand(3))
	name, ok := spirv.ExtInstName[ext]
	if !ok {
		return xerr.UnsupportedOp(uint16(inst.Opcode))
	}
	args := make([]string, 0, len(inst.Operands)-4)
	for _, id := range inst.Operands[4:] {
		args = append(args, tr.Table.Ref(id))
	}
	return assign(tr, inst, fmt.Sprintf("%s(%s)", name, strings.Join(args, ", ")))
}

func emitFunctionCall(tr *xlate.Translator, inst decode.Instruction) error {
	fnID := inst.Operand(2)
	// The callee may not have been walked yet (helpers can follow their
	// callers in the stream); its OpName, installed in the module's debug
	// section, is enough to render the call, and the prologue's forward
	// declarations make the emitted source legal.
	name := tr.Table.NameOrSynth(fnID)
	if fn, ok := tr.Table.FunctionByID(fnID); ok {
		name = fn.Name
	}
	args := make([]string, 0, len(inst.Operands)-3)
	for _, id := range inst.Operands[3:] {
		args = append(args, tr.Table.Ref(id))
	}
	call := fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
	if rt := tr.Table.Types[inst.Operand(0)]; rt != nil && rt.Name == "void" {
		writeStmt(tr, call+";")
		return nil
	}
	return assign(tr, inst, call)
}

// emitPhi approximates an OpPhi by initializing the result from its first
// incoming value; a faithful rendering would require tracking which
// predecessor block control arrived from, which this repository's linear
// block rendering does not reconstruct.
func emitPhi(tr *xlate.Translator, inst decode.Instruction) error {
	if len(inst.Operands) < 3 {
		return xerr.Malformedf("OpPhi with no incoming values")
	}
	return assign(tr, inst, tr.Table.Ref(inst.Operand(2)))
}
