package symtab

import (
	"testing"

	"github.com/shaderkit/spirvtext/decode"
	"github.com/shaderkit/spirvtext/spirv"
	"github.com/shaderkit/spirvtext/target"
)

func newTable() *Table {
	return New(64, target.Target{Version: 330}, target.StageVertex)
}

func apply(t *testing.T, tbl *Table, op spirv.OpCode, operands ...uint32) {
	t.Helper()
	if err := tbl.Apply(decode.Instruction{Opcode: op, Operands: operands}); err != nil {
		t.Fatalf("Apply(%v) error = %v", op, err)
	}
}

func applyStr(t *testing.T, tbl *Table, op spirv.OpCode, s string, operands ...uint32) {
	t.Helper()
	if err := tbl.Apply(decode.Instruction{Opcode: op, Operands: operands, String: s}); err != nil {
		t.Fatalf("Apply(%v) error = %v", op, err)
	}
}

func TestApply_ScalarAndVectorTypes(t *testing.T) {
	tbl := newTable()
	apply(t, tbl, spirv.OpTypeVoid, 1)
	apply(t, tbl, spirv.OpTypeBool, 2)
	apply(t, tbl, spirv.OpTypeInt, 3, 32, 1)
	apply(t, tbl, spirv.OpTypeInt, 4, 32, 0)
	apply(t, tbl, spirv.OpTypeFloat, 5, 32)
	apply(t, tbl, spirv.OpTypeVector, 6, 5, 3)
	apply(t, tbl, spirv.OpTypeVector, 7, 3, 2)
	apply(t, tbl, spirv.OpTypeVector, 8, 4, 4)
	apply(t, tbl, spirv.OpTypeVector, 9, 2, 2)

	want := map[uint32]string{
		1: "void", 2: "bool", 3: "int", 4: "uint", 5: "float",
		6: "vec3", 7: "ivec2", 8: "uvec4", 9: "bvec2",
	}
	for id, name := range want {
		typ, ok := tbl.Types[id]
		if !ok {
			t.Errorf("type %%%d missing", id)
			continue
		}
		if typ.Name != name {
			t.Errorf("type %%%d name = %q, want %q", id, typ.Name, name)
		}
	}
}

func TestApply_MatrixTypes(t *testing.T) {
	tbl := newTable()
	apply(t, tbl, spirv.OpTypeFloat, 1, 32)
	apply(t, tbl, spirv.OpTypeVector, 2, 1, 4)
	apply(t, tbl, spirv.OpTypeMatrix, 3, 2, 4)

	if typ := tbl.Types[3]; typ == nil || typ.Name != "mat4" {
		t.Errorf("square matrix type = %+v, want mat4", typ)
	}

	// Non-square matrices fall through without installing a type at all;
	// later lookups of that id find nothing.
	apply(t, tbl, spirv.OpTypeVector, 4, 1, 3)
	apply(t, tbl, spirv.OpTypeMatrix, 5, 4, 2)
	if _, ok := tbl.Types[5]; ok {
		t.Error("non-square matrix installed a type, want fallthrough")
	}
}

func TestApply_ArrayAndPointerTypes(t *testing.T) {
	tbl := newTable()
	apply(t, tbl, spirv.OpTypeFloat, 1, 32)
	apply(t, tbl, spirv.OpTypeInt, 2, 32, 0)
	apply(t, tbl, spirv.OpConstant, 2, 3, 4) // uint 4
	apply(t, tbl, spirv.OpTypeArray, 4, 1, 3)
	apply(t, tbl, spirv.OpTypePointer, 5, uint32(spirv.StorageClassInput), 4)

	arr := tbl.Types[4]
	if arr == nil || !arr.IsArray || arr.Length != 4 || arr.Name != "float" {
		t.Fatalf("array type = %+v, want float[4]", arr)
	}
	ptr := tbl.Types[5]
	if ptr == nil || !ptr.IsPointer || !ptr.IsArray || ptr.Name != "float" {
		t.Fatalf("pointer type = %+v, want pointer to float[4]", ptr)
	}
}

func TestApply_StructTypeWithMemberNames(t *testing.T) {
	tbl := newTable()
	applyStr(t, tbl, spirv.OpName, "Light", 4)
	applyStr(t, tbl, spirv.OpMemberName, "color", 4, 0)
	applyStr(t, tbl, spirv.OpMemberName, "intensity", 4, 1)
	apply(t, tbl, spirv.OpTypeFloat, 1, 32)
	apply(t, tbl, spirv.OpTypeVector, 2, 1, 3)
	apply(t, tbl, spirv.OpTypeStruct, 4, 2, 1)

	s := tbl.Types[4]
	if s == nil || s.Name != "Light" {
		t.Fatalf("struct type = %+v, want Light", s)
	}
	if len(s.Members) != 2 {
		t.Fatalf("len(Members) = %d, want 2", len(s.Members))
	}
	if s.Members[0].Name != "color" || s.Members[0].Type.Name != "vec3" {
		t.Errorf("member 0 = %+v, want vec3 color", s.Members[0])
	}
	if s.Members[1].Name != "intensity" || s.Members[1].Type.Name != "float" {
		t.Errorf("member 1 = %+v, want float intensity", s.Members[1])
	}
}

func TestApply_ImageTypes(t *testing.T) {
	tbl := newTable()
	apply(t, tbl, spirv.OpTypeFloat, 1, 32)
	apply(t, tbl, spirv.OpTypeImage, 2, 1, uint32(spirv.Dim2D), 0, 0, 0, 1, 0)
	apply(t, tbl, spirv.OpTypeSampledImage, 3, 2)
	apply(t, tbl, spirv.OpTypeImage, 4, 1, uint32(spirv.DimCube), 0, 0, 0, 1, 0)

	if typ := tbl.Types[2]; typ == nil || typ.Name != "sampler2D" {
		t.Errorf("2D image type = %+v, want sampler2D", typ)
	}
	if typ := tbl.Types[3]; typ == nil || typ.Name != "sampler2D" {
		t.Errorf("sampled image type = %+v, want sampler2D", typ)
	}
	if typ := tbl.Types[4]; typ == nil || typ.Name != "samplerCube" {
		t.Errorf("cube image type = %+v, want samplerCube", typ)
	}
}

func TestApply_ExternalImageSubstitution(t *testing.T) {
	tgt := target.Target{System: target.SystemAndroid, Version: 300, ES: true, ExternalImage: true}
	tbl := New(16, tgt, target.StageFragment)
	apply(t, tbl, spirv.OpTypeFloat, 1, 32)
	apply(t, tbl, spirv.OpTypeImage, 2, 1, uint32(spirv.Dim2D), 0, 0, 0, 1, 0)

	if typ := tbl.Types[2]; typ == nil || typ.Name != "samplerExternalOES" {
		t.Errorf("image type = %+v, want samplerExternalOES", typ)
	}
	if !tbl.NeedsExternalImageExtension {
		t.Error("NeedsExternalImageExtension not set")
	}
}

func TestApply_Constants(t *testing.T) {
	tbl := newTable()
	apply(t, tbl, spirv.OpTypeFloat, 1, 32)
	apply(t, tbl, spirv.OpTypeInt, 2, 32, 1)
	apply(t, tbl, spirv.OpTypeBool, 3)
	apply(t, tbl, spirv.OpConstant, 1, 10, 0x3f800000) // float 1.0
	apply(t, tbl, spirv.OpConstant, 1, 11, 0x3f000000) // float 0.5
	apply(t, tbl, spirv.OpConstant, 2, 12, 0xffffffff) // int -1
	apply(t, tbl, spirv.OpConstantTrue, 3, 13)
	apply(t, tbl, spirv.OpConstantFalse, 3, 14)

	want := map[uint32]string{
		10: "1.0", 11: "0.5", 12: "-1", 13: "true", 14: "false",
	}
	for id, value := range want {
		c, ok := tbl.Constants[id]
		if !ok {
			t.Errorf("constant %%%d missing", id)
			continue
		}
		if c.Value != value {
			t.Errorf("constant %%%d = %q, want %q", id, c.Value, value)
		}
	}
}

func TestApply_ConstantComposite(t *testing.T) {
	tbl := newTable()
	apply(t, tbl, spirv.OpTypeFloat, 1, 32)
	apply(t, tbl, spirv.OpTypeVector, 2, 1, 2)
	apply(t, tbl, spirv.OpConstant, 1, 3, 0x3f800000)
	apply(t, tbl, spirv.OpConstant, 1, 4, 0x40000000)
	apply(t, tbl, spirv.OpConstantComposite, 2, 5, 3, 4)

	if c := tbl.Constants[5]; c == nil || c.Value != "vec2(1.0, 2.0)" {
		t.Errorf("composite constant = %+v, want vec2(1.0, 2.0)", c)
	}
}

func TestApply_VariableBuiltinDecoration(t *testing.T) {
	tbl := newTable()
	apply(t, tbl, spirv.OpDecorate, 7, uint32(spirv.DecorationBuiltIn), uint32(spirv.BuiltInPosition))
	apply(t, tbl, spirv.OpTypeFloat, 1, 32)
	apply(t, tbl, spirv.OpTypeVector, 2, 1, 4)
	apply(t, tbl, spirv.OpTypePointer, 3, uint32(spirv.StorageClassOutput), 2)
	apply(t, tbl, spirv.OpVariable, 3, 7, uint32(spirv.StorageClassOutput))

	v := tbl.Variables[7]
	if v == nil {
		t.Fatal("variable %7 missing")
	}
	if !v.Builtin {
		t.Error("variable not marked builtin")
	}
	if v.Storage != spirv.StorageClassOutput {
		t.Errorf("storage = %v, want Output", v.Storage)
	}
}

func TestApply_LocationDecoration(t *testing.T) {
	tbl := newTable()
	apply(t, tbl, spirv.OpDecorate, 5, uint32(spirv.DecorationLocation), 3)
	dec := tbl.Decorations[5]
	if dec == nil || dec.Location == nil || *dec.Location != 3 {
		t.Errorf("decoration = %+v, want Location 3", dec)
	}
}

func TestNameOrSynth(t *testing.T) {
	tbl := newTable()
	applyStr(t, tbl, spirv.OpName, "position", 4)

	if got := tbl.NameOrSynth(4); got != "position" {
		t.Errorf("NameOrSynth(4) = %q, want position", got)
	}
	if got := tbl.NameOrSynth(9); got != "_9" {
		t.Errorf("NameOrSynth(9) = %q, want _9", got)
	}
}

func TestNameOrSynth_Sanitize(t *testing.T) {
	tbl := newTable()
	tbl.Sanitize = func(s string) string { return "s_" + s }
	applyStr(t, tbl, spirv.OpName, "while", 4)

	if got := tbl.NameOrSynth(4); got != "s_while" {
		t.Errorf("NameOrSynth(4) = %q, want s_while", got)
	}
	// Synthesized names never pass through the sanitizer.
	if got := tbl.NameOrSynth(9); got != "_9" {
		t.Errorf("NameOrSynth(9) = %q, want _9", got)
	}
}

func TestRefStrict_MissingSymbol(t *testing.T) {
	tbl := newTable()
	if _, err := tbl.RefStrict(42); err == nil {
		t.Fatal("RefStrict(42) = nil error, want MissingSymbol")
	}
	tbl.SetRef(42, "(a + b)")
	ref, err := tbl.RefStrict(42)
	if err != nil || ref != "(a + b)" {
		t.Errorf("RefStrict(42) = %q, %v, want (a + b)", ref, err)
	}
}

func TestApply_FunctionLifecycle(t *testing.T) {
	tbl := newTable()
	applyStr(t, tbl, spirv.OpName, "helper", 8)
	apply(t, tbl, spirv.OpTypeVoid, 1)
	apply(t, tbl, spirv.OpTypeFloat, 2, 32)
	apply(t, tbl, spirv.OpFunction, 1, 8, 0, 3)
	apply(t, tbl, spirv.OpFunctionParameter, 2, 9)
	if tbl.Current == nil || tbl.Current.Name != "helper" {
		t.Fatalf("Current = %+v, want helper", tbl.Current)
	}
	if len(tbl.Current.Parameters) != 1 || tbl.Current.Parameters[0].ID != 9 {
		t.Errorf("Parameters = %+v, want one with id 9", tbl.Current.Parameters)
	}
	apply(t, tbl, spirv.OpFunctionEnd)
	if tbl.Current != nil {
		t.Error("Current still set after OpFunctionEnd")
	}
	if fn, ok := tbl.FunctionByID(8); !ok || fn.Name != "helper" {
		t.Errorf("FunctionByID(8) = %+v, %v", fn, ok)
	}
}
