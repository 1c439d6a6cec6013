// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shaderkit/spirvtext/internal/spvbuild"
	"github.com/shaderkit/spirvtext/spirv"
	"github.com/shaderkit/spirvtext/target"
)

// passthroughVertex builds the scenario module: one input position, one
// output uv, one mvp uniform, and a main that writes gl_Position and uv.
func passthroughVertex() []byte {
	b := spvbuild.New()

	tVoid := b.ID()
	tFloat := b.ID()
	tVec2 := b.ID()
	tVec3 := b.ID()
	tVec4 := b.ID()
	tMat4 := b.ID()
	pos := b.ID()
	uv := b.ID()
	mvp := b.ID()
	glPos := b.ID()
	pIn3 := b.ID()
	pOut2 := b.ID()
	pUC := b.ID()
	pOut4 := b.ID()
	cOne := b.ID()
	cZeroVec2 := b.ID()
	cZero := b.ID()
	fnMain := b.ID()

	b.Name(pos, "pos")
	b.Name(uv, "uv")
	b.Name(mvp, "mvp")
	b.Name(fnMain, "main")
	b.Op(spirv.OpDecorate, glPos, uint32(spirv.DecorationBuiltIn), uint32(spirv.BuiltInPosition))

	b.Op(spirv.OpTypeVoid, tVoid)
	b.Op(spirv.OpTypeFloat, tFloat, 32)
	b.Op(spirv.OpTypeVector, tVec2, tFloat, 2)
	b.Op(spirv.OpTypeVector, tVec3, tFloat, 3)
	b.Op(spirv.OpTypeVector, tVec4, tFloat, 4)
	b.Op(spirv.OpTypeMatrix, tMat4, tVec4, 4)
	b.Op(spirv.OpTypePointer, pIn3, uint32(spirv.StorageClassInput), tVec3)
	b.Op(spirv.OpTypePointer, pOut2, uint32(spirv.StorageClassOutput), tVec2)
	b.Op(spirv.OpTypePointer, pUC, uint32(spirv.StorageClassUniformConstant), tMat4)
	b.Op(spirv.OpTypePointer, pOut4, uint32(spirv.StorageClassOutput), tVec4)
	b.Op(spirv.OpConstant, tFloat, cOne, spvbuild.Float(1))
	b.Op(spirv.OpConstant, tFloat, cZero, spvbuild.Float(0))
	b.Op(spirv.OpConstantComposite, tVec2, cZeroVec2, cZero, cZero)

	b.Op(spirv.OpVariable, pIn3, pos, uint32(spirv.StorageClassInput))
	b.Op(spirv.OpVariable, pOut2, uv, uint32(spirv.StorageClassOutput))
	b.Op(spirv.OpVariable, pUC, mvp, uint32(spirv.StorageClassUniformConstant))
	b.Op(spirv.OpVariable, pOut4, glPos, uint32(spirv.StorageClassOutput))

	b.Op(spirv.OpFunction, tVoid, fnMain, 0, 0)
	label := b.ID()
	b.Op(spirv.OpLabel, label)
	loadedMvp := b.ID()
	b.Op(spirv.OpLoad, tMat4, loadedMvp, mvp)
	loadedPos := b.ID()
	b.Op(spirv.OpLoad, tVec3, loadedPos, pos)
	pos4 := b.ID()
	b.Op(spirv.OpCompositeConstruct, tVec4, pos4, loadedPos, cOne)
	transformed := b.ID()
	b.Op(spirv.OpMatrixTimesVector, tVec4, transformed, loadedMvp, pos4)
	b.Op(spirv.OpStore, glPos, transformed)
	b.Op(spirv.OpStore, uv, cZeroVec2)
	b.Op(spirv.OpReturn)
	b.Op(spirv.OpFunctionEnd)

	return b.Bytes()
}

// lineIndex returns the index of the first line equal to want, or -1.
func lineIndex(lines []string, want string) int {
	for i, l := range lines {
		if l == want {
			return i
		}
	}
	return -1
}

func TestTranslate_PassthroughVertex330(t *testing.T) {
	out, _, err := Translate(passthroughVertex(), target.Target{Version: 330}, target.StageVertex, false)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	text := string(out)
	lines := strings.Split(text, "\n")

	wantOrder := []string{
		"#version 330",
		"in vec3 pos;",
		"out vec2 uv;",
		"uniform mat4 mvp;",
		"void main()",
		"{",
	}
	prev := -1
	for _, want := range wantOrder {
		idx := lineIndex(lines, want)
		if idx < 0 {
			t.Fatalf("output missing line %q:\n%s", want, text)
		}
		if idx < prev {
			t.Fatalf("line %q out of order:\n%s", want, text)
		}
		prev = idx
	}

	if !strings.Contains(text, "gl_Position = ") {
		t.Errorf("output missing gl_Position store:\n%s", text)
	}
	if !strings.Contains(text, "(mvp * ") {
		t.Errorf("output missing matrix product:\n%s", text)
	}
	if !strings.Contains(text, "uv = ") {
		t.Errorf("output missing uv store:\n%s", text)
	}
}

func TestTranslate_PassthroughVertexES100(t *testing.T) {
	out, _, err := Translate(passthroughVertex(), target.Target{Version: 100, ES: true}, target.StageVertex, false)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	text := string(out)
	lines := strings.Split(text, "\n")

	if lines[0] != "#version 100" {
		t.Errorf("first line = %q, want #version 100", lines[0])
	}
	for _, want := range []string{
		"precision mediump float;",
		"attribute vec3 pos;",
		"varying vec2 uv;",
		"uniform mat4 mvp;",
	} {
		if lineIndex(lines, want) < 0 {
			t.Errorf("output missing line %q:\n%s", want, text)
		}
	}
}

func TestTranslate_AndroidExternalImageFragment(t *testing.T) {
	b := spvbuild.New()
	tVoid := b.ID()
	tFloat := b.ID()
	tImage := b.ID()
	tSampled := b.ID()
	pUC := b.ID()
	s := b.ID()
	fnMain := b.ID()

	b.Name(s, "s")
	b.Name(fnMain, "main")
	b.Op(spirv.OpTypeVoid, tVoid)
	b.Op(spirv.OpTypeFloat, tFloat, 32)
	b.Op(spirv.OpTypeImage, tImage, tFloat, uint32(spirv.Dim2D), 0, 0, 0, 1, 0)
	b.Op(spirv.OpTypeSampledImage, tSampled, tImage)
	b.Op(spirv.OpTypePointer, pUC, uint32(spirv.StorageClassUniformConstant), tSampled)
	b.Op(spirv.OpVariable, pUC, s, uint32(spirv.StorageClassUniformConstant))
	b.Op(spirv.OpFunction, tVoid, fnMain, 0, 0)
	b.Op(spirv.OpLabel, b.ID())
	b.Op(spirv.OpReturn)
	b.Op(spirv.OpFunctionEnd)

	tgt := target.Target{System: target.SystemAndroid, Version: 300, ES: true, ExternalImage: true}
	out, _, err := Translate(b.Bytes(), tgt, target.StageFragment, false)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	text := string(out)
	lines := strings.Split(text, "\n")

	if lines[0] != "#version 300 es" {
		t.Errorf("first line = %q, want #version 300 es", lines[0])
	}
	if lines[1] != "#extension GL_OES_EGL_image_external : require" {
		t.Errorf("second line = %q, want the external-image extension", lines[1])
	}
	if lineIndex(lines, "uniform samplerExternalOES s;") < 0 {
		t.Errorf("output missing external sampler declaration:\n%s", text)
	}
}

// tessControl builds scenario d: main calls foo, patch_main writes
// gl_TessLevelOuter[0] and returns.
func tessControl() []byte {
	b := spvbuild.New()
	tVoid := b.ID()
	tFloat := b.ID()
	tInt := b.ID()
	tArr := b.ID()
	cTwo := b.ID()
	cZero := b.ID()
	cOne := b.ID()
	pOut := b.ID()
	pOutF := b.ID()
	tess := b.ID()
	fnMain := b.ID()
	fnFoo := b.ID()
	fnPatch := b.ID()

	b.Name(fnMain, "main")
	b.Name(fnFoo, "foo")
	b.Name(fnPatch, "patch_main")
	b.Op(spirv.OpDecorate, tess, uint32(spirv.DecorationBuiltIn), uint32(spirv.BuiltInTessLevelOuter))

	b.Op(spirv.OpTypeVoid, tVoid)
	b.Op(spirv.OpTypeFloat, tFloat, 32)
	b.Op(spirv.OpTypeInt, tInt, 32, 0)
	b.Op(spirv.OpConstant, tInt, cTwo, 2)
	b.Op(spirv.OpConstant, tInt, cZero, 0)
	b.Op(spirv.OpConstant, tFloat, cOne, spvbuild.Float(1))
	b.Op(spirv.OpTypeArray, tArr, tFloat, cTwo)
	b.Op(spirv.OpTypePointer, pOut, uint32(spirv.StorageClassOutput), tArr)
	b.Op(spirv.OpTypePointer, pOutF, uint32(spirv.StorageClassOutput), tFloat)
	b.Op(spirv.OpVariable, pOut, tess, uint32(spirv.StorageClassOutput))

	b.Op(spirv.OpFunction, tVoid, fnMain, 0, 0)
	b.Op(spirv.OpLabel, b.ID())
	call := b.ID()
	b.Op(spirv.OpFunctionCall, tVoid, call, fnFoo)
	b.Op(spirv.OpReturn)
	b.Op(spirv.OpFunctionEnd)

	b.Op(spirv.OpFunction, tVoid, fnFoo, 0, 0)
	b.Op(spirv.OpLabel, b.ID())
	b.Op(spirv.OpReturn)
	b.Op(spirv.OpFunctionEnd)

	b.Op(spirv.OpFunction, tVoid, fnPatch, 0, 0)
	b.Op(spirv.OpLabel, b.ID())
	chain := b.ID()
	b.Op(spirv.OpAccessChain, pOutF, chain, tess, cZero)
	b.Op(spirv.OpStore, chain, cOne)
	b.Op(spirv.OpReturn)
	b.Op(spirv.OpFunctionEnd)

	return b.Bytes()
}

func TestTranslate_PatchMainSplice(t *testing.T) {
	out, _, err := Translate(tessControl(), target.Target{Version: 400}, target.StageTessControl, false)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	text := string(out)
	lines := strings.Split(text, "\n")

	if strings.Contains(text, "patch_main") {
		t.Errorf("patch_main leaked into the output:\n%s", text)
	}

	mainIdx := lineIndex(lines, "void main()")
	if mainIdx < 0 || mainIdx+1 >= len(lines) || lines[mainIdx+1] != "{" {
		t.Fatalf("main signature/brace not found:\n%s", text)
	}

	wantSplice := []string{
		"\tif (gl_InvocationID == 0)",
		"\t{",
		"\t\tgl_TessLevelOuter[0] = 1.0;",
		"\t}",
		"\tfoo();",
	}
	for i, want := range wantSplice {
		got := lines[mainIdx+2+i]
		if got != want {
			t.Errorf("main line %d = %q, want %q\n%s", mainIdx+2+i, got, want, text)
		}
	}

	// The spliced return; is elided; main keeps its own.
	guard := strings.Index(text, "if (gl_InvocationID == 0)")
	fooCall := guard + strings.Index(text[guard:], "foo();")
	if ret := strings.Index(text[guard:fooCall], "return;"); ret >= 0 {
		t.Errorf("spliced patch_main kept its return:\n%s", text)
	}

	if lineIndex(lines, "void foo();") < 0 {
		t.Errorf("missing forward declaration of foo:\n%s", text)
	}
	if lineIndex(lines, "#version 400") != 0 {
		t.Errorf("tessellation stage did not pin #version 400:\n%s", text)
	}
}

func TestTranslate_SingleVersionDirective(t *testing.T) {
	out, _, err := Translate(passthroughVertex(), target.Target{Version: 330}, target.StageVertex, false)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	lines := strings.Split(string(out), "\n")
	count := 0
	firstContent := ""
	for _, l := range lines {
		if strings.HasPrefix(l, "#version") {
			count++
		}
		if firstContent == "" && strings.TrimSpace(l) != "" {
			firstContent = l
		}
	}
	if count != 1 {
		t.Errorf("#version directives = %d, want exactly 1", count)
	}
	if !strings.HasPrefix(firstContent, "#version") {
		t.Errorf("first non-blank line = %q, want the version directive", firstContent)
	}
}

func TestTranslate_DeclarationIdempotence(t *testing.T) {
	out, _, err := Translate(passthroughVertex(), target.Target{Version: 330}, target.StageVertex, false)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	lines := strings.Split(string(out), "\n")
	for _, decl := range []string{"in vec3 pos;", "out vec2 uv;", "uniform mat4 mvp;"} {
		n := 0
		for _, l := range lines {
			if l == decl {
				n++
			}
		}
		if n != 1 {
			t.Errorf("declaration %q appears %d times, want 1", decl, n)
		}
	}
}

func TestTranslate_Deterministic(t *testing.T) {
	buf := passthroughVertex()
	tgt := target.Target{Version: 330}
	first, _, err := Translate(buf, tgt, target.StageVertex, false)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, _, err := Translate(buf, tgt, target.StageVertex, false)
		if err != nil {
			t.Fatalf("Translate() error = %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("run %d produced different bytes", i)
		}
	}
}

func TestTranslate_FragmentOutputRedirection(t *testing.T) {
	b := spvbuild.New()
	tVoid := b.ID()
	tFloat := b.ID()
	tVec4 := b.ID()
	pOut := b.ID()
	color := b.ID()
	cHalf := b.ID()
	cVec := b.ID()
	fnMain := b.ID()

	b.Name(color, "color")
	b.Name(fnMain, "main")
	b.Op(spirv.OpTypeVoid, tVoid)
	b.Op(spirv.OpTypeFloat, tFloat, 32)
	b.Op(spirv.OpTypeVector, tVec4, tFloat, 4)
	b.Op(spirv.OpTypePointer, pOut, uint32(spirv.StorageClassOutput), tVec4)
	b.Op(spirv.OpConstant, tFloat, cHalf, spvbuild.Float(0.5))
	b.Op(spirv.OpConstantComposite, tVec4, cVec, cHalf, cHalf, cHalf, cHalf)
	b.Op(spirv.OpVariable, pOut, color, uint32(spirv.StorageClassOutput))
	b.Op(spirv.OpFunction, tVoid, fnMain, 0, 0)
	b.Op(spirv.OpLabel, b.ID())
	b.Op(spirv.OpStore, color, cVec)
	b.Op(spirv.OpReturn)
	b.Op(spirv.OpFunctionEnd)
	buf := b.Bytes()

	desktop, _, err := Translate(buf, target.Target{Version: 330}, target.StageFragment, false)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if !strings.Contains(string(desktop), "out vec4 krafix_FragColor;") {
		t.Errorf("desktop >=300 fragment missing redirection declaration:\n%s", desktop)
	}
	if !strings.Contains(string(desktop), "krafix_FragColor = vec4(0.5, 0.5, 0.5, 0.5);") {
		t.Errorf("store not rerouted to krafix_FragColor:\n%s", desktop)
	}
	if strings.Contains(string(desktop), "out vec4 color;") {
		t.Errorf("fragment output declared by name:\n%s", desktop)
	}

	legacy, _, err := Translate(buf, target.Target{Version: 100, ES: true}, target.StageFragment, false)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if !strings.Contains(string(legacy), "gl_FragColor = vec4(0.5, 0.5, 0.5, 0.5);") {
		t.Errorf("legacy store not rerouted to gl_FragColor:\n%s", legacy)
	}
	if strings.Contains(string(legacy), "krafix_FragColor") {
		t.Errorf("legacy target grew the desktop redirection:\n%s", legacy)
	}
}

func TestTranslate_NamePreservation(t *testing.T) {
	out, _, err := Translate(passthroughVertex(), target.Target{Version: 330}, target.StageVertex, false)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	for _, name := range []string{"pos", "uv", "mvp"} {
		if !strings.Contains(string(out), name) {
			t.Errorf("output lost the declared name %q:\n%s", name, out)
		}
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"pos", "pos"},
		{"while", "_while"},
		{"texture", "_texture"},
		{"gl_custom", "_gl_custom"},
		{"", "_unnamed"},
	}
	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplicePatchMain_ElidesReturn(t *testing.T) {
	main := []byte("void main()\n{\n\tfoo();\n}\n")
	patch := []byte("if (gl_InvocationID == 0)\n{\n\twork();\n\treturn;\n}\n")
	got := string(splicePatchMain(main, patch))
	want := "void main()\n{\n\tif (gl_InvocationID == 0)\n\t{\n\t\twork();\n\t}\n\tfoo();\n}\n"
	if got != want {
		t.Errorf("splicePatchMain() =\n%q\nwant\n%q", got, want)
	}
}

func TestTranslate_StructDefinitionsSkipGLPrefixed(t *testing.T) {
	b := spvbuild.New()
	tVoid := b.ID()
	tFloat := b.ID()
	tVec3 := b.ID()
	tLight := b.ID()
	tPerVertex := b.ID()
	pUC := b.ID()
	light := b.ID()
	fnMain := b.ID()

	b.Name(tLight, "Light")
	b.OpStr(spirv.OpMemberName, []uint32{tLight, 0}, "color")
	b.OpStr(spirv.OpMemberName, []uint32{tLight, 1}, "intensity")
	b.Name(tPerVertex, "gl_PerVertex")
	b.Name(light, "light")
	b.Name(fnMain, "main")

	b.Op(spirv.OpTypeVoid, tVoid)
	b.Op(spirv.OpTypeFloat, tFloat, 32)
	b.Op(spirv.OpTypeVector, tVec3, tFloat, 3)
	b.Op(spirv.OpTypeStruct, tLight, tVec3, tFloat)
	b.Op(spirv.OpTypeStruct, tPerVertex, tVec3)
	b.Op(spirv.OpTypePointer, pUC, uint32(spirv.StorageClassUniformConstant), tLight)
	b.Op(spirv.OpVariable, pUC, light, uint32(spirv.StorageClassUniformConstant))
	b.Op(spirv.OpFunction, tVoid, fnMain, 0, 0)
	b.Op(spirv.OpLabel, b.ID())
	b.Op(spirv.OpReturn)
	b.Op(spirv.OpFunctionEnd)

	out, _, err := Translate(b.Bytes(), target.Target{Version: 330}, target.StageVertex, false)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	text := string(out)

	for _, want := range []string{"struct Light {", "\tvec3 color;", "\tfloat intensity;", "uniform Light light;"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "gl_PerVertex") {
		t.Errorf("gl_-prefixed struct leaked into the output:\n%s", text)
	}
}
