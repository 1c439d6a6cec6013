package varlist

import (
	"strings"
	"testing"

	"github.com/shaderkit/spirvtext/internal/spvbuild"
	"github.com/shaderkit/spirvtext/spirv"
	"github.com/shaderkit/spirvtext/target"
)

// vertexInterface builds a module with two inputs and one uniform, plus
// an unnamed private variable and a builtin that must not appear in the
// manifest.
func vertexInterface() []byte {
	b := spvbuild.New()
	tFloat := b.ID()
	tVec2 := b.ID()
	tVec3 := b.ID()
	tVec4 := b.ID()
	tMat4 := b.ID()
	pos := b.ID()
	uv := b.ID()
	mvp := b.ID()
	unnamed := b.ID()
	glPos := b.ID()
	pIn3 := b.ID()
	pIn2 := b.ID()
	pUC := b.ID()
	pPriv := b.ID()
	pOut4 := b.ID()

	b.Name(pos, "pos")
	b.Name(uv, "uv")
	b.Name(mvp, "mvp")
	b.Op(spirv.OpDecorate, glPos, uint32(spirv.DecorationBuiltIn), uint32(spirv.BuiltInPosition))

	b.Op(spirv.OpTypeFloat, tFloat, 32)
	b.Op(spirv.OpTypeVector, tVec2, tFloat, 2)
	b.Op(spirv.OpTypeVector, tVec3, tFloat, 3)
	b.Op(spirv.OpTypeVector, tVec4, tFloat, 4)
	b.Op(spirv.OpTypeMatrix, tMat4, tVec4, 4)
	b.Op(spirv.OpTypePointer, pIn3, uint32(spirv.StorageClassInput), tVec3)
	b.Op(spirv.OpTypePointer, pIn2, uint32(spirv.StorageClassInput), tVec2)
	b.Op(spirv.OpTypePointer, pUC, uint32(spirv.StorageClassUniformConstant), tMat4)
	b.Op(spirv.OpTypePointer, pPriv, uint32(spirv.StorageClassPrivate), tFloat)
	b.Op(spirv.OpTypePointer, pOut4, uint32(spirv.StorageClassOutput), tVec4)
	b.Op(spirv.OpVariable, pIn3, pos, uint32(spirv.StorageClassInput))
	b.Op(spirv.OpVariable, pIn2, uv, uint32(spirv.StorageClassInput))
	b.Op(spirv.OpVariable, pUC, mvp, uint32(spirv.StorageClassUniformConstant))
	b.Op(spirv.OpVariable, pPriv, unnamed, uint32(spirv.StorageClassPrivate))
	b.Op(spirv.OpVariable, pOut4, glPos, uint32(spirv.StorageClassOutput))

	return b.Bytes()
}

func TestTranslate_CodeForm(t *testing.T) {
	out, _, err := Translate(vertexInterface(), target.Target{Language: target.LanguageVarList}, target.StageVertex)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}

	got := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	want := []string{
		"vertex",
		"in vec3 pos",
		"in vec2 uv",
		"uniform mat4 mvp",
	}
	if len(got) != len(want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRenderPrint_DiagnosticForm(t *testing.T) {
	b := spvbuild.New()
	tFloat := b.ID()
	tImage := b.ID()
	tSampled := b.ID()
	pUC := b.ID()
	tex := b.ID()

	b.Name(tex, "tex")
	b.Op(spirv.OpTypeFloat, tFloat, 32)
	b.Op(spirv.OpTypeImage, tImage, tFloat, uint32(spirv.Dim2D), 0, 0, 0, 1, 0)
	b.Op(spirv.OpTypeSampledImage, tSampled, tImage)
	b.Op(spirv.OpTypePointer, pUC, uint32(spirv.StorageClassUniformConstant), tSampled)
	b.Op(spirv.OpVariable, pUC, tex, uint32(spirv.StorageClassUniformConstant))

	_, tr, err := Translate(b.Bytes(), target.Target{Language: target.LanguageVarList}, target.StageFragment)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}

	got := string(RenderPrint(tr.Table, target.StageFragment))
	want := "#shader:fragment\n#uniform:tex:sampler2D\n"
	if got != want {
		t.Errorf("RenderPrint() = %q, want %q", got, want)
	}
}

func TestToSlice_FiltersAndOrders(t *testing.T) {
	_, tr, err := Translate(vertexInterface(), target.Target{Language: target.LanguageVarList}, target.StageVertex)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}

	vars := ToSlice(tr.Table)
	if len(vars) != 3 {
		t.Fatalf("len(vars) = %d, want 3 (unnamed and builtin excluded)", len(vars))
	}
	if vars[0].Name != "pos" || vars[0].Qualifier != "in" || vars[0].Type != "vec3" {
		t.Errorf("vars[0] = %+v", vars[0])
	}
	if vars[2].Name != "mvp" || vars[2].Qualifier != "uniform" || vars[2].Type != "mat4" {
		t.Errorf("vars[2] = %+v", vars[2])
	}
}
