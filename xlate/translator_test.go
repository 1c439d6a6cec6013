package xlate

import (
	"errors"
	"testing"

	"github.com/shaderkit/spirvtext/decode"
	"github.com/shaderkit/spirvtext/spirv"
	"github.com/shaderkit/spirvtext/target"
	"github.com/shaderkit/spirvtext/xerr"
)

// recordingBackend counts EmitOp calls and fails on one chosen opcode.
type recordingBackend struct {
	seen   []spirv.OpCode
	failOn spirv.OpCode
	with   error
}

func (b *recordingBackend) EmitOp(tr *Translator, inst decode.Instruction) error {
	b.seen = append(b.seen, inst.Opcode)
	if inst.Opcode == b.failOn {
		return b.with
	}
	return nil
}

func (b *recordingBackend) Finalize(tr *Translator) ([]byte, error) {
	return []byte("done"), nil
}

func instructions() []decode.Instruction {
	return []decode.Instruction{
		{Opcode: spirv.OpTypeVoid, Operands: []uint32{1}},
		{Opcode: spirv.OpFunction, Operands: []uint32{1, 2, 0, 0}},
		{Opcode: spirv.OpLabel, Operands: []uint32{3}},
		{Opcode: spirv.OpReturn},
		{Opcode: spirv.OpFunctionEnd},
	}
}

func TestRun_FeedsTableThenBackend(t *testing.T) {
	backend := &recordingBackend{}
	tr := New(decode.Header{Bound: 8}, target.Target{}, target.StageVertex, backend, false)

	if err := tr.Run(instructions()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(backend.seen) != 5 {
		t.Errorf("backend saw %d ops, want 5", len(backend.seen))
	}
	if len(tr.Table.Functions) != 1 {
		t.Errorf("table recorded %d functions, want 1", len(tr.Table.Functions))
	}
	out, err := tr.Finalize()
	if err != nil || string(out) != "done" {
		t.Errorf("Finalize() = %q, %v", out, err)
	}
}

func TestRun_RecoversUnsupportedOpcode(t *testing.T) {
	backend := &recordingBackend{failOn: spirv.OpReturn, with: xerr.UnsupportedOp(uint16(spirv.OpReturn))}
	tr := New(decode.Header{Bound: 8}, target.Target{}, target.StageVertex, backend, false)

	if err := tr.Run(instructions()); err != nil {
		t.Fatalf("Run() error = %v, want recovery", err)
	}
	if len(tr.Diagnostics) != 1 {
		t.Fatalf("Diagnostics = %v, want one entry", tr.Diagnostics)
	}
	if len(backend.seen) != 5 {
		t.Errorf("walk stopped early: saw %d ops, want 5", len(backend.seen))
	}
}

func TestRun_StrictModeIsFatal(t *testing.T) {
	backend := &recordingBackend{failOn: spirv.OpReturn, with: xerr.UnsupportedOp(uint16(spirv.OpReturn))}
	tr := New(decode.Header{Bound: 8}, target.Target{}, target.StageVertex, backend, true)

	err := tr.Run(instructions())
	var xe *xerr.Error
	if !errors.As(err, &xe) || xe.Kind != xerr.UnsupportedOpcode {
		t.Fatalf("Run() error = %v, want UnsupportedOpcode", err)
	}
}

func TestRun_OtherKindsNeverRecover(t *testing.T) {
	backend := &recordingBackend{failOn: spirv.OpReturn, with: xerr.MissingSym(42)}
	tr := New(decode.Header{Bound: 8}, target.Target{}, target.StageVertex, backend, false)

	err := tr.Run(instructions())
	var xe *xerr.Error
	if !errors.As(err, &xe) || xe.Kind != xerr.MissingSymbol {
		t.Fatalf("Run() error = %v, want MissingSymbol", err)
	}
	if len(tr.Diagnostics) != 0 {
		t.Errorf("fatal error left diagnostics: %v", tr.Diagnostics)
	}
}
