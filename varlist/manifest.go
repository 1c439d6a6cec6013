package varlist

import (
	"fmt"
	"os"
	"sort"

	"github.com/shaderkit/spirvtext/spirv"
	"github.com/shaderkit/spirvtext/symtab"
	"github.com/shaderkit/spirvtext/target"
	"github.com/shaderkit/spirvtext/xerr"
)

// InterfaceVariable is one externally-visible shader interface variable.
type InterfaceVariable struct {
	Name      string
	Type      string
	Qualifier string // "uniform", "in", or "out"
}

// ToSlice collects the table's named Input/Output/UniformConstant
// variables, in ascending id order, as the common base both text sinks
// render from.
func ToSlice(tbl *symtab.Table) []InterfaceVariable {
	ids := make([]uint32, 0, len(tbl.Variables))
	for id := range tbl.Variables {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []InterfaceVariable
	for _, id := range ids {
		v := tbl.Variables[id]
		name, named := tbl.Names[id]
		if !named || name == "" {
			continue
		}
		qual, ok := qualifierFor(v.Storage)
		if !ok {
			continue
		}
		typ := tbl.Types[v.Type]
		typeName := "unknown"
		if typ != nil {
			typeName = typ.Name
		}
		out = append(out, InterfaceVariable{Name: name, Type: typeName, Qualifier: qual})
	}
	return out
}

func qualifierFor(storage spirv.StorageClass) (string, bool) {
	switch storage {
	case spirv.StorageClassUniformConstant:
		return "uniform", true
	case spirv.StorageClassInput:
		return "in", true
	case spirv.StorageClassOutput:
		return "out", true
	default:
		return "", false
	}
}

// printQualifier is the diagnostic form's spelled-out qualifier.
func printQualifier(qual string) string {
	switch qual {
	case "in":
		return "input"
	case "out":
		return "output"
	default:
		return qual
	}
}

func stageHeader(stage target.Stage) string {
	return stage.String() + "\n"
}

// RenderCode renders the outputCode form: the stage name alone on the
// first line, then one "<qualifier> <type> <name>" line per interface
// variable.
func RenderCode(tbl *symtab.Table, stage target.Stage) []byte {
	buf := []byte(stageHeader(stage))
	for _, v := range ToSlice(tbl) {
		buf = append(buf, fmt.Sprintf("%s %s %s\n", v.Qualifier, v.Type, v.Name)...)
	}
	return buf
}

// RenderPrint renders the diagnostic form: a "#shader:<stage>" header
// line, then one "#<qualifier>:<name>:<type>" line per variable, with the
// qualifier spelled out as input/output/uniform. Intended for stderr.
func RenderPrint(tbl *symtab.Table, stage target.Stage) []byte {
	buf := []byte("#shader:" + stage.String() + "\n")
	for _, v := range ToSlice(tbl) {
		buf = append(buf, fmt.Sprintf("#%s:%s:%s\n", printQualifier(v.Qualifier), v.Name, v.Type)...)
	}
	return buf
}

// WriteFile writes the outputCode form to path, or to stdout when path is
// "--".
func WriteFile(tbl *symtab.Table, stage target.Stage, path string) error {
	data := RenderCode(tbl, stage)
	if path == "--" {
		if _, err := os.Stdout.Write(data); err != nil {
			return xerr.IOFailed(err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return xerr.IOFailed(err)
	}
	return nil
}

// Print writes the diagnostic form to stderr.
func Print(tbl *symtab.Table, stage target.Stage) error {
	if _, err := os.Stderr.Write(RenderPrint(tbl, stage)); err != nil {
		return xerr.IOFailed(err)
	}
	return nil
}
