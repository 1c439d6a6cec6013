// Command spirvinspect is an interactive, read-only browser over a decoded
// SPIR-V module: the instruction stream, the type table, and the
// interface-variable manifest, each as a scrollable view. It decodes
// the module once and never emits shader code.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/shaderkit/spirvtext/decode"
	"github.com/shaderkit/spirvtext/inspect"
	"github.com/shaderkit/spirvtext/target"
)

func main() {
	stageFlag := flag.String("stage", "fragment", "shader stage the module was compiled for")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: spirvinspect [--stage <stage>] <file.spv>")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	stage, err := parseStage(*stageFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	buf, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	instructions, header, err := decode.DecodeAll(buf)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := inspect.Run(flag.Arg(0), header, instructions, stage); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseStage(s string) (target.Stage, error) {
	switch s {
	case "vertex":
		return target.StageVertex, nil
	case "fragment":
		return target.StageFragment, nil
	case "geometry":
		return target.StageGeometry, nil
	case "tesscontrol":
		return target.StageTessControl, nil
	case "tessevaluation":
		return target.StageTessEvaluation, nil
	case "compute":
		return target.StageCompute, nil
	default:
		return 0, fmt.Errorf("unknown --stage %q", s)
	}
}
