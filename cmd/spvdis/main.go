// Command spvdis disassembles a SPIR-V binary module into a readable
// listing: the header fields as comments, then one line per instruction
// with its opcode name and operand words. Useful when deciding why a
// translation produced the output it did.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/shaderkit/spirvtext/decode"
)

func formatInstruction(inst decode.Instruction) string {
	var sb strings.Builder
	sb.WriteString(inst.Opcode.String())
	for _, w := range inst.Operands {
		fmt.Fprintf(&sb, " %d", w)
	}
	if inst.String != "" {
		fmt.Fprintf(&sb, " %q", inst.String)
	}
	return sb.String()
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: spvdis <file.spv>")
		os.Exit(2)
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	instructions, header, err := decode.DecodeAll(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	major, minor := header.VersionMajorMinor()
	fmt.Printf("; SPIR-V\n")
	fmt.Printf("; Version: %d.%d\n", major, minor)
	fmt.Printf("; Generator: 0x%08X\n", header.Generator)
	fmt.Printf("; Bound: %d\n", header.Bound)
	fmt.Printf("; Schema: %d\n", header.Schema)
	fmt.Println()
	for _, inst := range instructions {
		fmt.Println(formatInstruction(inst))
	}
}
