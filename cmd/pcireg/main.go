package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/prequel-dev/pcireg/cmd/pcireg/internal/ops"
)

func main() {

	var (
		errS string
		kctx = kong.Parse(&ops.CLI,
			kong.Name("pcireg"),
			kong.Description("Decode and edit PCI Command/Status registers."),
			kong.UsageOnError(),
		)
	)

	switch kctx.Command() {
	case "status <value>":
		if err := ops.RunStatus(); err != nil {
			errS = fmt.Sprintf("fail status: %v", err)
		}
	case "command <value>":
		if err := ops.RunCommand(); err != nil {
			errS = fmt.Sprintf("fail command: %v", err)
		}
	case "dword <value>":
		if err := ops.RunDword(); err != nil {
			errS = fmt.Sprintf("fail dword: %v", err)
		}
	case "build":
		if err := ops.RunBuild(); err != nil {
			errS = fmt.Sprintf("fail build: %v", err)
		}
	case "apply <dword> <command>":
		if err := ops.RunApply(); err != nil {
			errS = fmt.Sprintf("fail apply: %v", err)
		}
	case "inspect <files>":
		if err := ops.RunInspect(); err != nil {
			errS = fmt.Sprintf("fail inspect: %v", err)
		}
	case "patch <file>":
		if err := ops.RunPatch(); err != nil {
			errS = fmt.Sprintf("fail patch: %v", err)
		}
	default:
		errS = fmt.Sprintf("unknown command '%s'", kctx.Command())
	}

	if errS != "" {
		fmt.Fprintf(os.Stderr, "pcireg: %s\n", errS)
		os.Exit(1)
	}
}
