package ops

var CLI struct {
	Status struct {
		Value string `arg:"" help:"Status register value (0x, 0b, 0o or decimal)"`
	} `cmd:"" aliases:"s,stat" help:"Decode a Status register value"`
	Command struct {
		Value string `arg:"" help:"Command register value (0x, 0b, 0o or decimal)"`
	} `cmd:"" aliases:"c,cmd" help:"Decode a Command register value"`
	Dword struct {
		Value string `arg:"" help:"Doubleword read from config offset 0x04"`
	} `cmd:"" aliases:"d" help:"Decode a combined Command/Status doubleword"`
	Build struct {
		Base  string   `help:"Seed the builder from an existing Command value" default:"0"`
		Set   []string `help:"Fields to enable [io,memory,master,special,mwi,vga,parity,serr,fbb,intx]" short:"s"`
		Clear []string `help:"Fields to disable" short:"x"`
	} `cmd:"" aliases:"b" help:"Build a Command register value"`
	Apply struct {
		Dword   string `arg:"" help:"Current Command/Status doubleword"`
		Command string `arg:"" help:"Command value to write"`
	} `cmd:"" aliases:"a" help:"Write a Command value into a Command/Status doubleword"`
	Inspect struct {
		Files  []string `arg:"" type:"existingfile" help:"Config space images (binary, lspci -x text or lz4)"`
		Detail bool     `help:"Print the full field table for every image" short:"d"`
		Quiet  bool     `help:"Do not write progress to stdout" short:"q"`
	} `cmd:"" aliases:"i,insp" help:"Decode the Command/Status registers of config space images"`
	Patch struct {
		File   string   `arg:"" type:"existingfile" help:"Config space image to patch"`
		Set    []string `help:"Fields to enable" short:"s"`
		Clear  []string `help:"Fields to disable" short:"x"`
		Output string   `help:"Output filename; use '-' for stdout" short:"o"`
		Force  bool     `help:"Force overwrite of existing file" short:"f"`
		Lz4    bool     `help:"Write an lz4 frame"`
		Level  int      `help:"lz4 compression level (0-9) [0 Fastest]" default:"0" short:"l"`
		Hex    bool     `help:"Write lspci -x style text"`
	} `cmd:"" aliases:"p" help:"Read-modify-write the Command register inside an image"`

	Cpus    int  `help:"Concurrency [0 synchronous] [-1 auto]" default:"-1" short:"c" env:"PCIREG_CPUS"`
	Verbose bool `help:"Write diagnostics to stderr" short:"v" env:"PCIREG_VERBOSE"`
}
