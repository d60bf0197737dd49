package main

import (
	"io"
	"os"
	"strings"

	"github.com/eon-format/go-eon/encode"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Color  bool `cli:"name=color desc='encode with color'"`
	Braces bool `cli:"name=b aliases=braces desc='surround top-level maps with braces'"`
	Indent int  `cli:"name=indent desc='indent with n spaces instead of a tab'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// fmtOpts are the encoding options safe to write back to files,
// without terminal colors.
func (cfg *MainConfig) fmtOpts() []encode.EncodeOption {
	var res []encode.EncodeOption
	if cfg.Braces {
		res = append(res, encode.EncodeOuterBraces(true))
	}
	if cfg.Indent > 0 {
		res = append(res, encode.EncodeIndent(strings.Repeat(" ", cfg.Indent)))
	}
	return res
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := cfg.fmtOpts()
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	// -color was given explicitly as false
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type FmtConfig struct {
	*MainConfig
	Write bool `cli:"name=w desc='write results back to the source files'"`
	Diff  bool `cli:"name=d desc='display diffs instead of rewriting files'"`
	List  bool `cli:"name=l desc='list files whose formatting differs'"`

	Fmt *cli.Command
}

type ConvertConfig struct {
	*MainConfig

	Convert *cli.Command
}

type ViewConfig struct {
	*MainConfig
	NoComments bool `cli:"name=nc desc='strip comments'"`

	View *cli.Command
}
