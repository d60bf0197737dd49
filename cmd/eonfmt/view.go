package main

import (
	"fmt"
	"io"
	"os"

	"github.com/eon-format/go-eon/encode"
	"github.com/eon-format/go-eon/parse"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return viewReader(cfg, cc.Out, cc.In)
	}
	for i, file := range args {
		if err := viewFile(cfg, cc.Out, file); err != nil {
			return err
		}
		if i < len(args)-1 {
			cc.Out.Write([]byte("\n"))
		}
	}
	return nil
}

func viewFile(cfg *ViewConfig, w io.Writer, file string) error {
	var (
		f   *os.File
		err error
	)
	if file != "-" {
		f, err = os.Open(file)
		if err != nil {
			return fmt.Errorf("could not open %q: %w", file, err)
		}
		defer f.Close()
	} else {
		f = os.Stdin
	}
	if err := viewReader(cfg, w, f); err != nil {
		return fmt.Errorf("error processing %s: %w", file, err)
	}
	return nil
}

func viewReader(cfg *ViewConfig, w io.Writer, r io.Reader) error {
	in, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("error reading: %w", err)
	}
	node, err := parse.Parse(in)
	if err != nil {
		return err
	}
	opts := cfg.encOpts(w)
	if cfg.NoComments {
		opts = append(opts, encode.EncodeComments(false))
	}
	return encode.Encode(node, w, opts...)
}
