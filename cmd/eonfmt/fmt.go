package main

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/eon-format/go-eon"

	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func fmtRun(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		cfg.Fmt.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Write && cfg.Diff {
		return fmt.Errorf("%w: -w and -d are mutually exclusive", cli.ErrUsage)
	}
	if len(args) == 0 {
		if cfg.Write {
			return fmt.Errorf("%w: -w requires file arguments", cli.ErrUsage)
		}
		in, err := io.ReadAll(cc.In)
		if err != nil {
			return fmt.Errorf("error reading: %w", err)
		}
		out, err := eon.Reformat(in, cfg.fmtOpts()...)
		if err != nil {
			return err
		}
		if cfg.Diff || cfg.List {
			if !bytes.Equal(in, out) {
				if cfg.Diff {
					writeDiff(cc.Out, "<stdin>", in, out)
				}
				return cli.ExitCodeErr(1)
			}
			return nil
		}
		_, err = cc.Out.Write(out)
		return err
	}
	dirty := false
	for _, arg := range args {
		d, err := fmtPath(cfg, cc, arg)
		if err != nil {
			return err
		}
		dirty = dirty || d
	}
	if dirty && (cfg.Diff || cfg.List) {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func fmtPath(cfg *FmtConfig, cc *cli.Context, path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if !info.IsDir() {
		return fmtFile(cfg, cc, path)
	}
	dirty := false
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			return nil
		}
		if filepath.Ext(p) != ".eon" {
			return nil
		}
		fd, err := fmtFile(cfg, cc, p)
		if err != nil {
			return err
		}
		dirty = dirty || fd
		return nil
	})
	return dirty, err
}

// fmtFile reports whether the file's formatting differs from canonical.
func fmtFile(cfg *FmtConfig, cc *cli.Context, path string) (bool, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	out, err := eon.Reformat(src, cfg.fmtOpts()...)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	if bytes.Equal(src, out) {
		if !cfg.Write && !cfg.Diff && !cfg.List {
			_, err = cc.Out.Write(out)
		}
		return false, err
	}
	switch {
	case cfg.Write:
		info, err := os.Stat(path)
		if err != nil {
			return true, err
		}
		if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
			return true, err
		}
	case cfg.Diff:
		writeDiff(cc.Out, path, src, out)
	case cfg.List:
		fmt.Fprintln(cc.Out, path)
	default:
		_, err = cc.Out.Write(out)
		return true, err
	}
	return true, nil
}

func writeDiff(w io.Writer, name string, src, out []byte) {
	fmt.Fprintf(w, "--- %s\n+++ %s (formatted)\n", name, name)
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(src), string(out), false)
	fmt.Fprint(w, dmp.DiffPrettyText(diffs))
}
