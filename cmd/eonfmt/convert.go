package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"os"

	"github.com/eon-format/go-eon"
	"github.com/eon-format/go-eon/bind"
	"github.com/eon-format/go-eon/ir"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		cfg.Convert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return convertReader(cfg, cc.Out, cc.In)
	}
	for _, file := range args {
		if err := convertFile(cfg, cc.Out, file); err != nil {
			return err
		}
	}
	return nil
}

func convertFile(cfg *ConvertConfig, w io.Writer, file string) error {
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
	if err := convertReader(cfg, w, f); err != nil {
		return fmt.Errorf("error processing %s: %w", file, err)
	}
	return nil
}

// convertReader reads yaml (or json, which yaml subsumes) documents
// and writes them out as eon. A multi-document stream becomes a
// top-level list.
func convertReader(cfg *ConvertConfig, w io.Writer, r io.Reader) error {
	dec := yaml.NewDecoder(r, yaml.UseOrderedMap())
	var nodes []*ir.Node
	for i := 0; ; i++ {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("error decoding document %d: %w", i, err)
		}
		n, err := yamlNode(v)
		if err != nil {
			return fmt.Errorf("error converting document %d: %w", i, err)
		}
		nodes = append(nodes, n)
	}
	var node *ir.Node
	switch len(nodes) {
	case 0:
		node = ir.FromKeyVals(nil)
	case 1:
		node = nodes[0]
	default:
		node = ir.FromSlice(nodes)
	}
	out, err := eon.Format(node, cfg.fmtOpts()...)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func yamlNode(v any) (*ir.Node, error) {
	switch t := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(t), nil
	case int:
		return ir.FromInt(int64(t)), nil
	case int64:
		return ir.FromInt(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return ir.FromBigInt(new(big.Int).SetUint64(t)), nil
		}
		return ir.FromInt(int64(t)), nil
	case float64:
		return ir.FromFloat(t), nil
	case string:
		return ir.FromString(t), nil
	case yaml.MapSlice:
		kvs := make([]ir.KeyVal, 0, len(t))
		for _, item := range t {
			k, err := yamlNode(item.Key)
			if err != nil {
				return nil, err
			}
			val, err := yamlNode(item.Value)
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, ir.KeyVal{Key: k, Val: val})
		}
		return ir.FromKeyVals(kvs), nil
	case []any:
		vals := make([]*ir.Node, len(t))
		for i, e := range t {
			n, err := yamlNode(e)
			if err != nil {
				return nil, err
			}
			vals[i] = n
		}
		return ir.FromSlice(vals), nil
	default:
		// timestamps and other scalar oddities
		return bind.ToNode(v)
	}
}
