package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/sidestore/xcmapdiff"
	"github.com/sidestore/xcmapdiff/libdiff"
	"github.com/sidestore/xcmapdiff/parse"
	"github.com/sidestore/xcmapdiff/report"
)

func run(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		cfg.Main.Usage(cc, err)
		return cli.ExitCodeErr(2)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: xcmapdiff requires 2 args, got %v", cli.ErrUsage, args)
	}
	oldRoot, err := parse.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("error parsing %s: %w", args[0], err)
	}
	newRoot, err := parse.ParseFile(args[1])
	if err != nil {
		return fmt.Errorf("error parsing %s: %w", args[1], err)
	}

	records := xcmapdiff.Diff(oldRoot, newRoot)
	if cfg.Reverse {
		records = libdiff.Reverse(records)
	}
	if cfg.Filter != "" {
		records, err = report.Filter(records, cfg.Filter)
		if err != nil {
			return err
		}
	}

	if cfg.YAML {
		if err := report.WriteYAML(cc.Out, records); err != nil {
			return err
		}
	} else {
		var rOpts []report.Option
		if cfg.colorSet() {
			rOpts = append(rOpts, report.WithColor(cfg.Color))
		}
		if err := report.New(cc.Out, rOpts...).Write(records); err != nil {
			return err
		}
	}
	if len(records) > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
