package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "xcmapdiff").
		WithSynopsis("xcmapdiff [opts] <old> <new>").
		WithDescription(description).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}

const description = `xcmapdiff compares two versions of a Core Data mapping model.

Arguments may be xcmapping.xml documents or .xcmappingmodel bundle
directories.  Differences that are artifacts of regenerating the model
in Xcode (embedded model data, ids, idrefs, mapping numbers) are
ignored; reordered or renumbered but content-identical elements match.

The exit code is 1 when semantic differences are found, 0 otherwise.`
