package main

import (
	"os"

	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Reverse bool   `cli:"name=r desc='report the diff with old and new swapped'"`
	YAML    bool   `cli:"name=y aliases=yaml desc='output records as yaml'"`
	Color   bool   `cli:"name=color desc='force colored output'"`
	Filter  string `cli:"name=filter desc='keep only records matching an expression'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) colorSet() bool {
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		return opt.Value != nil
	}
	return false
}
