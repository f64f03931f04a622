package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/xfuel-network/xfengine/xfconfig"
)

var (
	dumpConfigCommand = &cli.Command{
		Action: dumpConfig,
		Name:   "dumpconfig",
		Usage:  "Print the effective configuration as TOML",
	}
	initConfigCommand = &cli.Command{
		Action:    initConfig,
		Name:      "init",
		Usage:     "Write a default configuration file",
		ArgsUsage: "<file>",
	}
)

func dumpConfig(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	out, err := xfconfig.Marshal(cfg)
	if err != nil {
		return err
	}
	os.Stdout.Write(out)
	return nil
}

func initConfig(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("init expects exactly one file argument")
	}
	path := ctx.Args().First()
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists, refusing to overwrite", path)
	}
	if err := xfconfig.Save(path, xfconfig.Defaults); err != nil {
		return err
	}
	fmt.Println("Wrote", path)
	return nil
}
