// xfengine is the tokenomics engine operator tool. It opens the engine over
// a persistent store and applies system actions, inspects component state,
// and manages the TOML configuration file.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/engine"
	"github.com/xfuel-network/xfengine/log"
	"github.com/xfuel-network/xfengine/xfconfig"
	"github.com/xfuel-network/xfengine/xfdb"
	"github.com/xfuel-network/xfengine/xfdb/leveldb"
	"github.com/xfuel-network/xfengine/xfdb/memorydb"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	dataDirFlag = &cli.StringFlag{
		Name:  "datadir",
		Usage: "directory for the state database (empty for in-memory)",
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "logging verbosity (0=error .. 4=trace)",
		Value: -1,
	}
	ownerFlag = &cli.StringFlag{
		Name:  "owner",
		Usage: "engine owner address (hex)",
	}
)

var app = &cli.App{
	Name:  "xfengine",
	Usage: "XFUEL tokenomics engine operator tool",
	Flags: []cli.Flag{configFlag, dataDirFlag, verbosityFlag, ownerFlag},
	Commands: []*cli.Command{
		execCommand,
		statusCommand,
		dumpConfigCommand,
		initConfigCommand,
	},
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration from file and flags.
func loadConfig(ctx *cli.Context) (xfconfig.Config, error) {
	cfg := xfconfig.Defaults
	if path := ctx.String(configFlag.Name); path != "" {
		var err error
		if cfg, err = xfconfig.Load(path); err != nil {
			return cfg, err
		}
	}
	if ctx.IsSet(dataDirFlag.Name) {
		cfg.DataDir = ctx.String(dataDirFlag.Name)
	}
	if v := ctx.Int(verbosityFlag.Name); v >= 0 {
		cfg.Verbosity = v
	}
	return cfg, cfg.Validate()
}

// openEngine applies the configuration and wires an engine over the
// configured store.
func openEngine(ctx *cli.Context) (*engine.Engine, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	log.SetVerbosity(log.Lvl(cfg.Verbosity))
	cfg.Apply()

	var store xfdb.KeyValueStore
	if cfg.DataDir == "" {
		store = memorydb.New()
	} else {
		store, err = leveldb.New(cfg.DataDir, 16, 16, false)
		if err != nil {
			return nil, fmt.Errorf("open state database: %w", err)
		}
	}
	s := ctx.String(ownerFlag.Name)
	if s == "" {
		return nil, fmt.Errorf("--%s is required", ownerFlag.Name)
	}
	return engine.New(store, common.HexToAddress(s)), nil
}
