package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/xfuel-network/xfengine/crypto"
)

type outputGenerate struct {
	Address string `json:"address"`
	Keyfile string `json:"keyfile"`
}

var commandGenerate = &cli.Command{
	Name:      "generate",
	Usage:     "generate a new signer key",
	ArgsUsage: "[ <keyfile> ]",
	Description: `
Generate a new secp256k1 signer key and write it hex-encoded to the given
file (default signer.key).`,
	Flags: []cli.Flag{
		jsonFlag,
	},
	Action: func(ctx *cli.Context) error {
		keyfilepath := ctx.Args().First()
		if keyfilepath == "" {
			keyfilepath = keyfileFlag.Value
		}
		if _, err := os.Stat(keyfilepath); err == nil {
			fatalf("Keyfile already exists at %s.", keyfilepath)
		} else if !os.IsNotExist(err) {
			fatalf("Error checking if keyfile exists: %v", err)
		}

		key, err := crypto.GenerateKey()
		if err != nil {
			fatalf("Failed to generate key: %v", err)
		}
		if err := os.WriteFile(keyfilepath,
			[]byte(hex.EncodeToString(crypto.FromECDSA(key))), 0600); err != nil {
			fatalf("Failed to write keyfile: %v", err)
		}

		out := outputGenerate{
			Address: crypto.PubkeyToAddress(key.PublicKey).Hex(),
			Keyfile: keyfilepath,
		}
		if ctx.Bool(jsonFlag.Name) {
			mustPrintJSON(out)
		} else {
			fmt.Println("Address:", out.Address)
			fmt.Println("Keyfile:", out.Keyfile)
		}
		return nil
	},
}
