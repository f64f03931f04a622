package main

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/xfuel-network/xfengine/crypto"
)

type outputInspect struct {
	Address    string `json:"address"`
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey,omitempty"`
}

var privateFlag = &cli.BoolFlag{
	Name:  "private",
	Usage: "include the private key in the output",
}

var commandInspect = &cli.Command{
	Name:      "inspect",
	Usage:     "inspect a keyfile",
	ArgsUsage: "<keyfile>",
	Description: `
Print the address and public key for a keyfile.

Private key information can be printed by using the --private flag;
make sure to use this feature with great caution!`,
	Flags: []cli.Flag{
		jsonFlag,
		privateFlag,
	},
	Action: func(ctx *cli.Context) error {
		key := loadKey(ctx.Args().First())

		out := outputInspect{
			Address:   crypto.PubkeyToAddress(key.PublicKey).Hex(),
			PublicKey: hex.EncodeToString(crypto.FromECDSAPub(&key.PublicKey)),
		}
		if ctx.Bool(privateFlag.Name) {
			out.PrivateKey = hex.EncodeToString(crypto.FromECDSA(key))
		}

		if ctx.Bool(jsonFlag.Name) {
			mustPrintJSON(out)
		} else {
			fmt.Println("Address:    ", out.Address)
			fmt.Println("Public key: ", out.PublicKey)
			if out.PrivateKey != "" {
				fmt.Println("Private key:", out.PrivateKey)
			}
		}
		return nil
	},
}

// loadKey reads a hex-encoded private key file.
func loadKey(path string) *ecdsa.PrivateKey {
	if path == "" {
		fatalf("Keyfile argument required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		fatalf("Failed to read the keyfile at '%s': %v", path, err)
	}
	key, err := crypto.HexToECDSA(strings.TrimSpace(string(raw)))
	if err != nil {
		fatalf("Failed to parse private key: %v", err)
	}
	return key
}
