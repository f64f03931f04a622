// xfkey manages earnings attestation signer keys: generation, inspection,
// and signing/verifying proof payloads for the earnings verifier.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var app = &cli.App{
	Name:  "xfkey",
	Usage: "XFUEL attestation key manager",
	Commands: []*cli.Command{
		commandGenerate,
		commandInspect,
		commandSignProof,
		commandVerifyProof,
	},
}

// Commonly used command line flags.
var (
	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "output JSON instead of human-readable format",
	}
	keyfileFlag = &cli.StringFlag{
		Name:  "keyfile",
		Usage: "file containing a hex-encoded private key",
		Value: "signer.key",
	}
)

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// fatalf reports an error to stderr and exits.
func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Fatal: "+format+"\n", args...)
	os.Exit(1)
}

// mustPrintJSON prints x as indented JSON or dies trying.
func mustPrintJSON(x interface{}) {
	out, err := json.MarshalIndent(x, "", "  ")
	if err != nil {
		fatalf("Failed to marshal JSON output: %v", err)
	}
	fmt.Println(string(out))
}
