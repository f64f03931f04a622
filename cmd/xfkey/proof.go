package main

import (
	"fmt"
	"math/big"

	"github.com/urfave/cli/v2"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/common/hexutil"
	"github.com/xfuel-network/xfengine/earnproof"
)

var (
	accountFlag = &cli.StringFlag{
		Name:     "account",
		Usage:    "account the earnings are attested for",
		Required: true,
	}
	earningsFlag = &cli.StringFlag{
		Name:     "earnings",
		Usage:    "attested earnings in base token units (decimal)",
		Required: true,
	}
	nonceFlag = &cli.Uint64Flag{
		Name:  "nonce",
		Usage: "proof nonce, unique per account",
	}
	signatureFlag = &cli.StringFlag{
		Name:     "signature",
		Usage:    "0x-prefixed 65-byte proof signature",
		Required: true,
	}
)

type outputSignProof struct {
	Account   string `json:"account"`
	Earnings  string `json:"earnings"`
	Nonce     uint64 `json:"nonce"`
	Signer    string `json:"signer"`
	Signature string `json:"signature"`
}

var commandSignProof = &cli.Command{
	Name:  "signproof",
	Usage: "sign an earnings attestation",
	Description: `
Sign an earnings attestation for an account with the given signer key. The
output signature can be submitted in a PROOF_VERIFY action payload.`,
	Flags: []cli.Flag{
		jsonFlag,
		keyfileFlag,
		accountFlag,
		earningsFlag,
		nonceFlag,
	},
	Action: func(ctx *cli.Context) error {
		key := loadKey(ctx.String(keyfileFlag.Name))
		account, earnings := parseProofArgs(ctx)
		nonce := ctx.Uint64(nonceFlag.Name)

		sig, err := earnproof.SignProof(key, account, earnings, nonce)
		if err != nil {
			fatalf("Failed to sign proof: %v", err)
		}
		signer, err := earnproof.RecoverSigner(account, earnings, nonce, sig)
		if err != nil {
			fatalf("Failed to self-check signature: %v", err)
		}

		out := outputSignProof{
			Account:   account.Hex(),
			Earnings:  earnings.String(),
			Nonce:     nonce,
			Signer:    signer.Hex(),
			Signature: hexutil.Encode(sig),
		}
		if ctx.Bool(jsonFlag.Name) {
			mustPrintJSON(out)
		} else {
			fmt.Println("Account:  ", out.Account)
			fmt.Println("Earnings: ", out.Earnings)
			fmt.Println("Nonce:    ", out.Nonce)
			fmt.Println("Signer:   ", out.Signer)
			fmt.Println("Signature:", out.Signature)
		}
		return nil
	},
}

type outputVerifyProof struct {
	Signer string `json:"signer"`
}

var commandVerifyProof = &cli.Command{
	Name:  "verifyproof",
	Usage: "recover the signer of an earnings attestation",
	Description: `
Recover and print the address that signed an earnings attestation. Whether
that signer is authorized is decided by the on-ledger signer set, not by
this tool.`,
	Flags: []cli.Flag{
		jsonFlag,
		accountFlag,
		earningsFlag,
		nonceFlag,
		signatureFlag,
	},
	Action: func(ctx *cli.Context) error {
		account, earnings := parseProofArgs(ctx)
		sig, err := hexutil.Decode(ctx.String(signatureFlag.Name))
		if err != nil {
			fatalf("Invalid signature: %v", err)
		}

		signer, err := earnproof.RecoverSigner(account, earnings, ctx.Uint64(nonceFlag.Name), sig)
		if err != nil {
			fatalf("Failed to recover signer: %v", err)
		}

		if ctx.Bool(jsonFlag.Name) {
			mustPrintJSON(outputVerifyProof{Signer: signer.Hex()})
		} else {
			fmt.Println("Signer:", signer.Hex())
		}
		return nil
	},
}

func parseProofArgs(ctx *cli.Context) (common.Address, *big.Int) {
	addr := ctx.String(accountFlag.Name)
	if !common.IsHexAddress(addr) {
		fatalf("Invalid account address %q", addr)
	}
	earnings, ok := new(big.Int).SetString(ctx.String(earningsFlag.Name), 10)
	if !ok || earnings.Sign() <= 0 {
		fatalf("Invalid earnings amount %q", ctx.String(earningsFlag.Name))
	}
	return common.HexToAddress(addr), earnings
}
