package main

import (
	"fmt"
	"math/big"
	"os"

	"github.com/holiman/uint256"
	"github.com/naoina/toml"
	"github.com/urfave/cli/v2"

	"github.com/tos-network/tokencore/common"
	"github.com/tos-network/tokencore/core/token"
	"github.com/tos-network/tokencore/state"
)

// genesisFile is the TOML layout consumed by `tokensim init`:
//
//	[[allocations]]
//	account = "0x..."
//	token   = "0x..."
//	balance = "1000000"
type genesisFile struct {
	Allocations []struct {
		Account string
		Token   string
		Balance string
	}
}

var genesisFlag = &cli.StringFlag{
	Name:     "genesis",
	Usage:    "TOML file with initial balance allocations",
	Required: true,
}

var commandInit = &cli.Command{
	Name:   "init",
	Usage:  "seed a state database from a genesis allocation file",
	Flags:  []cli.Flag{stateDirFlag, genesisFlag},
	Action: runInit,
}

func runInit(ctx *cli.Context) error {
	raw, err := os.ReadFile(ctx.String("genesis"))
	if err != nil {
		return fmt.Errorf("read genesis file: %w", err)
	}
	var genesis genesisFile
	if err := toml.Unmarshal(raw, &genesis); err != nil {
		return fmt.Errorf("parse genesis file: %w", err)
	}

	db, err := state.OpenLevelDB(ctx.String("statedir"))
	if err != nil {
		return err
	}
	defer db.Close()

	for i, alloc := range genesis.Allocations {
		account, err := common.ParseAddress(alloc.Account)
		if err != nil {
			return fmt.Errorf("allocation %d: %w", i, err)
		}
		tokenAddr, err := common.ParseAddress(alloc.Token)
		if err != nil {
			return fmt.Errorf("allocation %d: %w", i, err)
		}
		balance, err := parseAmount(alloc.Balance)
		if err != nil {
			return fmt.Errorf("allocation %d: %w", i, err)
		}
		if err := token.Credit(db, tokenAddr, account, balance); err != nil {
			return fmt.Errorf("allocation %d: %w", i, err)
		}
		log.Infow("seeded balance", "account", account, "token", tokenAddr, "balance", alloc.Balance)
	}
	log.Infow("genesis applied", "allocations", len(genesis.Allocations))
	return nil
}

func parseAmount(s string) (*uint256.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("invalid amount: %q", s)
	}
	amount, overflow := uint256.FromBig(n)
	if overflow {
		return nil, fmt.Errorf("amount out of range: %q", s)
	}
	return amount, nil
}
