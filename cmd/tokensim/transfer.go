package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tos-network/tokencore/common"
	"github.com/tos-network/tokencore/core/token"
	"github.com/tos-network/tokencore/core/types"
	"github.com/tos-network/tokencore/state"
)

var commandBalance = &cli.Command{
	Name:  "balance",
	Usage: "read the balance of an (account, token) pair",
	Flags: []cli.Flag{
		stateDirFlag,
		&cli.StringFlag{Name: "account", Required: true},
		&cli.StringFlag{Name: "token", Required: true},
	},
	Action: runBalance,
}

var commandTransfer = &cli.Command{
	Name:  "transfer",
	Usage: "apply a single-pair transparent transfer",
	Flags: []cli.Flag{
		stateDirFlag,
		&cli.StringFlag{Name: "from", Required: true},
		&cli.StringFlag{Name: "to", Required: true},
		&cli.StringFlag{Name: "token", Required: true},
		&cli.StringFlag{Name: "amount", Required: true},
	},
	Action: runTransfer,
}

var commandMulti = &cli.Command{
	Name:  "multi",
	Usage: "apply a multi-leg transfer descriptor from a JSON file",
	Flags: []cli.Flag{
		stateDirFlag,
		&cli.StringFlag{Name: "file", Usage: "JSON transfer descriptor", Required: true},
	},
	Action: runMulti,
}

func openState(ctx *cli.Context) (*state.LevelDBStateDB, error) {
	return state.OpenLevelDB(ctx.String("statedir"))
}

func runBalance(ctx *cli.Context) error {
	db, err := openState(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	account, err := common.ParseAddress(ctx.String("account"))
	if err != nil {
		return err
	}
	tokenAddr, err := common.ParseAddress(ctx.String("token"))
	if err != nil {
		return err
	}
	balance := token.ReadBalance(db, tokenAddr, account)
	fmt.Printf("%s\n", balance.ToBig())
	return nil
}

func runTransfer(ctx *cli.Context) error {
	db, err := openState(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	from, err := common.ParseAddress(ctx.String("from"))
	if err != nil {
		return err
	}
	to, err := common.ParseAddress(ctx.String("to"))
	if err != nil {
		return err
	}
	tokenAddr, err := common.ParseAddress(ctx.String("token"))
	if err != nil {
		return err
	}
	amount, err := parseAmount(ctx.String("amount"))
	if err != nil {
		return err
	}

	env := token.NewTxEnv()
	if err := token.ApplyTransfer(db, env, from, to, tokenAddr, amount); err != nil {
		return err
	}
	printOutcome(env)
	return nil
}

// transferFile is the JSON layout consumed by `tokensim multi`.
type transferFile struct {
	Sources []transferLegJSON `json:"sources"`
	Targets []transferLegJSON `json:"targets"`
}

type transferLegJSON struct {
	Account string `json:"account"`
	Token   string `json:"token"`
	Amount  string `json:"amount"`
}

func parseLegs(legs []transferLegJSON) ([]token.TransferLeg, error) {
	out := make([]token.TransferLeg, 0, len(legs))
	for i, raw := range legs {
		account, err := common.ParseAddress(raw.Account)
		if err != nil {
			return nil, fmt.Errorf("leg %d: %w", i, err)
		}
		tokenAddr, err := common.ParseAddress(raw.Token)
		if err != nil {
			return nil, fmt.Errorf("leg %d: %w", i, err)
		}
		amount, err := parseAmount(raw.Amount)
		if err != nil {
			return nil, fmt.Errorf("leg %d: %w", i, err)
		}
		out = append(out, token.TransferLeg{Account: account, Token: tokenAddr, Amount: amount})
	}
	return out, nil
}

func runMulti(ctx *cli.Context) error {
	raw, err := os.ReadFile(ctx.String("file"))
	if err != nil {
		return fmt.Errorf("read transfer file: %w", err)
	}
	var file transferFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse transfer file: %w", err)
	}
	sources, err := parseLegs(file.Sources)
	if err != nil {
		return fmt.Errorf("sources: %w", err)
	}
	targets, err := parseLegs(file.Targets)
	if err != nil {
		return fmt.Errorf("targets: %w", err)
	}

	db, err := openState(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	env := token.NewTxEnv()
	transfer := &token.Transfer{Sources: sources, Targets: targets}
	if err := token.ApplyMultiTransfer(db, env, transfer, &types.Tx{}); err != nil {
		return err
	}
	printOutcome(env)
	return nil
}

func printOutcome(env *token.TxEnv) {
	for _, event := range env.Events() {
		fmt.Println(formatEvent(event))
	}
	var verifiers []string
	for _, addr := range env.Verifiers() {
		verifiers = append(verifiers, addr.Hex())
	}
	log.Infow("transfer applied", "verifiers", strings.Join(verifiers, ","))
}

func formatEvent(event *token.TokenEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "event %s level=%s\n", event.Descriptor, event.Level)
	switch op := event.Operation.(type) {
	case *token.SingleTransferOp:
		fmt.Fprintf(&b, "  %s -> %s token=%s amount=%d\n", op.Source, op.Target, op.Token, op.Amount.ToBig())
		fmt.Fprintf(&b, "  post: %s=%d %s=%d", op.Source, op.SourcePostBalance.ToBig(), op.Target, op.TargetPostBalance.ToBig())
	case *token.MultiTransferOp:
		for _, entry := range op.Sources {
			fmt.Fprintf(&b, "  debit  %s token=%s amount=%d\n", entry.Account, entry.Token, entry.Amount.ToBig())
		}
		for _, entry := range op.Targets {
			fmt.Fprintf(&b, "  credit %s token=%s amount=%d\n", entry.Account, entry.Token, entry.Amount.ToBig())
		}
		for _, entry := range op.PostBalances {
			fmt.Fprintf(&b, "  post   %s token=%s balance=%d\n", entry.Account, entry.Token, entry.Amount.ToBig())
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
