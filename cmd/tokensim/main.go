// tokensim applies token transfers against a local state database and prints
// the events, verifiers and actions the execution core produces. It exists
// for protocol development: the same code paths run inside block execution.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var log *zap.SugaredLogger

var stateDirFlag = &cli.StringFlag{
	Name:  "statedir",
	Usage: "directory of the leveldb state database",
	Value: "tokensim-state",
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()
	log = logger.Sugar()

	app := &cli.App{
		Name:  "tokensim",
		Usage: "apply transparent token transfers against a local state database",
		Commands: []*cli.Command{
			commandInit,
			commandBalance,
			commandTransfer,
			commandMulti,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
