package main

import (
	"context"
	"os"

	"github.com/sparkst/claude-mcp-quickstart/internal/cli"
	"github.com/sparkst/claude-mcp-quickstart/internal/config"
	"github.com/sparkst/claude-mcp-quickstart/internal/printer"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		printer.PrintError(err.Error())
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	cfg, err := config.LoadFn()
	if err != nil {
		return err
	}
	return cli.New(cfg).Run(context.Background(), args)
}
