package main

import (
	"context"

	"github.com/spf13/cobra"

	"honnef.co/go/spiro/internal/cli"
)

func main() {
	cobra.CheckErr(cli.NewCLI().ExecuteContext(context.Background()))
}
