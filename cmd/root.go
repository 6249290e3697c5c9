package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/telefwd/telefwd/config"
)

var rootCmd = &cobra.Command{
	Use:   "telefwd",
	Short: "Telegram message-forwarding agent",
	Run:   run,
}

func init() {
	config.RegisterFlags(rootCmd)
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
