package cli

import (
	"os"

	"go-stockbook/internal/console"

	"github.com/spf13/cobra"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Run the interactive text menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := buildEngine()
		if err != nil {
			return err
		}
		console.NewMenu(eng, os.Stdin, os.Stdout).Run()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}
