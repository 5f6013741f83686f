package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// errIssuesFound makes the process exit 1 after a report was printed
var errIssuesFound = errors.New("issues found")

var rootCmd = &cobra.Command{
	Use:   "blockdoc",
	Short: "Parse, format and check article files",
	Long: `blockdoc works on article bodies offline: it parses them into blocks,
rewrites them in canonical form and checks them against an editorial policy.
Use - as FILE to read from standard input.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		mode, err := cmd.Root().PersistentFlags().GetString("color")
		if err != nil {
			return err
		}
		switch mode {
		case "auto":
		case "on":
			color.NoColor = false
		case "off":
			color.NoColor = true
		default:
			return fmt.Errorf("unsupported --color value %q (auto|on|off)", mode)
		}
		return nil
	},
}

func main() {
	_ = godotenv.Load()

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(checkCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errIssuesFound) {
			fmt.Fprintln(os.Stderr, "blockdoc:", err)
		}
		os.Exit(1)
	}
}
