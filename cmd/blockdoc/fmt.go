package main

import (
	"fmt"
	"os"

	"broadsheet/internal/service/blockdoc"

	"github.com/spf13/cobra"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt FILE",
	Short: "Rewrite an article in canonical form",
	Long: `fmt parses FILE and serializes it again. Legacy text comes out in the
structured format. Files with parse errors are left alone, since the
regions that failed to parse would be lost.`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().BoolP("write", "w", false, "write the result back to FILE instead of stdout")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return err
	}
	name := args[0]
	if write && name == "-" {
		return fmt.Errorf("fmt: --write cannot be used with standard input")
	}

	text, err := readInput(name, cmd.InOrStdin())
	if err != nil {
		return err
	}

	result := newParser().Parse(text)
	if !result.Success {
		printParseErrors(cmd.ErrOrStderr(), displayName(name), result.Errors)
		return errIssuesFound
	}

	formatted := blockdoc.NewSerializer().Serialize(result.Blocks)
	if !write {
		_, err := fmt.Fprint(cmd.OutOrStdout(), formatted)
		return err
	}

	if formatted == text {
		return nil
	}
	info, err := os.Stat(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(name, []byte(formatted), info.Mode().Perm()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "reformatted %s\n", name)
	return nil
}
