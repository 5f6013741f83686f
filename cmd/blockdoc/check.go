package main

import (
	"broadsheet/internal/config"
	"broadsheet/internal/policy"
	"broadsheet/internal/service/blockdoc"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Parse an article and validate it against an editorial policy",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("policy", "", "editorial policy (strict|counts_only); defaults to EDITORIAL_POLICY")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	policyName, err := cmd.Flags().GetString("policy")
	if err != nil {
		return err
	}
	if policyName == "" {
		policyName = config.Load().EditorialPolicy
	}

	registry, err := policy.NewRegistry()
	if err != nil {
		return err
	}
	p, err := registry.Resolve(policyName)
	if err != nil {
		return err
	}

	name := args[0]
	text, err := readInput(name, cmd.InOrStdin())
	if err != nil {
		return err
	}

	parsed := newParser().Parse(text)
	validation := blockdoc.NewValidator(p).Validate(parsed.Blocks)

	r := checkReport{
		Name:       displayName(name),
		Policy:     p.Name,
		Parse:      parsed,
		Validation: validation,
	}
	r.print(cmd.OutOrStdout())

	if !r.ok() {
		return errIssuesFound
	}
	return nil
}
