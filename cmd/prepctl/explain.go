package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <question>",
		Short: "Explain the concept behind a question",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runExplainCmd,
	}
}

func runExplainCmd(cmd *cobra.Command, args []string) error {
	c, err := apiClient(cmd)
	if err != nil {
		return err
	}

	exp, err := c.GenerateExplanation(commandContext(cmd), strings.Join(args, " "))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styleTitle.Render(exp.Title))
	fmt.Fprintln(out)
	fmt.Fprintln(out, exp.Explanation)
	return nil
}
