package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/interview-prep/backend/pkg/client"
)

func newQuestionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Question commands",
	}

	cmd.AddCommand(newQuestionsAddCmd())
	cmd.AddCommand(newQuestionsPinCmd())
	cmd.AddCommand(newQuestionsNoteCmd())

	return cmd
}

func newQuestionsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <session-id>",
		Short: "Generate more questions for a session and append them",
		Args:  cobra.ExactArgs(1),
		RunE:  runQuestionsAddCmd,
	}

	cmd.Flags().Int("count", client.DefaultQuestionCount, "number of questions to generate")

	return cmd
}

func runQuestionsAddCmd(cmd *cobra.Command, args []string) error {
	c, err := apiClient(cmd)
	if err != nil {
		return err
	}

	count, _ := cmd.Flags().GetInt("count")
	created, err := c.GenerateMore(commandContext(cmd), args[0], count)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), styleSuccess.Render(fmt.Sprintf("added %d question(s)", len(created))))
	return nil
}

func newQuestionsPinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pin <question-id>",
		Short: "Pin or unpin a question",
		Args:  cobra.ExactArgs(1),
		RunE:  runQuestionsPinCmd,
	}
}

func runQuestionsPinCmd(cmd *cobra.Command, args []string) error {
	c, err := apiClient(cmd)
	if err != nil {
		return err
	}

	q, err := c.TogglePin(commandContext(cmd), args[0])
	if err != nil {
		return err
	}

	state := "unpinned"
	if q.IsPinned {
		state = "pinned"
	}
	fmt.Fprintln(cmd.OutOrStdout(), styleSuccess.Render(fmt.Sprintf("question %s %s", q.ID, state)))
	return nil
}

func newQuestionsNoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "note <question-id> [note]",
		Short: "Set a question's note; omit the note to clear it",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runQuestionsNoteCmd,
	}
}

func runQuestionsNoteCmd(cmd *cobra.Command, args []string) error {
	c, err := apiClient(cmd)
	if err != nil {
		return err
	}

	note := ""
	if len(args) == 2 {
		note = args[1]
	}

	q, err := c.UpdateNote(commandContext(cmd), args[0], note)
	if err != nil {
		return err
	}

	if q.Note == "" {
		fmt.Fprintln(cmd.OutOrStdout(), styleSuccess.Render("cleared note on "+q.ID))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), styleSuccess.Render("updated note on "+q.ID))
	return nil
}
