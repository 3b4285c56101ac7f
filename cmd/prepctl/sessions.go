package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/interview-prep/backend/pkg/client"
)

func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Session commands",
	}

	cmd.AddCommand(newSessionsListCmd())
	cmd.AddCommand(newSessionsShowCmd())
	cmd.AddCommand(newSessionsCreateCmd())
	cmd.AddCommand(newSessionsDeleteCmd())

	return cmd
}

func newSessionsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your sessions, newest first",
		Args:  cobra.NoArgs,
		RunE:  runSessionsListCmd,
	}
}

func runSessionsListCmd(cmd *cobra.Command, _ []string) error {
	c, err := apiClient(cmd)
	if err != nil {
		return err
	}

	sessions, err := c.MySessions(commandContext(cmd))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(out, styleDim.Render("No sessions found."))
		return nil
	}

	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			s.ID,
			s.Role,
			s.Experience,
			truncate(s.TopicsToFocus, 32),
			strconv.Itoa(len(s.Questions)),
			formatTime(s.UpdatedAt),
		})
	}
	printTable(out, []string{"SESSION ID", "ROLE", "EXPERIENCE", "TOPICS", "QUESTIONS", "UPDATED"}, rows)
	return nil
}

func newSessionsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show a session with its questions",
		Args:  cobra.ExactArgs(1),
		RunE:  runSessionsShowCmd,
	}
}

func runSessionsShowCmd(cmd *cobra.Command, args []string) error {
	c, err := apiClient(cmd)
	if err != nil {
		return err
	}

	sess, err := c.GetSession(commandContext(cmd), args[0])
	if err != nil {
		return err
	}

	printSession(cmd.OutOrStdout(), sess)
	return nil
}

func printSession(w io.Writer, sess *client.Session) {
	fmt.Fprintln(w, styleTitle.Render(sess.Role))
	fmt.Fprintln(w, kvLine("id", sess.ID))
	fmt.Fprintln(w, kvLine("experience", sess.Experience))
	fmt.Fprintln(w, kvLine("topics", sess.TopicsToFocus))
	if sess.Description != "" {
		fmt.Fprintln(w, kvLine("description", sess.Description))
	}
	fmt.Fprintln(w, kvLine("updated", formatTime(sess.UpdatedAt)))
	fmt.Fprintln(w)

	for i, q := range sess.Questions {
		marker := " "
		if q.IsPinned {
			marker = stylePinned.Render("*")
		}
		fmt.Fprintf(w, "%s %2d. %s %s\n", marker, i+1, q.Question, styleDim.Render("["+q.ID+"]"))
		fmt.Fprintf(w, "      %s\n", q.Answer)
		if q.Note != "" {
			fmt.Fprintln(w, "      "+styleDim.Render("note: "+q.Note))
		}
	}
}

func newSessionsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Generate questions and store them as a new session",
		Args:  cobra.NoArgs,
		RunE:  runSessionsCreateCmd,
	}

	cmd.Flags().String("role", "", "target role")
	cmd.Flags().String("experience", "", "years of experience")
	cmd.Flags().String("topics", "", "comma separated topics to focus on")
	cmd.Flags().String("description", "", "optional description")
	cmd.Flags().Int("count", client.DefaultQuestionCount, "number of questions to generate")

	return cmd
}

func runSessionsCreateCmd(cmd *cobra.Command, _ []string) error {
	c, err := apiClient(cmd)
	if err != nil {
		return err
	}

	role, _ := cmd.Flags().GetString("role")
	experience, _ := cmd.Flags().GetString("experience")
	topics, _ := cmd.Flags().GetString("topics")
	description, _ := cmd.Flags().GetString("description")
	count, _ := cmd.Flags().GetInt("count")

	sess, err := c.CreateFromForm(commandContext(cmd), client.SessionForm{
		Role:          role,
		Experience:    experience,
		TopicsToFocus: topics,
		Description:   description,
		Count:         count,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styleSuccess.Render(fmt.Sprintf("created session %s with %d question(s)", sess.ID, len(sess.Questions))))
	return nil
}

func newSessionsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a session and its questions",
		Args:  cobra.ExactArgs(1),
		RunE:  runSessionsDeleteCmd,
	}
}

func runSessionsDeleteCmd(cmd *cobra.Command, args []string) error {
	c, err := apiClient(cmd)
	if err != nil {
		return err
	}

	if err := c.DeleteSession(commandContext(cmd), args[0]); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), styleSuccess.Render("deleted session "+args[0]))
	return nil
}
