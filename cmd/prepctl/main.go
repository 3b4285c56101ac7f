package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zhouzirui/interview-prep/backend/pkg/client"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styledError(err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "prepctl",
		Short:         "Interview prep admin and API CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("server", envOrDefault("PREP_SERVER", "http://localhost:8080"), "API base URL")
	rootCmd.PersistentFlags().String("token", os.Getenv("PREP_TOKEN"), "bearer token")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "request timeout")

	rootCmd.AddCommand(newReconcileCmd())
	rootCmd.AddCommand(newSessionsCmd())
	rootCmd.AddCommand(newQuestionsCmd())
	rootCmd.AddCommand(newExplainCmd())

	return rootCmd
}

func apiClient(cmd *cobra.Command) (*client.Client, error) {
	server, _ := cmd.Flags().GetString("server")
	token, _ := cmd.Flags().GetString("token")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("no token: pass --token or set PREP_TOKEN")
	}

	return client.New(server, token, client.WithTimeout(timeout)), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func envOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
