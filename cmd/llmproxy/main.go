package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "llmproxy",
	Short: "Credential-isolating relay for the Duke LLM API",
	Long: `llmproxy sits between an untrusted client and the Duke LLM API.
Clients POST chat-completion requests to /proxy/llm; the relay injects the
upstream URL and API key, which clients never see, and passes the provider's
response back unchanged.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", !terminalSupportsColor(), "disable colored output")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	// Values already present in the environment win over .env entries.
	godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
