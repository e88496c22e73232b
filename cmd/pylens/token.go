package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pylens/internal/auth"
)

var tokenOutFile string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage API tokens for the HTTP server",
}

var tokenGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new API token",
	Long: `Generate a bearer token for the HTTP API and write its bcrypt hash to
disk. The token itself is printed once and never stored.

Start an authenticated server with:
  pylens token generate
  pylens serve --auth-hash-file .pylens/token.hash`,
	RunE: runTokenGenerate,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenGenerateCmd)

	tokenGenerateCmd.Flags().StringVar(&tokenOutFile, "out", filepath.Join(".pylens", "token.hash"),
		"Where to write the token hash")
}

func runTokenGenerate(cmd *cobra.Command, args []string) error {
	token, err := auth.GenerateToken()
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	hash, err := auth.HashToken(token)
	if err != nil {
		return fmt.Errorf("failed to hash token: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(tokenOutFile), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(tokenOutFile, []byte(hash+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write hash file: %w", err)
	}

	fmt.Printf("Token: %s\n", token)
	fmt.Printf("Hash written to %s\n", tokenOutFile)
	fmt.Println("Store the token now; it cannot be recovered later.")
	return nil
}
