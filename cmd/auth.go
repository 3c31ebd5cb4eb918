package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clinicdesk/clinicdesk/internal/config"
	"github.com/clinicdesk/clinicdesk/internal/google"
)

func newAuthCmd() *cobra.Command {
	var (
		account    string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize calendar access for a Google account",
		Long: `Run the interactive OAuth consent flow for the clinic's Google account.

Prints a consent URL, waits for the authorization code on stdin, and stores
the resulting credential so the MCP server can access the calendar without
further prompts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuth(cmd, account, configPath)
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Account name to store the credential under")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a clinicdesk config file (default: .clinicdesk.toml lookup)")

	return cmd
}

func runAuth(cmd *cobra.Command, account, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.OAuth.ClientID == "" || cfg.OAuth.ClientSecret == "" {
		return fmt.Errorf("missing OAuth client credentials: set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET or the [oauth] config section")
	}

	oauthConf := google.NewOAuthConfig(cfg.OAuth.ClientID, cfg.OAuth.ClientSecret)
	tokenStore, err := google.NewFileTokenStore(oauthConf)
	if err != nil {
		return fmt.Errorf("failed to create token store: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Visit this URL to authorize calendar access for account %q:\n\n  %s\n\nEnter the authorization code: ",
		account, tokenStore.AuthCodeURL(account))

	reader := bufio.NewReader(os.Stdin)
	code, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read authorization code: %w", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("no authorization code provided")
	}

	if err := tokenStore.SaveAuthCode(cmd.Context(), account, code); err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Authorization successful. Credential stored for account %q.\n", account)
	return nil
}
