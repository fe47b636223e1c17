package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"loancalc/pkg/config"
	"loancalc/pkg/token"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for an API client",
		Long: `Issue an HS256 bearer token accepted by the API.
The signing secret defaults to AUTH_TOKEN_SECRET and the audience to AUTH_AUDIENCE.`,
		Args: cobra.NoArgs,
		RunE: runToken,
	}
	cmd.Flags().String("subject", "", "Client ID carried in the token")
	cmd.Flags().String("name", "", "Optional display name")
	cmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")
	cmd.Flags().String("secret", "", "Signing secret (overrides AUTH_TOKEN_SECRET)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func runToken(cmd *cobra.Command, _ []string) error {
	subject, _ := cmd.Flags().GetString("subject")
	name, _ := cmd.Flags().GetString("name")
	ttl, _ := cmd.Flags().GetDuration("ttl")
	secret, _ := cmd.Flags().GetString("secret")

	cfg := config.Load()
	if secret == "" {
		secret = cfg.Auth.TokenSecret
	}
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive")
	}

	tok, err := token.Issue(subject, name, secret, cfg.Auth.Audience, ttl, time.Now())
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}
