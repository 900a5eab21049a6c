package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"catalog.GO/config"
	authRepo "catalog.GO/model/repository/auth"
)

var (
	tokenName string
	tokenTTL  time.Duration
)

var tokenIssueCmd = &cobra.Command{
	Use:   "token:issue",
	Short: "Issue an API bearer token (AUTH_TYPE=token)",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.NewDB()
		if err != nil {
			return err
		}
		t, err := authRepo.NewAuthRepository(db).IssueToken(cmd.Context(), tokenName, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.Token)
		return nil
	},
}

var tokenRevokeCmd = &cobra.Command{
	Use:   "token:revoke <token>",
	Short: "Revoke an API bearer token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.NewDB()
		if err != nil {
			return err
		}
		return authRepo.NewAuthRepository(db).RevokeToken(cmd.Context(), args[0])
	},
}

func init() {
	tokenIssueCmd.Flags().StringVar(&tokenName, "name", "", "Token owner / purpose")
	tokenIssueCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Lifetime, 0 for no expiry")
	_ = tokenIssueCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(tokenIssueCmd, tokenRevokeCmd)
}
