package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prakashraj/godown/config"
	"github.com/prakashraj/godown/pkg/auth"
)

// godown token — issue an admin bearer token for the mutating routes.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an admin API token (requires ADMIN_PASSWORD_HASH)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		hash := config.AdminPasswordHash()
		if hash == "" {
			return fmt.Errorf("ADMIN_PASSWORD_HASH is not configured; generate one with `godown hash-password`")
		}

		password, _ := cmd.Flags().GetString("password")
		if !auth.CheckPassword(hash, password) {
			return fmt.Errorf("password mismatch")
		}

		token, err := auth.GenerateToken()
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

// godown hash-password — bcrypt a password for ADMIN_PASSWORD_HASH.
var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print the bcrypt hash of a password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := auth.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Println(hash)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("password", "", "admin password to verify")
	tokenCmd.MarkFlagRequired("password")
}
