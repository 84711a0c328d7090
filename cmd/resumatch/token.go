package main

import (
	"errors"
	"fmt"
	"time"

	"resume-match/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an access token for local development",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rawID, _ := cmd.Flags().GetString("user")
		email, _ := cmd.Flags().GetString("email")

		var id uuid.UUID
		if rawID == "" {
			id = uuid.New()
		} else {
			parsed, err := uuid.Parse(rawID)
			if err != nil {
				return fmt.Errorf("--user: %w", err)
			}
			id = parsed
		}

		secret := viper.GetString("jwt-secret")
		if secret == "" {
			return errors.New("set --secret or JWT_ACCESS_SECRET")
		}

		tok, err := jwt.NewHMACService(secret, viper.GetDuration("jwt-ttl")).GenerateAccessToken(id, email)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
		return err
	},
}

func init() {
	tokenCmd.Flags().String("user", "", "user id (random when empty)")
	tokenCmd.Flags().String("email", "", "email claim")
	tokenCmd.Flags().String("secret", "", "HMAC secret")
	tokenCmd.Flags().Duration("ttl", time.Hour, "token lifetime")

	mustBind("jwt-secret", tokenCmd, "secret", "JWT_ACCESS_SECRET")
	mustBind("jwt-ttl", tokenCmd, "ttl", "JWT_ACCESS_EXPIRES_IN")

	rootCmd.AddCommand(tokenCmd)
}

func mustBind(key string, cmd *cobra.Command, flag, env string) {
	if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
		panic(err)
	}
	if err := viper.BindEnv(key, env); err != nil {
		panic(err)
	}
}
