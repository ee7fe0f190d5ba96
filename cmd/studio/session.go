//go:build !js || !wasm

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagecraft/studio/internal/env"
)

var loginEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the backend and store the credential pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginEmail == "" {
			return fmt.Errorf("--email is required")
		}
		password, ok := env.Get("STUDIO_PASSWORD")
		if !ok {
			return fmt.Errorf("set STUDIO_PASSWORD in the environment (or .env)")
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		if err := client.Login(cmd.Context(), loginEmail, password); err != nil {
			return err
		}
		fmt.Println("Logged in.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the session and clear stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		if err := client.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		user, err := client.Me(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(user)
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
}
