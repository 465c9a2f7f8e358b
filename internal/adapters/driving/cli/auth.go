package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage your session",
	Long: `Log in, log out and register accounts.

The session token is stored locally (see 'raiz settings' for the session
backend) and reused by every command and the TUI.

Examples:
  raiz auth login -u ana
  raiz auth whoami
  raiz auth register -u nuevo
  raiz auth logout`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with username and password",
	RunE:  runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE:  runAuthLogout,
}

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE:  runAuthRegister,
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE:  runAuthWhoami,
}

var (
	authUsername string
	authPassword string
)

func init() {
	for _, c := range []*cobra.Command{authLoginCmd, authRegisterCmd} {
		c.Flags().StringVarP(&authUsername, "username", "u", "", "username (prompted when empty)")
		c.Flags().StringVarP(&authPassword, "password", "p", "", "password (prompted when empty)")
	}

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authWhoamiCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	p := newPrompter(cmd)
	username := authUsername
	if username == "" {
		username = p.line("Usuario: ")
	}
	password := authPassword
	if password == "" {
		password = p.password("Contraseña: ")
	}

	user, err := sessionService.Login(commandContext(cmd), username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	printSuccess(cmd, "Logged in as %s (%s)", user.Username, user.Role)
	return nil
}

func runAuthLogout(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}
	if err := sessionService.Logout(commandContext(cmd)); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	cmd.Println("Logged out.")
	return nil
}

func runAuthRegister(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	p := newPrompter(cmd)
	username := authUsername
	if username == "" {
		username = p.line("Usuario: ")
	}
	password, confirm := authPassword, authPassword
	if password == "" {
		password = p.password("Contraseña: ")
		confirm = p.password("Confirmar contraseña: ")
	}

	if err := sessionService.Register(commandContext(cmd), username, password, confirm); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	printSuccess(cmd, "Account %s created. Log in with 'raiz auth login -u %s'.", username, username)
	return nil
}

func runAuthWhoami(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	user := sessionService.Current()
	if user == nil {
		cmd.Println("Not logged in (anonymous).")
		return nil
	}
	cmd.Printf("%s (%s)\n", user.Username, user.Role)
	if user.IsAdmin() {
		cmd.Println("Curator tools enabled.")
	}
	return nil
}
