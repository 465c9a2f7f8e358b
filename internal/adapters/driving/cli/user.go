package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
)

var userCmd = &cobra.Command{
	Use:     "user",
	Aliases: []string{"users"},
	Short:   "Administer user accounts (admin)",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	Args:  cobra.NoArgs,
	RunE:  runUserList,
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserDelete,
}

var userRoleCmd = &cobra.Command{
	Use:   "role [id] [admin|user]",
	Short: "Change an account's role",
	Args:  cobra.ExactArgs(2),
	RunE:  runUserRole,
}

var userYes bool

func init() {
	userDeleteCmd.Flags().BoolVarP(&userYes, "yes", "y", false, "do not ask for confirmation")

	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userDeleteCmd)
	userCmd.AddCommand(userRoleCmd)
	rootCmd.AddCommand(userCmd)
}

func parseUserID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid user id %q", domain.ErrInvalidInput, s)
	}
	return id, nil
}

func runUserList(cmd *cobra.Command, _ []string) error {
	if userService == nil {
		return errors.New("user service not configured")
	}
	accounts, err := userService.List(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("listing users: %w", err)
	}

	rows := make([][]string, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, []string{strconv.FormatInt(a.ID, 10), a.Username, a.Role.String()})
	}
	return renderTable(cmd.OutOrStdout(), []string{"ID", "Username", "Role"}, rows)
}

func runUserDelete(cmd *cobra.Command, args []string) error {
	if userService == nil {
		return errors.New("user service not configured")
	}
	id, err := parseUserID(args[0])
	if err != nil {
		return err
	}
	if !userYes && !newPrompter(cmd).confirm(fmt.Sprintf("Delete user %d?", id)) {
		cmd.Println("Aborted.")
		return nil
	}
	if err := userService.Delete(commandContext(cmd), id); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	printSuccess(cmd, "User %d deleted.", id)
	return nil
}

func runUserRole(cmd *cobra.Command, args []string) error {
	if userService == nil {
		return errors.New("user service not configured")
	}
	id, err := parseUserID(args[0])
	if err != nil {
		return err
	}
	role, err := domain.ParseRole(args[1])
	if err != nil {
		return err
	}
	account, err := userService.SetRole(commandContext(cmd), id, role)
	if err != nil {
		return fmt.Errorf("changing role: %w", err)
	}
	printSuccess(cmd, "%s is now %s.", account.Username, account.Role)
	return nil
}
