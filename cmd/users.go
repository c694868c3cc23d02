package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/Binaergewitter/datefinder/internal/model"
)

var (
	userDisplayName string
	userPassword    string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage datefinder users",
}

var usersAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Create a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if userPassword == "" {
			slog.Error("A password is required (--password)")
			os.Exit(1)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(userPassword), bcrypt.DefaultCost)
		if err != nil {
			slog.Error("Failed to hash password", "error", err)
			os.Exit(1)
		}

		id, err := provider.CreateUser(context.Background(), model.User{
			Username:     args[0],
			DisplayName:  userDisplayName,
			PasswordHash: string(hash),
		})
		if err != nil {
			slog.Error("Failed to create user", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Created user %s (id %d)\n", args[0], id)
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Run: func(cmd *cobra.Command, args []string) {
		users, err := provider.ListUsers(context.Background())
		if err != nil {
			slog.Error("Failed to list users", "error", err)
			os.Exit(1)
		}
		for _, u := range users {
			fmt.Printf("%d\t%s\t%s\n", u.ID, u.Username, u.Name())
		}
	},
}

func init() {
	usersAddCmd.Flags().StringVar(&userDisplayName, "display-name", "", "display name shown in the calendar")
	usersAddCmd.Flags().StringVar(&userPassword, "password", "", "login password")

	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersListCmd)
	rootCmd.AddCommand(usersCmd)
}
