package commands

import (
	"fmt"

	"github.com/Tedbot2000/todo-genie/internal/app"
	"github.com/Tedbot2000/todo-genie/internal/entity"
	"github.com/spf13/cobra"
)

var (
	username string
	password string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		storage, err := app.OpenStorage(cmd.Context(), cfg, log, true)
		if err != nil {
			return err
		}
		defer storage.Close()

		user, err := app.NewAuthService(cfg, storage).CreateUser(cmd.Context(), &entity.RegisterRequest{
			Username: username,
			Password: password,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created user %q (id=%d)\n", user.Username, user.ID)
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVarP(&username, "username", "u", "", "username")
	userCreateCmd.Flags().StringVarP(&password, "password", "p", "", "password (at least 8 characters)")
	_ = userCreateCmd.MarkFlagRequired("username")
	_ = userCreateCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userCreateCmd)
}
