package cli

import (
	"fmt"
	"os"

	"github.com/SscSPs/club_finance_app/internal/dto"
	"github.com/SscSPs/club_finance_app/internal/utils"
	"github.com/spf13/cobra"
)

// passwordEnv lets scripts pass the password without exposing it in argv.
const passwordEnv = "CLUB_ADMIN_PASSWORD"

func init() {
	rootCmd.AddCommand(createUserCmd)

	createUserCmd.Flags().StringP("username", "u", "", "Login name")
	createUserCmd.Flags().StringP("name", "n", "", "Display name")
	createUserCmd.Flags().StringP("password", "p", "", "Password (or set "+passwordEnv+")")
	createUserCmd.Flags().Bool("generate-password", false, "Generate a random password and print it once")
	_ = createUserCmd.MarkFlagRequired("username")
}

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create an operator account",
	RunE:  runCreateUser,
}

func runCreateUser(cmd *cobra.Command, args []string) error {
	username, _ := cmd.Flags().GetString("username")
	name, _ := cmd.Flags().GetString("name")
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password = os.Getenv(passwordEnv)
	}
	generated := false
	if password == "" {
		if gen, _ := cmd.Flags().GetBool("generate-password"); !gen {
			return fmt.Errorf("password required: use --password, %s or --generate-password", passwordEnv)
		}
		var err error
		if password, err = utils.GenerateSecurePassword(12); err != nil {
			return err
		}
		generated = true
	}
	if name == "" {
		name = username
	}

	a, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	user, err := a.services.User.CreateUser(cmd.Context(), dto.CreateUserRequest{
		Username: username,
		Password: password,
		Name:     name,
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", user.Username, user.UserID)
	if generated {
		fmt.Fprintf(cmd.OutOrStdout(), "Password: %s\n", password)
	}
	return nil
}
