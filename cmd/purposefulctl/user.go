package main

import (
	"fmt"
	"strings"

	"github.com/purposeful/purposeful-backend/internal/domain"
	"github.com/purposeful/purposeful-backend/internal/service"
	"github.com/spf13/cobra"
)

var (
	flagEmail       string
	flagPassword    string
	flagFirstName   string
	flagLastName    string
	flagAuthorities []string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account",
	Long: `Create an account and its public profile.

  purposefulctl user create --email mod@example.com --password secret \
      --first Ada --last Lovelace --authority Moderator`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		authorities, err := parseAuthorities(flagAuthorities)
		if err != nil {
			return err
		}

		cfg, repos, err := openRepositories()
		if err != nil {
			return err
		}
		auth := service.NewAuthService(repos.AppUser, repos.RegularUser, cfg)

		result, err := auth.Register(cmd.Context(), service.RegisterInput{
			Email:       flagEmail,
			Password:    flagPassword,
			FirstName:   flagFirstName,
			LastName:    flagLastName,
			Authorities: authorities,
		})
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}

		fmt.Printf("Created user %s (id: %s, authorities: %s)\n",
			result.User.Email, result.User.ID, joinAuthorities(result.User.AuthorityList()))
		return nil
	},
}

var userGrantCmd = &cobra.Command{
	Use:   "grant <email> <authority>...",
	Short: "Replace the authorities of an account",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		authorities, err := parseAuthorities(args[1:])
		if err != nil {
			return err
		}

		cfg, repos, err := openRepositories()
		if err != nil {
			return err
		}
		auth := service.NewAuthService(repos.AppUser, repos.RegularUser, cfg)

		user, err := auth.SetAuthorities(cmd.Context(), args[0], authorities...)
		if err != nil {
			return fmt.Errorf("granting authorities: %w", err)
		}

		fmt.Printf("%s now has: %s\n", user.Email, joinAuthorities(user.AuthorityList()))
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&flagEmail, "email", "", "Account email (required)")
	userCreateCmd.Flags().StringVar(&flagPassword, "password", "", "Account password (required)")
	userCreateCmd.Flags().StringVar(&flagFirstName, "first", "", "First name")
	userCreateCmd.Flags().StringVar(&flagLastName, "last", "", "Last name")
	userCreateCmd.Flags().StringSliceVar(&flagAuthorities, "authority", nil, "Authority to grant, repeatable (default User)")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userGrantCmd)
	rootCmd.AddCommand(userCmd)
}

func parseAuthorities(values []string) ([]domain.Authority, error) {
	authorities := make([]domain.Authority, 0, len(values))
	for _, v := range values {
		a, ok := domain.ParseAuthority(v)
		if !ok {
			return nil, fmt.Errorf("unknown authority %q (want User, Moderator or Owner)", v)
		}
		authorities = append(authorities, a)
	}
	return authorities, nil
}

func joinAuthorities(authorities []domain.Authority) string {
	names := make([]string, len(authorities))
	for i, a := range authorities {
		names[i] = a.String()
	}
	return strings.Join(names, ", ")
}
