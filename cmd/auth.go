package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the backend session",
	Long: `Register, login, and inspect the backend session.

The session token is stored in ~/.litscout/session.json and reused by
every command until it expires or you logout.`,
}

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a backend account",
	RunE:  runAuthRegister,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login and store the session token",
	RunE:  runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
	RunE:  runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a session is stored and when it expires",
	RunE:  runAuthStatus,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
}

func promptCredentials(withName bool) (name, email, password string, err error) {
	if withName {
		namePrompt := promptui.Prompt{Label: "Name"}
		if name, err = namePrompt.Run(); err != nil {
			return "", "", "", err
		}
	}
	emailPrompt := promptui.Prompt{Label: "Email"}
	if email, err = emailPrompt.Run(); err != nil {
		return "", "", "", err
	}
	passwordPrompt := promptui.Prompt{Label: "Password", Mask: '*'}
	if password, err = passwordPrompt.Run(); err != nil {
		return "", "", "", err
	}
	return name, email, password, nil
}

func runAuthRegister(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	session, err := newSession()
	if err != nil {
		return err
	}

	name, email, password, err := promptCredentials(true)
	if err != nil {
		return err
	}

	client := newClient(cfg, session)
	if err := client.Register(context.Background(), email, password, name); err != nil {
		return err
	}

	fmt.Println("Account created. Login with `litscout auth login`.")
	return nil
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	session, err := newSession()
	if err != nil {
		return err
	}

	_, email, password, err := promptCredentials(false)
	if err != nil {
		return err
	}

	client := newClient(cfg, session)
	token, err := client.Login(context.Background(), email, password)
	if err != nil {
		return err
	}
	if err := session.Login(token, email); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}

	fmt.Printf("Logged in as %s.\n", email)
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	session, err := newSession()
	if err != nil {
		return err
	}
	if err := session.Logout(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	fmt.Println("Logged out.")
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	session, err := newSession()
	if err != nil {
		return err
	}

	if !session.Authenticated() {
		fmt.Println("Not logged in.")
		return nil
	}

	fmt.Printf("Logged in as %s.\n", session.Email())
	if expiry, ok := session.TokenExpiry(); ok {
		if time.Now().After(expiry) {
			fmt.Printf("Token expired %s; the next request will ask you to login again.\n",
				expiry.Format(time.RFC1123))
		} else {
			fmt.Printf("Token expires %s.\n", expiry.Format(time.RFC1123))
		}
	}
	return nil
}
