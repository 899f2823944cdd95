package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/naveenspark/moviemania/internal/guard"
	"github.com/naveenspark/moviemania/internal/session"
	"github.com/naveenspark/moviemania/pkg/domain"
)

var errEmptyCredentials = errors.New("email and password are required")

// promptCredentials fills any missing field from in, one line per field.
func promptCredentials(in io.Reader, out io.Writer, creds domain.Credentials) (domain.Credentials, error) {
	reader := bufio.NewReader(in)
	read := func(label string) (string, error) {
		fmt.Fprint(out, label)
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", fmt.Errorf("read %s: %w", strings.ToLower(strings.TrimSuffix(label, ": ")), err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	var err error
	if creds.Email == "" {
		if creds.Email, err = read("Email: "); err != nil {
			return creds, err
		}
	}
	if creds.Password == "" {
		if creds.Password, err = read("Password: "); err != nil {
			return creds, err
		}
	}
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return creds, errEmptyCredentials
	}
	return creds, nil
}

func newLoginCmd(e *env) *cobra.Command {
	var creds domain.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session",
		Long:  "Exchange email and password for a session token and store it for the TUI and other commands.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filled, err := promptCredentials(cmd.InOrStdin(), cmd.OutOrStdout(), creds)
			if err != nil {
				return err
			}
			token, isAdmin, err := e.client.Authenticate(cmd.Context(), filled)
			if err != nil {
				e.logger.Debug("login failed", "error", err)
				return errors.New("invalid login credentials, please try again")
			}
			e.store.Login(token, isAdmin)
			role := e.store.Read().Role()
			e.logger.Info("logged in", "role", role.String())
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s.\n", role)
			return nil
		},
	}
	cmd.Flags().StringVar(&creds.Email, "email", "", "Account email (prompted if omitted)")
	cmd.Flags().StringVar(&creds.Password, "password", "", "Account password (prompted if omitted)")
	return cmd
}

func newLogoutCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the saved session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !e.store.Read().LoggedIn() {
				fmt.Fprintln(cmd.OutOrStdout(), "Already logged out.")
				return nil
			}
			e.store.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newRegisterCmd(e *env) *cobra.Command {
	var creds domain.Credentials

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filled, err := promptCredentials(cmd.InOrStdin(), cmd.OutOrStdout(), creds)
			if err != nil {
				return err
			}
			if err := e.client.Register(cmd.Context(), filled); err != nil {
				e.logger.Debug("register failed", "error", err)
				return errors.New("registration failed, please try again")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registration successful! Run `moviemania login --email %s` to sign in.\n", filled.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&creds.Email, "email", "", "Account email (prompted if omitted)")
	cmd.Flags().StringVar(&creds.Password, "password", "", "Account password (prompted if omitted)")
	return cmd
}

func newStatusCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the session role and API URL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess := e.store.Read()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Session: %s\n", sess.Role())
			fmt.Fprintf(out, "API:     %s\n", e.client.BaseURL())
			if fs, ok := e.storage.(*session.FileStorage); ok {
				fmt.Fprintf(out, "Storage: %s\n", fs.Path())
			} else {
				fmt.Fprintln(out, "Storage: memory")
			}
			var views []string
			for _, v := range guard.PermittedViews(sess.Role()) {
				views = append(views, v.String())
			}
			fmt.Fprintf(out, "Views:   %s\n", strings.Join(views, ", "))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		// No config or session is needed to print a version.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "moviemania "+version)
		},
	}
}
