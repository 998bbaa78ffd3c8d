package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fivetwenty-io/qiwi-client/internal/constants"
	"github.com/fivetwenty-io/qiwi-client/pkg/qiwi"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		phone      string
		token      string
		skipVerify bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Save wallet credentials",
		Long: `Save the wallet phone number and API token used by every other command.

The phone number must be in international format (+79991234567). The token
is read without echo when it is not passed with --token.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			if phone == "" {
				value, err := prompt(reader, out, "User ID (phone number): ")
				if err != nil {
					return err
				}

				phone = value
			}

			if phone == "" {
				return constants.ErrPhoneRequired
			}

			if token == "" {
				value, err := readSecret(reader, out, "Token: ")
				if err != nil {
					return err
				}

				token = value
			}

			if token == "" {
				return constants.ErrTokenRequired
			}

			credential := qiwi.Credential{Phone: phone, Token: token}

			err := credential.Validate()
			if err != nil {
				return fmt.Errorf("invalid credentials: %w", err)
			}

			config := loadConfig()
			config.Phone = credential.Phone
			config.Token = credential.Token

			if !skipVerify {
				client, cleanup, err := newClient(cmd.Context(), config)
				if err != nil {
					return err
				}
				defer cleanup()

				_, err = client.ProfileInfo(cmd.Context())
				if err != nil {
					return describeError("failed to verify token", err)
				}
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintf(out, "Logged in as %s\n", credential.Phone)

			return nil
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "wallet phone number in E.164 form")
	cmd.Flags().StringVar(&token, "token", "", "API token")
	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "save without checking the token against the API")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove saved credentials",
		Long:  "Remove the saved phone number and token from the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.Phone = ""
			config.Token = ""

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")

			return nil
		},
	}
}

func prompt(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	_, _ = fmt.Fprint(out, label)

	value, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimSpace(value), nil
}

// readSecret reads without echo from a terminal and falls back to a plain
// line read when stdin is redirected.
func readSecret(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return prompt(reader, out, label)
	}

	_, _ = fmt.Fprint(out, label)

	secret, err := term.ReadPassword(fd)
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	_, _ = fmt.Fprintln(out)

	return strings.TrimSpace(string(secret)), nil
}
