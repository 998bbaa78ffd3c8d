package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/qiwi-client/internal/constants"
	"github.com/fivetwenty-io/qiwi-client/internal/logging"
	"github.com/fivetwenty-io/qiwi-client/pkg/qiwi"
	"github.com/fivetwenty-io/qiwi-client/pkg/qiwiclient"
)

// Config represents the CLI configuration.
type Config struct {
	API    string `json:"api,omitempty"    yaml:"api,omitempty"`
	Phone  string `json:"phone,omitempty"  yaml:"phone,omitempty"`
	Token  string `json:"token,omitempty"  yaml:"token,omitempty"`
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	NATS *NATSSettings `json:"nats,omitempty" yaml:"nats,omitempty"`
}

// NATSSettings configures history export.
type NATSSettings struct {
	URL     string `json:"url,omitempty"     yaml:"url,omitempty"`
	Subject string `json:"subject,omitempty" yaml:"subject,omitempty"`
}

// LoggedIn reports whether a credential has been saved.
func (c *Config) LoggedIn() bool {
	return c.Phone != "" && c.Token != ""
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show the QIWI CLI configuration and where it is stored",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigPathCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration with the token masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.Token = maskToken(config.Token)

			out := cmd.OutOrStdout()

			done, err := renderStructured(out, config)
			if done {
				return err
			}

			rows := [][2]string{
				{"API", config.API},
				{"Phone", valueOrNA(&config.Phone)},
				{"Token", config.Token},
				{"Output", config.Output},
			}

			if config.NATS != nil {
				rows = append(rows,
					[2]string{"NATS URL", valueOrNA(&config.NATS.URL)},
					[2]string{"NATS Subject", valueOrNA(&config.NATS.Subject)},
				)
			}

			return renderKeyValueTable(out, rows)
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Long:  "Print the path of the configuration file used by the CLI",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFilePath()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)

			return err
		},
	}
}

// loadConfig reads the configuration from viper, which merges the config
// file, QIWI_* environment variables and command line flags.
func loadConfig() *Config {
	config := &Config{
		API:    viper.GetString("api"),
		Phone:  viper.GetString("phone"),
		Token:  viper.GetString("token"),
		Output: viper.GetString("output"),
	}

	if config.API == "" {
		config.API = constants.DefaultAPIEndpoint
	}

	if config.Output == "" {
		config.Output = constants.FormatTable
	}

	natsURL := viper.GetString("nats.url")
	natsSubject := viper.GetString("nats.subject")

	if natsURL != "" || natsSubject != "" {
		config.NATS = &NATSSettings{URL: natsURL, Subject: natsSubject}
	}

	return config
}

// configFilePath returns the config file in use, or the default location.
func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", constants.ErrConfigDirMissing, err)
	}

	return filepath.Join(home, constants.ConfigDirName, constants.ConfigFileName+"."+constants.ConfigFileType), nil
}

// saveConfigStruct writes config as YAML, readable by the owner only.
func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	viper.SetConfigFile(configFile)

	return nil
}

// CreateClient builds an API client from the saved configuration. The
// returned function flushes the client's logger.
func CreateClient(ctx context.Context) (qiwi.Client, func(), error) {
	config := loadConfig()
	if !config.LoggedIn() {
		return nil, func() {}, constants.ErrNotLoggedIn
	}

	return newClient(ctx, config)
}

func newClient(ctx context.Context, config *Config) (qiwi.Client, func(), error) {
	verbose := viper.GetBool("verbose")
	zapLogger, sync := logging.New(verbose)

	cleanup := func() {
		_ = sync()
	}

	client, err := qiwiclient.New(ctx, &qiwi.Config{
		APIEndpoint: config.API,
		Phone:       config.Phone,
		Token:       config.Token,
		HTTPTimeout: constants.DefaultHTTPTimeout,
		Debug:       verbose,
		Logger:      logging.NewZapLogger(zapLogger.Named("qiwi")),
	})
	if err != nil {
		cleanup()

		return nil, func() {}, err
	}

	zapLogger.Debug("Using account", zap.String("phone", config.Phone), zap.String("api", config.API))

	return client, cleanup, nil
}

// describeError adds a hint to errors the user can act on.
func describeError(action string, err error) error {
	if code, ok := qiwi.IsQiwiError(err); ok {
		return fmt.Errorf("%s: server rejected the request with %q: %w", action, code, err)
	}

	if status, ok := qiwi.IsStatusError(err); ok && status == http.StatusUnauthorized {
		return fmt.Errorf("%s: token was rejected, run 'qiwi login' again: %w", action, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: request timed out: %w", action, err)
	}

	return fmt.Errorf("%s: %w", action, err)
}
