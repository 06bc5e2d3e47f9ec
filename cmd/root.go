package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ceesios/vault-auth-ldap/internal/app"
	apperrors "github.com/ceesios/vault-auth-ldap/internal/errors"
)

var (
	cfgFile      string
	logLevel     string
	logFormat    string
	reporterType string
	sourceType   string
	sourcePath   string
	checkMode    bool
	probeLDAP    bool
	setOverrides []string
)

var rootCmd = &cobra.Command{
	Use:   "vault-auth-ldap",
	Short: "Idempotently configures the LDAP auth method of a Vault server.",
	Long: `vault-auth-ldap resolves the desired LDAP auth method options, reads the
current auth/<mount>/config from Vault, and writes the full configuration back
only when a non-secret parameter differs. Use --check to report what would
change without writing.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Set directly: a bound string array would be re-split on commas.
		viper.Set(app.SetOverridesKey, setOverrides)

		application, bootstrapErr := app.BuildApplicationFromViper(cmd.Context(), viper.GetViper())
		if bootstrapErr != nil {
			printError("Application initialization failed", bootstrapErr)
			return bootstrapErr
		}

		// The reporter has already printed the failure result.
		return application.Run(cmd.Context())
	},
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func printError(prefix string, err error) {
	userMsg, suggestion, _ := apperrors.GetUserFacingMessage(err)
	fmt.Fprintf(os.Stderr, "ERROR: %s: %s\n", prefix, userMsg)
	if suggestion != "" {
		fmt.Fprintf(os.Stderr, "Suggestion: %s\n", suggestion)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "Configuration file path (default is .vault-auth-ldap.yaml in the working or home directory)")
	flags.StringVar(&logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "", "Override log format (text, json)")
	flags.StringVar(&reporterType, "reporter", "", "Result format (text, json)")
	flags.StringVar(&sourceType, "source", "", "Desired-state source (config, hcl)")
	flags.StringVarP(&sourcePath, "file", "f", "", "Desired-state HCL file, used with --source hcl")
	flags.BoolVar(&checkMode, "check", false, "Report differences without writing to Vault")
	flags.BoolVar(&probeLDAP, "probe-ldap", false, "Connect and bind to the LDAP server before touching Vault")
	flags.StringArrayVar(&setOverrides, "set", nil, "Override an option, e.g. --set groupattr=cn (repeatable)")

	viper.BindPFlag("settings.log_level", flags.Lookup("log-level"))
	viper.BindPFlag("settings.log_format", flags.Lookup("log-format"))
	viper.BindPFlag("settings.reporter", flags.Lookup("reporter"))
	viper.BindPFlag("settings.check_mode", flags.Lookup("check"))
	viper.BindPFlag("settings.probe_ldap", flags.Lookup("probe-ldap"))
	viper.BindPFlag("source.type", flags.Lookup("source"))
	viper.BindPFlag("source.path", flags.Lookup("file"))

	viper.SetEnvPrefix("VAULT_AUTH_LDAP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func initializeConfig(cmd *cobra.Command) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".vault-auth-ldap")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			wrapped := apperrors.Wrap(err, apperrors.CodeConfigReadError, "failed to read config file")
			printError("Configuration", wrapped)
			return wrapped
		}
	}
	return nil
}
