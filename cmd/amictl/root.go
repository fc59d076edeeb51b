/*
Copyright © 2026 amictl contributors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

// Package main implements the amictl CLI for managing the lifecycle of
// EC2 machine images: creating an AMI from a running instance and
// deregistering one, with optional bounded waits for the image to reach
// its terminal state.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stackpilot/amictl/ami"
	"github.com/stackpilot/amictl/config"
	"github.com/stackpilot/amictl/logging"
)

// Context key type for storing config
type configKeyType struct{}

var (
	// configKey is the context key for storing the config
	configKey = configKeyType{}

	// Root command options
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "amictl",
	Short: "amictl - EC2 machine image lifecycle tool",
	Long: `amictl creates and deregisters EC2 machine images (AMIs).

It issues the mutating API call and then polls the provider until the
image reaches its terminal state or a deadline expires.`,
	Version:           version,
	PersistentPreRunE: initConfig,
	SilenceUsage:      true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is $HOME/.amictl/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text, json, color)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format for results (text, json, yaml)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Quiet mode - only show errors")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose mode - show debug output")
	rootCmd.PersistentFlags().String("region", "", "AWS region")
	rootCmd.PersistentFlags().String("profile", "", "AWS shared config profile")
	rootCmd.PersistentFlags().String("endpoint-url", "", "EC2 endpoint URL override")
	rootCmd.PersistentFlags().String("access-key", "", "AWS access key id")
	rootCmd.PersistentFlags().String("secret-key", "", "AWS secret access key")
	rootCmd.PersistentFlags().String("session-token", "", "AWS session token")

	// Add subcommands
	rootCmd.AddCommand(imageCmd)
	rootCmd.AddCommand(versionCmd)
}

// configFromContext retrieves the config from the command context.
// Returns nil if no config is stored in context.
func configFromContext(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey).(*config.Config); ok {
		return cfg
	}
	return nil
}

// initConfig initializes configuration with proper precedence:
// CLI Flags > Environment Variables > Config File > Defaults
func initConfig(cmd *cobra.Command, args []string) error {
	var cfg *config.Config
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFromPath(cfgFile)
	} else {
		cfg, err = config.Load()
	}

	if err != nil {
		logging.FromContext(cmd.Context()).Warn("failed to load config, using defaults: %v", err)
		cfg = &config.Config{}
	}

	// A fresh Viper instance for flag binding; defaults come from the
	// loaded config so flags and env can override it.
	v := viper.New()
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("output", cfg.Output)
	v.SetDefault("region", cfg.AWS.Region)
	v.SetDefault("profile", cfg.AWS.Profile)
	v.SetDefault("endpoint_url", cfg.AWS.EndpointURL)
	v.SetDefault("access_key", cfg.AWS.AccessKeyID)
	v.SetDefault("secret_key", cfg.AWS.SecretAccessKey)
	v.SetDefault("session_token", cfg.AWS.SessionToken)

	v.SetEnvPrefix("AMICTL")
	v.AutomaticEnv()

	viperKeys := map[string]string{
		"log-level":     "log.level",
		"log-format":    "log.format",
		"output":        "output",
		"region":        "region",
		"profile":       "profile",
		"endpoint-url":  "endpoint_url",
		"access-key":    "access_key",
		"secret-key":    "secret_key",
		"session-token": "session_token",
	}
	var bindErr error
	cmd.Root().PersistentFlags().VisitAll(func(f *pflag.Flag) {
		key, ok := viperKeys[f.Name]
		if !ok {
			return
		}
		if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
			bindErr = fmt.Errorf("failed to bind %s flag: %w", f.Name, err)
		}
	})
	if bindErr != nil {
		return bindErr
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	verbose, _ := cmd.Flags().GetBool("verbose")

	// Write final values back into the config handed to subcommands.
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")
	cfg.Output = v.GetString("output")
	cfg.AWS.Region = v.GetString("region")
	cfg.AWS.Profile = v.GetString("profile")
	cfg.AWS.EndpointURL = v.GetString("endpoint_url")
	cfg.AWS.AccessKeyID = v.GetString("access_key")
	cfg.AWS.SecretAccessKey = v.GetString("secret_key")
	cfg.AWS.SessionToken = v.GetString("session_token")

	logger := logging.NewWithOptions(cfg.Log.Level, cfg.Log.Format, quiet, verbose)
	ctx := context.WithValue(cmd.Context(), configKey, cfg)
	ctx = logging.WithLogger(ctx, logger)
	cmd.SetContext(ctx)

	return nil
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logger := logging.FromContext(rootCmd.Context())
		logger.Error(err)
		if hint := remediationHint(err); hint != "" {
			logger.Warn("hint: %s", hint)
		}
	}
	return err
}

// newController builds AWS clients and a lifecycle controller from the
// resolved configuration.
func newController(ctx context.Context, cfg *config.Config) (*ami.Controller, error) {
	clientCfg := ami.ClientConfig{
		Region:          cfg.AWS.Region,
		Profile:         cfg.AWS.Profile,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		SessionToken:    cfg.AWS.SessionToken,
		EndpointURL:     cfg.AWS.EndpointURL,
	}

	// When no explicit keys are configured, try the shared credentials
	// file so a custom endpoint can still be used with file-based keys.
	if clientCfg.AccessKeyID == "" {
		creds, err := config.LoadSharedCredentials(clientCfg.Profile)
		if err != nil {
			logging.DebugContext(ctx, "Shared credentials not usable: %v", err)
		} else if creds != nil {
			logging.DebugContext(ctx, "Using shared credentials file (access key %s)",
				logging.RedactAccessKeyID(creds.AccessKeyID))
			clientCfg.AccessKeyID = creds.AccessKeyID
			clientCfg.SecretAccessKey = creds.SecretAccessKey
			clientCfg.SessionToken = creds.SessionToken
		}
	}

	clients, err := ami.NewAWSClients(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS clients: %w", err)
	}

	var opts []ami.ControllerOption
	if cfg.AWS.AMI.PollIntervalSec > 0 {
		opts = append(opts, ami.WithPollInterval(time.Duration(cfg.AWS.AMI.PollIntervalSec)*time.Second))
	}
	if cfg.AWS.AMI.RecognitionAttempts > 0 && cfg.AWS.AMI.RecognitionIntervalSec > 0 {
		opts = append(opts, ami.WithRecognition(
			cfg.AWS.AMI.RecognitionAttempts,
			time.Duration(cfg.AWS.AMI.RecognitionIntervalSec)*time.Second,
		))
	}

	return ami.NewController(clients, opts...), nil
}
