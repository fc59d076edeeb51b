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

// Package config loads the global amictl configuration with the
// precedence: CLI flags > environment variables > config file > defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the global amictl configuration.
type Config struct {
	Log    LogConfig `mapstructure:"log"`
	Output string    `mapstructure:"output"`
	AWS    AWSConfig `mapstructure:"aws"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AWSConfig holds AWS credential and region configuration
type AWSConfig struct {
	Region          string    `mapstructure:"region"`
	Profile         string    `mapstructure:"profile"`
	AccessKeyID     string    `mapstructure:"access_key_id"`
	SecretAccessKey string    `mapstructure:"secret_access_key"`
	SessionToken    string    `mapstructure:"session_token"`
	EndpointURL     string    `mapstructure:"endpoint_url"`
	AMI             AMIConfig `mapstructure:"ami"`
}

// AMIConfig holds image lifecycle polling configuration
type AMIConfig struct {
	WaitTimeoutSec         int `mapstructure:"wait_timeout_sec"`
	PollIntervalSec        int `mapstructure:"poll_interval_sec"`
	RecognitionAttempts    int `mapstructure:"recognition_attempts"`
	RecognitionIntervalSec int `mapstructure:"recognition_interval_sec"`
}

// Load reads and parses the global configuration file.
// Returns a Config with defaults if no config file exists.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	home, err := os.UserHomeDir()
	if err == nil {
		v.AddConfigPath(filepath.Join(home, ".amictl"))
		v.AddConfigPath(filepath.Join(home, ".config", "amictl")) // XDG standard
	}
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvPrefix("AMICTL")
	v.AutomaticEnv()
	bindEnvVars(v)

	// Config file is optional
	_ = v.ReadInConfig()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadFromPath loads configuration from a specific file path
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	setDefaults(v)

	v.SetEnvPrefix("AMICTL")
	v.AutomaticEnv()
	bindEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for all configuration options
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "color")
	v.SetDefault("output", "text")

	// AWS defaults (SDK defaults apply when empty)
	v.SetDefault("aws.region", "")
	v.SetDefault("aws.profile", "")
	v.SetDefault("aws.endpoint_url", "")

	v.SetDefault("aws.ami.wait_timeout_sec", 900)
	v.SetDefault("aws.ami.poll_interval_sec", 3)
	v.SetDefault("aws.ami.recognition_attempts", 30)
	v.SetDefault("aws.ami.recognition_interval_sec", 1)
}

// bindEnvVars explicitly binds environment variables to config keys.
// Each key also honors the legacy EC2-era aliases so existing automation
// environments keep working.
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("log.level", "AMICTL_LOG_LEVEL")
	_ = v.BindEnv("log.format", "AMICTL_LOG_FORMAT")
	_ = v.BindEnv("output", "AMICTL_OUTPUT")

	_ = v.BindEnv("aws.region", "AMICTL_AWS_REGION", "AWS_REGION", "EC2_REGION")
	_ = v.BindEnv("aws.profile", "AMICTL_AWS_PROFILE", "AWS_PROFILE")
	_ = v.BindEnv("aws.access_key_id", "AMICTL_AWS_ACCESS_KEY_ID", "AWS_ACCESS_KEY_ID", "AWS_ACCESS_KEY")
	_ = v.BindEnv("aws.secret_access_key", "AMICTL_AWS_SECRET_ACCESS_KEY", "AWS_SECRET_ACCESS_KEY", "AWS_SECRET_KEY")
	_ = v.BindEnv("aws.session_token", "AMICTL_AWS_SESSION_TOKEN", "AWS_SESSION_TOKEN")
	_ = v.BindEnv("aws.endpoint_url", "AMICTL_AWS_ENDPOINT_URL", "EC2_URL")
}
