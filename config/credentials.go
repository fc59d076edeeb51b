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

package config

import (
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// SharedCredentials holds a credential set read from the AWS shared
// credentials file.
type SharedCredentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// LoadSharedCredentials reads ~/.aws/credentials (or the file named by
// AWS_SHARED_CREDENTIALS_FILE) and returns the credential set for the
// given profile. An empty profile means "default". A missing file or
// profile returns nil without error: the SDK's own credential chain is
// the next fallback, this is only an explicit-resolution convenience for
// dumping and validating configuration.
func LoadSharedCredentials(profile string) (*SharedCredentials, error) {
	path := os.Getenv("AWS_SHARED_CREDENTIALS_FILE")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".aws", "credentials")
	}

	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}

	if profile == "" {
		profile = "default"
	}

	section, err := cfg.GetSection(profile)
	if err != nil {
		return nil, nil
	}

	creds := &SharedCredentials{
		AccessKeyID:     section.Key("aws_access_key_id").String(),
		SecretAccessKey: section.Key("aws_secret_access_key").String(),
		SessionToken:    section.Key("aws_session_token").String(),
	}

	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return nil, nil
	}

	return creds, nil
}
