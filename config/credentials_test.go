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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCredentialsFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "credentials")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", path)
	return path
}

func TestLoadSharedCredentials(t *testing.T) {
	writeCredentialsFile(t, `
[default]
aws_access_key_id = AKIADEFAULTKEY123456
aws_secret_access_key = default-secret

[staging]
aws_access_key_id = AKIASTAGINGKEY123456
aws_secret_access_key = staging-secret
aws_session_token = staging-token
`)

	t.Run("default profile", func(t *testing.T) {
		creds, err := LoadSharedCredentials("")
		require.NoError(t, err)
		require.NotNil(t, creds)
		assert.Equal(t, "AKIADEFAULTKEY123456", creds.AccessKeyID)
		assert.Equal(t, "default-secret", creds.SecretAccessKey)
		assert.Empty(t, creds.SessionToken)
	})

	t.Run("named profile", func(t *testing.T) {
		creds, err := LoadSharedCredentials("staging")
		require.NoError(t, err)
		require.NotNil(t, creds)
		assert.Equal(t, "AKIASTAGINGKEY123456", creds.AccessKeyID)
		assert.Equal(t, "staging-token", creds.SessionToken)
	})

	t.Run("unknown profile", func(t *testing.T) {
		creds, err := LoadSharedCredentials("production")
		require.NoError(t, err)
		assert.Nil(t, creds)
	})
}

func TestLoadSharedCredentialsMissingFile(t *testing.T) {
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(t.TempDir(), "nope"))

	creds, err := LoadSharedCredentials("default")
	require.NoError(t, err)
	assert.Nil(t, creds)
}

func TestLoadSharedCredentialsIncompleteProfile(t *testing.T) {
	writeCredentialsFile(t, `
[default]
aws_access_key_id = AKIADEFAULTKEY123456
`)

	creds, err := LoadSharedCredentials("default")
	require.NoError(t, err)
	assert.Nil(t, creds)
}
