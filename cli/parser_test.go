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

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantKey   string
		wantValue string
		wantErr   bool
	}{
		{
			name:      "simple pair",
			input:     "Environment=prod",
			wantKey:   "Environment",
			wantValue: "prod",
		},
		{
			name:      "value contains equals",
			input:     "query=a=b",
			wantKey:   "query",
			wantValue: "a=b",
		},
		{
			name:      "empty value",
			input:     "Name=",
			wantKey:   "Name",
			wantValue: "",
		},
		{
			name:    "missing separator",
			input:   "Environment",
			wantErr: true,
		},
		{
			name:    "empty key",
			input:   "=prod",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			key, value, err := ParseKeyValue(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantKey, key)
			assert.Equal(t, tc.wantValue, value)
		})
	}
}

func TestParseKeyValuePairs(t *testing.T) {
	t.Parallel()

	t.Run("multiple pairs", func(t *testing.T) {
		pairs, err := ParseKeyValuePairs([]string{"Environment=prod", "Team=platform"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"Environment": "prod",
			"Team":        "platform",
		}, pairs)
	})

	t.Run("later duplicate wins", func(t *testing.T) {
		pairs, err := ParseKeyValuePairs([]string{"Environment=dev", "Environment=prod"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"Environment": "prod"}, pairs)
	})

	t.Run("empty input yields nil map", func(t *testing.T) {
		pairs, err := ParseKeyValuePairs(nil)
		require.NoError(t, err)
		assert.Nil(t, pairs)
	})

	t.Run("invalid entry fails the whole parse", func(t *testing.T) {
		_, err := ParseKeyValuePairs([]string{"Environment=prod", "bogus"})
		require.Error(t, err)
	})
}
