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

package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stackpilot/amictl/ami"
	"github.com/stretchr/testify/assert"
)

func TestRemediationHint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "creation timeout",
			err:  &ami.TimeoutError{Phase: ami.PhaseCreation, ImageID: "ami-1"},
			want: "may still complete",
		},
		{
			name: "deletion timeout",
			err:  &ami.TimeoutError{Phase: ami.PhaseDeletion, ImageID: "ami-1"},
			want: "may still disappear",
		},
		{
			name: "auth failure",
			err:  &ami.ProviderError{Op: "failed to create image", Code: "AuthFailure"},
			want: "credentials",
		},
		{
			name: "wrapped provider error",
			err:  fmt.Errorf("create: %w", &ami.ProviderError{Code: "UnauthorizedOperation"}),
			want: "permissions",
		},
		{
			name: "unknown provider code",
			err:  &ami.ProviderError{Code: "InternalError"},
			want: "",
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hint := remediationHint(tc.err)
			if tc.want == "" {
				assert.Empty(t, hint)
				return
			}
			assert.Contains(t, hint, tc.want)
		})
	}
}
