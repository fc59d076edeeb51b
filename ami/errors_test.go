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

package ami

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNotFoundErr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "api error with not found code",
			err:  &smithy.GenericAPIError{Code: "InvalidAMIID.NotFound", Message: "does not exist"},
			want: true,
		},
		{
			name: "api error with unavailable code",
			err:  &smithy.GenericAPIError{Code: "InvalidAMIID.Unavailable", Message: "unavailable"},
			want: true,
		},
		{
			name: "api error with image id spelling",
			err:  &smithy.GenericAPIError{Code: "InvalidImageID.NotFound", Message: "does not exist"},
			want: true,
		},
		{
			name: "api error with other code",
			err:  &smithy.GenericAPIError{Code: "AuthFailure", Message: "bad credentials"},
			want: false,
		},
		{
			name: "wrapped api error",
			err:  fmt.Errorf("describe: %w", &smithy.GenericAPIError{Code: "InvalidAMIID.NotFound"}),
			want: true,
		},
		{
			name: "untyped error with code in message",
			err:  errors.New("operation error EC2: DescribeImages, InvalidAMIID.NotFound: does not exist"),
			want: true,
		},
		{
			name: "untyped unrelated error",
			err:  errors.New("connection refused"),
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isNotFoundErr(tc.err))
		})
	}
}

func TestProviderErrorPreservesCodeAndMessage(t *testing.T) {
	t.Parallel()

	apiErr := &smithy.GenericAPIError{
		Code:    "UnauthorizedOperation",
		Message: "You are not authorized to perform this operation",
	}

	perr := providerError("failed to create image", apiErr)
	assert.Equal(t, "UnauthorizedOperation", perr.Code)
	assert.Equal(t, "You are not authorized to perform this operation", perr.Message)
	assert.Equal(t, "failed to create image: UnauthorizedOperation: You are not authorized to perform this operation", perr.Error())

	// The original error stays reachable through the chain.
	var unwrapped smithy.APIError
	require.ErrorAs(t, perr, &unwrapped)
	assert.Equal(t, "UnauthorizedOperation", unwrapped.ErrorCode())
}

func TestProviderErrorWithoutAPIError(t *testing.T) {
	t.Parallel()

	perr := providerError("failed to describe image", errors.New("dial tcp: connection refused"))
	assert.Empty(t, perr.Code)
	assert.Equal(t, "failed to describe image: dial tcp: connection refused", perr.Error())
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "validation",
			err:  &ValidationError{Field: "instance-id", Reason: "is required when creating an image"},
			want: "invalid request: instance-id is required when creating an image",
		},
		{
			name: "not found",
			err:  &NotFoundError{ImageID: "ami-0abc"},
			want: "image not found: ami-0abc",
		},
		{
			name: "timeout during recognition",
			err:  &TimeoutError{Phase: PhaseRecognition, ImageID: "ami-0abc"},
			want: "timed out during recognition phase for image ami-0abc",
		},
		{
			name: "timeout during deletion",
			err:  &TimeoutError{Phase: PhaseDeletion, ImageID: "ami-0abc"},
			want: "timed out during deletion phase for image ami-0abc",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}
