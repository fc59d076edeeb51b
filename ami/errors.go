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
	"strings"

	"github.com/aws/smithy-go"
)

// WaitPhase identifies which wait loop exceeded its deadline.
type WaitPhase string

// Wait phases for timeout reporting.
const (
	PhaseRecognition WaitPhase = "recognition"
	PhaseCreation    WaitPhase = "creation"
	PhaseDeletion    WaitPhase = "deletion"
)

// ValidationError indicates a required request field is missing or invalid.
// It is raised before any remote call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s %s", e.Field, e.Reason)
}

// NotFoundError indicates the target image does not exist.
type NotFoundError struct {
	ImageID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("image not found: %s", e.ImageID)
}

// ProviderError carries an EC2 API rejection with its code and message
// passed through unmodified.
type ProviderError struct {
	Op      string
	Code    string
	Message string
	Cause   error
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// TimeoutError indicates a wait phase exceeded its deadline. The remote
// mutation may have partially succeeded; the caller owns cleanup.
type TimeoutError struct {
	Phase   WaitPhase
	ImageID string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out during %s phase for image %s", e.Phase, e.ImageID)
}

// notFoundCodes are the EC2 error codes that mean "this image id does not
// resolve to a readable resource". Both spellings appear in the wild.
var notFoundCodes = []string{
	"InvalidAMIID.NotFound",
	"InvalidAMIID.Unavailable",
	"InvalidImageID.NotFound",
}

// isNotFoundErr reports whether err is an EC2 "image does not exist"
// rejection. The API error code is checked first; a substring match
// covers wrapped errors that lost their type.
func isNotFoundErr(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		for _, code := range notFoundCodes {
			if apiErr.ErrorCode() == code {
				return true
			}
		}
		return false
	}

	msg := err.Error()
	for _, code := range notFoundCodes {
		if strings.Contains(msg, code) {
			return true
		}
	}
	return false
}

// providerError wraps an SDK error into a ProviderError, extracting the
// provider's code and message verbatim when available.
func providerError(op string, err error) *ProviderError {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{
			Op:      op,
			Code:    apiErr.ErrorCode(),
			Message: apiErr.ErrorMessage(),
			Cause:   err,
		}
	}
	return &ProviderError{
		Op:      op,
		Message: err.Error(),
		Cause:   err,
	}
}
