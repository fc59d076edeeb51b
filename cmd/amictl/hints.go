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

	"github.com/stackpilot/amictl/ami"
)

// remediationHint maps common terminal errors to a next step the
// operator can take. Returns "" when there is nothing useful to add.
func remediationHint(err error) string {
	var terr *ami.TimeoutError
	if errors.As(err, &terr) {
		switch terr.Phase {
		case ami.PhaseRecognition, ami.PhaseCreation:
			return "the image may still complete in the background; check its state with 'amictl image list'"
		case ami.PhaseDeletion:
			return "the image may still disappear; re-check with 'amictl image list'"
		}
	}

	var perr *ami.ProviderError
	if errors.As(err, &perr) {
		switch perr.Code {
		case "AuthFailure", "UnauthorizedOperation":
			return "verify your AWS credentials and that the principal has the required ec2 permissions"
		case "RequestExpired":
			return "your credentials or request signature expired; refresh the session and check the system clock"
		case "InvalidAMIID.Malformed":
			return "image ids look like ami-0123456789abcdef0; check the id"
		case "InvalidInstanceID.NotFound", "InvalidInstanceID.Malformed":
			return "check the instance id and that you are targeting the right region"
		}
	}

	return ""
}
