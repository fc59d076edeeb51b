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

// Package cli holds the option structs, input parsing, and result
// rendering shared by the amictl commands.
package cli

// CreateCLIOptions defines command-line options for the image create command.
//
// These capture options provided by the user via flags and are validated
// before being passed to the lifecycle controller.
type CreateCLIOptions struct {
	// InstanceID specifies the source EC2 instance to image.
	InstanceID string

	// Name specifies the name of the new image.
	Name string

	// Description specifies the description of the new image.
	Description string

	// NoReboot suppresses the pre-snapshot instance reboot.
	NoReboot bool

	// Tags specifies tags to apply to the image (unparsed key=value strings).
	Tags []string

	// Wait blocks until the image is available.
	Wait bool

	// WaitTimeout is the wait deadline in seconds.
	WaitTimeout int
}

// DeregisterCLIOptions defines command-line options for the image
// deregister command.
type DeregisterCLIOptions struct {
	// ImageID specifies the image to deregister.
	ImageID string

	// DeleteSnapshots also deletes the image's backing EBS snapshots.
	DeleteSnapshots bool

	// Wait blocks until the image is gone.
	Wait bool

	// WaitTimeout is the wait deadline in seconds.
	WaitTimeout int
}

// ListCLIOptions defines command-line options for the image list command.
type ListCLIOptions struct {
	// Filters specifies EC2 describe filters (unparsed name=value strings).
	Filters []string
}
