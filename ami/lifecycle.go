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

// Package ami manages the lifecycle of EC2 machine images: creating an
// AMI from a running instance and deregistering one, with bounded waits
// for the image to reach its terminal state.
//
// EC2 image creation is eventually consistent: a successful CreateImage
// call does not guarantee the new image id is immediately readable. The
// controller therefore runs a recognition loop after create, tolerating
// only "image not found" reads, before any state wait begins.
package ami

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stackpilot/amictl/logging"
)

// Polling defaults. WaitTimeout bounds both the create-wait and
// delete-wait loops, measured from the moment the mutating call is made.
const (
	DefaultWaitTimeout         = 900 * time.Second
	DefaultPollInterval        = 3 * time.Second
	DefaultRecognitionAttempts = 30
	DefaultRecognitionInterval = time.Second
)

// CreateRequest describes an image to create from a running instance.
type CreateRequest struct {
	// InstanceID is the source EC2 instance. Required.
	InstanceID string

	// Name is the name of the new image. Required.
	Name string

	// Description is attached to the new image. Optional.
	Description string

	// NoReboot suppresses the instance reboot EC2 performs by default
	// before snapshotting. The filesystem may be inconsistent.
	NoReboot bool

	// Tags are applied to the new image once it is visible.
	Tags map[string]string

	// Wait blocks until the image reaches the "available" state.
	Wait bool

	// WaitTimeout bounds the wait. Zero means DefaultWaitTimeout.
	WaitTimeout time.Duration
}

func (r CreateRequest) validate() error {
	if r.InstanceID == "" {
		return &ValidationError{Field: "instance-id", Reason: "is required when creating an image"}
	}
	if r.Name == "" {
		return &ValidationError{Field: "name", Reason: "is required when creating an image"}
	}
	return nil
}

// DeregisterRequest describes an image to deregister.
type DeregisterRequest struct {
	// ImageID is the image to deregister. Required.
	ImageID string

	// DeleteSnapshots also deletes the EBS snapshots backing the image.
	DeleteSnapshots bool

	// Wait blocks until the image is no longer readable.
	Wait bool

	// WaitTimeout bounds the wait. Zero means DefaultWaitTimeout.
	WaitTimeout time.Duration
}

func (r DeregisterRequest) validate() error {
	if r.ImageID == "" {
		return &ValidationError{Field: "image-id", Reason: "is required when deregistering an image"}
	}
	return nil
}

// CreateResult reports a completed create operation.
type CreateResult struct {
	ImageID string
	State   string
	Changed bool
}

// DeregisterResult reports a completed deregister operation.
type DeregisterResult struct {
	ImageID     string
	SnapshotIDs []string
	Changed     bool
}

// Controller drives image lifecycle operations against EC2. A single
// invocation performs at most one mutating call followed by a bounded,
// sequential polling loop; there is no shared mutable state.
type Controller struct {
	clients *AWSClients
	clock   Clock

	pollInterval        time.Duration
	recognitionAttempts int
	recognitionInterval time.Duration
}

// ControllerOption customizes a Controller.
type ControllerOption func(*Controller)

// WithClock replaces the wall clock, used by tests to simulate elapsed
// time without real delays.
func WithClock(clock Clock) ControllerOption {
	return func(c *Controller) { c.clock = clock }
}

// WithPollInterval sets the interval between state polls.
func WithPollInterval(d time.Duration) ControllerOption {
	return func(c *Controller) { c.pollInterval = d }
}

// WithRecognition sets the attempt budget and spacing of the
// post-create recognition loop.
func WithRecognition(attempts int, interval time.Duration) ControllerOption {
	return func(c *Controller) {
		c.recognitionAttempts = attempts
		c.recognitionInterval = interval
	}
}

// NewController creates a lifecycle controller over the given clients.
func NewController(clients *AWSClients, opts ...ControllerOption) *Controller {
	c := &Controller{
		clients:             clients,
		clock:               realClock{},
		pollInterval:        DefaultPollInterval,
		recognitionAttempts: DefaultRecognitionAttempts,
		recognitionInterval: DefaultRecognitionInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// imageReadStatus tags the outcome of a describe call so callers switch
// on it explicitly instead of inspecting error codes.
type imageReadStatus int

const (
	imageFound imageReadStatus = iota
	imageMissing
	imageReadFailed
)

type imageRead struct {
	status imageReadStatus
	image  *ec2types.Image
	err    error
}

// readImage describes a single image by id. A NotFound rejection and an
// empty result set both report imageMissing; any other failure reports
// imageReadFailed with the cause.
func (c *Controller) readImage(ctx context.Context, imageID string) imageRead {
	input := &ec2.DescribeImagesInput{
		ImageIds: []string{imageID},
	}

	result, err := c.clients.EC2.DescribeImages(ctx, input)
	if err != nil {
		if isNotFoundErr(err) {
			return imageRead{status: imageMissing}
		}
		return imageRead{status: imageReadFailed, err: err}
	}

	if len(result.Images) == 0 {
		return imageRead{status: imageMissing}
	}

	return imageRead{status: imageFound, image: &result.Images[0]}
}

// Create registers a new image from a running instance. It always polls
// until the new image id becomes readable (recognition); when req.Wait
// is set it additionally polls until the image state is "available" or
// req.WaitTimeout elapses, measured from the CreateImage call.
func (c *Controller) Create(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	waitTimeout := req.WaitTimeout
	if waitTimeout <= 0 {
		waitTimeout = DefaultWaitTimeout
	}
	deadline := c.clock.Now().Add(waitTimeout)

	input := &ec2.CreateImageInput{
		InstanceId: aws.String(req.InstanceID),
		Name:       aws.String(req.Name),
		NoReboot:   aws.Bool(req.NoReboot),
	}
	if req.Description != "" {
		input.Description = aws.String(req.Description)
	}

	out, err := c.clients.EC2.CreateImage(ctx, input)
	if err != nil {
		return nil, providerError("failed to create image", err)
	}

	imageID := aws.ToString(out.ImageId)
	logging.InfoContext(ctx, "Image creation started: %s (source instance: %s)", imageID, req.InstanceID)

	image, err := c.waitForRecognition(ctx, imageID)
	if err != nil {
		return nil, err
	}

	if len(req.Tags) > 0 {
		// The image exists even if tagging fails; don't fail the create.
		if err := c.tagImage(ctx, imageID, req.Tags); err != nil {
			logging.WarnContext(ctx, "Failed to tag image %s: %v", imageID, err)
		}
	}

	state := string(image.State)
	if req.Wait {
		state, err = c.waitForAvailable(ctx, imageID, deadline)
		if err != nil {
			return nil, err
		}
	}

	return &CreateResult{
		ImageID: imageID,
		State:   state,
		Changed: true,
	}, nil
}

// waitForRecognition polls the describe API until the just-created image
// id becomes readable. Only "not found yet" reads are tolerated; any
// other read failure aborts immediately.
func (c *Controller) waitForRecognition(ctx context.Context, imageID string) (*ec2types.Image, error) {
	for attempt := 1; attempt <= c.recognitionAttempts; attempt++ {
		read := c.readImage(ctx, imageID)
		switch read.status {
		case imageFound:
			return read.image, nil
		case imageReadFailed:
			return nil, providerError("failed to describe image", read.err)
		}

		logging.DebugContext(ctx, "Image %s not visible yet (attempt %d/%d)", imageID, attempt, c.recognitionAttempts)

		if attempt < c.recognitionAttempts {
			if err := c.clock.Sleep(ctx, c.recognitionInterval); err != nil {
				return nil, err
			}
		}
	}

	return nil, &TimeoutError{Phase: PhaseRecognition, ImageID: imageID}
}

// waitForAvailable polls until the image state is "available" or the
// deadline passes. A read that reports the image missing keeps polling:
// recognition already succeeded once, so a NotFound here is another
// consistency blip. Any other read failure and any failed image state
// are fatal.
func (c *Controller) waitForAvailable(ctx context.Context, imageID string, deadline time.Time) (string, error) {
	for {
		read := c.readImage(ctx, imageID)
		switch read.status {
		case imageReadFailed:
			return "", providerError("failed to describe image", read.err)
		case imageFound:
			state := read.image.State
			switch state {
			case ec2types.ImageStateAvailable:
				logging.InfoContext(ctx, "Image %s is available", imageID)
				return string(state), nil
			case ec2types.ImageStateFailed, ec2types.ImageStateInvalid, ec2types.ImageStateError, ec2types.ImageStateDeregistered:
				return "", &ProviderError{
					Op:      "failed waiting for image",
					Code:    "InvalidImageState",
					Message: "image " + imageID + " entered state " + string(state),
				}
			default:
				logging.DebugContext(ctx, "Image %s state: %s", imageID, state)
			}
		case imageMissing:
			logging.DebugContext(ctx, "Image %s not readable, re-polling", imageID)
		}

		if !c.clock.Now().Add(c.pollInterval).After(deadline) {
			if err := c.clock.Sleep(ctx, c.pollInterval); err != nil {
				return "", err
			}
			continue
		}

		return "", &TimeoutError{Phase: PhaseCreation, ImageID: imageID}
	}
}

// Deregister removes an image, optionally deleting its backing EBS
// snapshots. When req.Wait is set it polls until the image is no longer
// readable or req.WaitTimeout elapses, measured from the DeregisterImage
// call.
func (c *Controller) Deregister(ctx context.Context, req DeregisterRequest) (*DeregisterResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	waitTimeout := req.WaitTimeout
	if waitTimeout <= 0 {
		waitTimeout = DefaultWaitTimeout
	}

	read := c.readImage(ctx, req.ImageID)
	switch read.status {
	case imageMissing:
		return nil, &NotFoundError{ImageID: req.ImageID}
	case imageReadFailed:
		return nil, providerError("failed to describe image", read.err)
	}

	// Snapshot ids must be collected before deregistering; the block
	// device mappings are gone afterwards.
	var snapshotIDs []string
	if req.DeleteSnapshots {
		for _, bdm := range read.image.BlockDeviceMappings {
			if bdm.Ebs != nil && bdm.Ebs.SnapshotId != nil {
				snapshotIDs = append(snapshotIDs, *bdm.Ebs.SnapshotId)
			}
		}
	}

	deadline := c.clock.Now().Add(waitTimeout)

	_, err := c.clients.EC2.DeregisterImage(ctx, &ec2.DeregisterImageInput{
		ImageId: aws.String(req.ImageID),
	})
	if err != nil {
		return nil, providerError("failed to deregister image", err)
	}

	logging.InfoContext(ctx, "Image deregistered: %s", req.ImageID)

	for _, snapshotID := range snapshotIDs {
		if err := c.deleteSnapshot(ctx, snapshotID); err != nil {
			logging.WarnContext(ctx, "Failed to delete snapshot %s: %v", snapshotID, err)
		}
	}

	if req.Wait {
		if err := c.waitForDeregistered(ctx, req.ImageID, deadline); err != nil {
			return nil, err
		}
	}

	return &DeregisterResult{
		ImageID:     req.ImageID,
		SnapshotIDs: snapshotIDs,
		Changed:     true,
	}, nil
}

// waitForDeregistered polls until the image is gone. A read reporting
// the image missing or already in the deregistered state completes the
// wait; another actor deleting the image mid-poll counts as success.
func (c *Controller) waitForDeregistered(ctx context.Context, imageID string, deadline time.Time) error {
	for {
		read := c.readImage(ctx, imageID)
		switch read.status {
		case imageMissing:
			logging.InfoContext(ctx, "Image %s is gone", imageID)
			return nil
		case imageReadFailed:
			return providerError("failed to describe image", read.err)
		case imageFound:
			if read.image.State == ec2types.ImageStateDeregistered {
				return nil
			}
			logging.DebugContext(ctx, "Image %s still readable (state: %s)", imageID, read.image.State)
		}

		if !c.clock.Now().Add(c.pollInterval).After(deadline) {
			if err := c.clock.Sleep(ctx, c.pollInterval); err != nil {
				return err
			}
			continue
		}

		return &TimeoutError{Phase: PhaseDeletion, ImageID: imageID}
	}
}

// deleteSnapshot deletes a single EBS snapshot backing a deregistered image.
func (c *Controller) deleteSnapshot(ctx context.Context, snapshotID string) error {
	logging.DebugContext(ctx, "Deleting snapshot: %s", snapshotID)

	_, err := c.clients.EC2.DeleteSnapshot(ctx, &ec2.DeleteSnapshotInput{
		SnapshotId: aws.String(snapshotID),
	})
	if err != nil {
		return providerError("failed to delete snapshot", err)
	}

	logging.DebugContext(ctx, "Snapshot deleted: %s", snapshotID)
	return nil
}

// tagImage applies tags to an image.
func (c *Controller) tagImage(ctx context.Context, imageID string, tags map[string]string) error {
	ec2Tags := make([]ec2types.Tag, 0, len(tags))
	for key, value := range tags {
		ec2Tags = append(ec2Tags, ec2types.Tag{
			Key:   aws.String(key),
			Value: aws.String(value),
		})
	}

	_, err := c.clients.EC2.CreateTags(ctx, &ec2.CreateTagsInput{
		Resources: []string{imageID},
		Tags:      ec2Tags,
	})
	if err != nil {
		return providerError("failed to tag image", err)
	}
	return nil
}
