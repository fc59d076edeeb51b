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
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// Image is a read-model summary of a machine image.
type Image struct {
	ID           string            `json:"image_id" yaml:"image_id"`
	Name         string            `json:"name" yaml:"name"`
	State        string            `json:"state" yaml:"state"`
	Description  string            `json:"description,omitempty" yaml:"description,omitempty"`
	CreationDate string            `json:"creation_date,omitempty" yaml:"creation_date,omitempty"`
	SnapshotIDs  []string          `json:"snapshot_ids,omitempty" yaml:"snapshot_ids,omitempty"`
	Tags         map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

func summarizeImage(img *ec2types.Image) Image {
	out := Image{
		ID:           aws.ToString(img.ImageId),
		Name:         aws.ToString(img.Name),
		State:        string(img.State),
		Description:  aws.ToString(img.Description),
		CreationDate: aws.ToString(img.CreationDate),
	}

	for _, bdm := range img.BlockDeviceMappings {
		if bdm.Ebs != nil && bdm.Ebs.SnapshotId != nil {
			out.SnapshotIDs = append(out.SnapshotIDs, *bdm.Ebs.SnapshotId)
		}
	}

	if len(img.Tags) > 0 {
		out.Tags = make(map[string]string, len(img.Tags))
		for _, tag := range img.Tags {
			out.Tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
		}
	}

	return out
}

// Get retrieves a single image by id.
func (c *Controller) Get(ctx context.Context, imageID string) (*Image, error) {
	if imageID == "" {
		return nil, &ValidationError{Field: "image-id", Reason: "is required"}
	}

	read := c.readImage(ctx, imageID)
	switch read.status {
	case imageMissing:
		return nil, &NotFoundError{ImageID: imageID}
	case imageReadFailed:
		return nil, providerError("failed to describe image", read.err)
	}

	img := summarizeImage(read.image)
	return &img, nil
}

// List returns images owned by the caller, optionally narrowed by EC2
// describe filters (e.g. "name" or "tag:team").
func (c *Controller) List(ctx context.Context, filters map[string]string) ([]Image, error) {
	input := &ec2.DescribeImagesInput{
		Owners: []string{"self"},
	}

	if len(filters) > 0 {
		var ec2Filters []ec2types.Filter
		for key, value := range filters {
			ec2Filters = append(ec2Filters, ec2types.Filter{
				Name:   aws.String(key),
				Values: []string{value},
			})
		}
		input.Filters = ec2Filters
	}

	result, err := c.clients.EC2.DescribeImages(ctx, input)
	if err != nil {
		return nil, providerError("failed to list images", err)
	}

	images := make([]Image, 0, len(result.Images))
	for i := range result.Images {
		images = append(images, summarizeImage(&result.Images[i]))
	}

	return images, nil
}
