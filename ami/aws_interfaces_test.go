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
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
)

// MockEC2Client is a mock implementation of EC2API. Each method
// dispatches to the corresponding Func field; unset fields return empty
// outputs so tests only stub what they exercise.
type MockEC2Client struct {
	CreateImageFunc     func(ctx context.Context, params *ec2.CreateImageInput, optFns ...func(*ec2.Options)) (*ec2.CreateImageOutput, error)
	DescribeImagesFunc  func(ctx context.Context, params *ec2.DescribeImagesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeImagesOutput, error)
	DeregisterImageFunc func(ctx context.Context, params *ec2.DeregisterImageInput, optFns ...func(*ec2.Options)) (*ec2.DeregisterImageOutput, error)
	DeleteSnapshotFunc  func(ctx context.Context, params *ec2.DeleteSnapshotInput, optFns ...func(*ec2.Options)) (*ec2.DeleteSnapshotOutput, error)
	CreateTagsFunc      func(ctx context.Context, params *ec2.CreateTagsInput, optFns ...func(*ec2.Options)) (*ec2.CreateTagsOutput, error)
}

// Compile-time check that the mock satisfies the interface.
var _ EC2API = (*MockEC2Client)(nil)

func (m *MockEC2Client) CreateImage(ctx context.Context, params *ec2.CreateImageInput, optFns ...func(*ec2.Options)) (*ec2.CreateImageOutput, error) {
	if m.CreateImageFunc != nil {
		return m.CreateImageFunc(ctx, params, optFns...)
	}
	return &ec2.CreateImageOutput{}, nil
}

func (m *MockEC2Client) DescribeImages(ctx context.Context, params *ec2.DescribeImagesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeImagesOutput, error) {
	if m.DescribeImagesFunc != nil {
		return m.DescribeImagesFunc(ctx, params, optFns...)
	}
	return &ec2.DescribeImagesOutput{}, nil
}

func (m *MockEC2Client) DeregisterImage(ctx context.Context, params *ec2.DeregisterImageInput, optFns ...func(*ec2.Options)) (*ec2.DeregisterImageOutput, error) {
	if m.DeregisterImageFunc != nil {
		return m.DeregisterImageFunc(ctx, params, optFns...)
	}
	return &ec2.DeregisterImageOutput{}, nil
}

func (m *MockEC2Client) DeleteSnapshot(ctx context.Context, params *ec2.DeleteSnapshotInput, optFns ...func(*ec2.Options)) (*ec2.DeleteSnapshotOutput, error) {
	if m.DeleteSnapshotFunc != nil {
		return m.DeleteSnapshotFunc(ctx, params, optFns...)
	}
	return &ec2.DeleteSnapshotOutput{}, nil
}

func (m *MockEC2Client) CreateTags(ctx context.Context, params *ec2.CreateTagsInput, optFns ...func(*ec2.Options)) (*ec2.CreateTagsOutput, error) {
	if m.CreateTagsFunc != nil {
		return m.CreateTagsFunc(ctx, params, optFns...)
	}
	return &ec2.CreateTagsOutput{}, nil
}

// newMockAWSClients wraps a mock EC2 client in the AWSClients struct the
// controller expects.
func newMockAWSClients(mock *MockEC2Client) *AWSClients {
	return &AWSClients{
		EC2:    mock,
		Config: aws.Config{Region: "us-east-1"},
	}
}

// describeState returns a DescribeImagesFunc that always reports the
// image in the given state.
func describeState(imageID string, state ec2types.ImageState) func(ctx context.Context, params *ec2.DescribeImagesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeImagesOutput, error) {
	return func(ctx context.Context, params *ec2.DescribeImagesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeImagesOutput, error) {
		return &ec2.DescribeImagesOutput{
			Images: []ec2types.Image{
				{ImageId: aws.String(imageID), State: state},
			},
		}, nil
	}
}

func TestMockEC2ClientDefaults(t *testing.T) {
	t.Parallel()

	mock := &MockEC2Client{}
	ctx := context.Background()

	out, err := mock.DescribeImages(ctx, &ec2.DescribeImagesInput{})
	assert.NoError(t, err)
	assert.Empty(t, out.Images)

	_, err = mock.CreateImage(ctx, &ec2.CreateImageInput{})
	assert.NoError(t, err)

	_, err = mock.DeregisterImage(ctx, &ec2.DeregisterImageInput{})
	assert.NoError(t, err)
}

func TestMockEC2ClientDispatch(t *testing.T) {
	t.Parallel()

	called := false
	mock := &MockEC2Client{
		DescribeImagesFunc: func(ctx context.Context, params *ec2.DescribeImagesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeImagesOutput, error) {
			called = true
			assert.Equal(t, []string{"ami-123"}, params.ImageIds)
			return &ec2.DescribeImagesOutput{}, nil
		},
	}

	_, err := mock.DescribeImages(context.Background(), &ec2.DescribeImagesInput{
		ImageIds: []string{"ami-123"},
	})
	assert.NoError(t, err)
	assert.True(t, called)
}
