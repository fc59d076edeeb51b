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
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/stackpilot/amictl/ami"
	"github.com/stackpilot/amictl/cli"
	"github.com/stackpilot/amictl/logging"
)

var (
	createOpts     cli.CreateCLIOptions
	deregisterOpts cli.DeregisterCLIOptions
	listOpts       cli.ListCLIOptions
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Manage EC2 machine images",
	Long:  `Create, deregister, and list EC2 machine images (AMIs).`,
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an image from a running instance",
	Long: `Create an AMI from a running EC2 instance.

The command returns once the new image id is readable. With --wait it
blocks until the image state is "available" or --wait-timeout elapses.

By default EC2 reboots the instance before snapshotting its volumes;
pass --no-reboot to skip the reboot at the cost of filesystem
consistency.`,
	Example: `  # Create an image and wait for it to become available
  amictl image create --instance-id i-0123456789abcdef0 --name nightly-backup --wait

  # Create without rebooting the instance, with tags
  amictl image create --instance-id i-0123456789abcdef0 --name nightly-backup \
    --no-reboot --tag Environment=prod --tag Team=platform`,
	RunE: runImageCreate,
}

var deregisterCmd = &cobra.Command{
	Use:   "deregister <image-id>",
	Short: "Deregister an image",
	Long: `Deregister an AMI, optionally deleting its backing EBS snapshots.

With --wait the command blocks until the image is no longer readable or
--wait-timeout elapses.`,
	Example: `  # Deregister an image and delete its snapshots
  amictl image deregister ami-0123456789abcdef0 --delete-snapshot --wait`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImageDeregister,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List images owned by this account",
	Example: `  # List all self-owned images
  amictl image list

  # List images matching a describe filter
  amictl image list --filter name=nightly-backup*`,
	RunE: runImageList,
}

func init() {
	createCmd.Flags().StringVar(&createOpts.InstanceID, "instance-id", "", "Source EC2 instance id (required)")
	createCmd.Flags().StringVar(&createOpts.Name, "name", "", "Name of the new image (required)")
	createCmd.Flags().StringVar(&createOpts.Description, "description", "", "Description of the new image")
	createCmd.Flags().BoolVar(&createOpts.NoReboot, "no-reboot", false, "Do not reboot the instance before snapshotting")
	createCmd.Flags().StringArrayVar(&createOpts.Tags, "tag", nil, "Tag to apply to the image as key=value (repeatable)")
	createCmd.Flags().BoolVar(&createOpts.Wait, "wait", false, "Wait for the image to become available")
	createCmd.Flags().IntVar(&createOpts.WaitTimeout, "wait-timeout", 0, "Wait deadline in seconds (default 900)")

	deregisterCmd.Flags().StringVar(&deregisterOpts.ImageID, "image-id", "", "Image id to deregister (alternative to the positional argument)")
	deregisterCmd.Flags().BoolVar(&deregisterOpts.DeleteSnapshots, "delete-snapshot", false, "Also delete the image's backing EBS snapshots")
	deregisterCmd.Flags().BoolVar(&deregisterOpts.Wait, "wait", false, "Wait for the image to be gone")
	deregisterCmd.Flags().IntVar(&deregisterOpts.WaitTimeout, "wait-timeout", 0, "Wait deadline in seconds (default 900)")

	listCmd.Flags().StringArrayVar(&listOpts.Filters, "filter", nil, "Describe filter as name=value (repeatable)")

	imageCmd.AddCommand(createCmd)
	imageCmd.AddCommand(deregisterCmd)
	imageCmd.AddCommand(listCmd)
}

func runImageCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := configFromContext(cmd)
	if cfg == nil {
		return fmt.Errorf("no configuration in context")
	}
	if !cli.ValidOutputFormat(cfg.Output) {
		return fmt.Errorf("invalid output format: %s", cfg.Output)
	}

	tags, err := cli.ParseKeyValuePairs(createOpts.Tags)
	if err != nil {
		return fmt.Errorf("invalid --tag: %w", err)
	}

	controller, err := newController(ctx, cfg)
	if err != nil {
		return err
	}

	req := ami.CreateRequest{
		InstanceID:  createOpts.InstanceID,
		Name:        createOpts.Name,
		Description: createOpts.Description,
		NoReboot:    createOpts.NoReboot,
		Tags:        tags,
		Wait:        createOpts.Wait,
		WaitTimeout: waitTimeout(createOpts.WaitTimeout, cfg.AWS.AMI.WaitTimeoutSec),
	}

	result, err := controller.Create(ctx, req)
	if err != nil {
		return err
	}

	return renderResult(cmd, cfg.Output, cli.Result{
		Changed: result.Changed,
		ImageID: result.ImageID,
		State:   result.State,
	})
}

func runImageDeregister(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := configFromContext(cmd)
	if cfg == nil {
		return fmt.Errorf("no configuration in context")
	}
	if len(args) > 0 {
		deregisterOpts.ImageID = args[0]
	}
	if !cli.ValidOutputFormat(cfg.Output) {
		return fmt.Errorf("invalid output format: %s", cfg.Output)
	}

	controller, err := newController(ctx, cfg)
	if err != nil {
		return err
	}

	req := ami.DeregisterRequest{
		ImageID:         deregisterOpts.ImageID,
		DeleteSnapshots: deregisterOpts.DeleteSnapshots,
		Wait:            deregisterOpts.Wait,
		WaitTimeout:     waitTimeout(deregisterOpts.WaitTimeout, cfg.AWS.AMI.WaitTimeoutSec),
	}

	result, err := controller.Deregister(ctx, req)
	if err != nil {
		return err
	}

	return renderResult(cmd, cfg.Output, cli.Result{
		Changed:     result.Changed,
		ImageID:     result.ImageID,
		SnapshotIDs: result.SnapshotIDs,
		Msg:         "image deregistered",
	})
}

func runImageList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := configFromContext(cmd)
	if cfg == nil {
		return fmt.Errorf("no configuration in context")
	}
	if !cli.ValidOutputFormat(cfg.Output) {
		return fmt.Errorf("invalid output format: %s", cfg.Output)
	}

	filters, err := cli.ParseKeyValuePairs(listOpts.Filters)
	if err != nil {
		return fmt.Errorf("invalid --filter: %w", err)
	}

	controller, err := newController(ctx, cfg)
	if err != nil {
		return err
	}

	images, err := controller.List(ctx, filters)
	if err != nil {
		return err
	}

	logging.DebugContext(ctx, "Found %d images", len(images))

	out, err := cli.RenderList(images, cfg.Output)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// waitTimeout resolves the effective wait deadline: the flag wins, then
// the configured default, then the package default (applied by the
// controller when the request carries zero).
func waitTimeout(flagSec, cfgSec int) time.Duration {
	if flagSec > 0 {
		return time.Duration(flagSec) * time.Second
	}
	if cfgSec > 0 {
		return time.Duration(cfgSec) * time.Second
	}
	return 0
}

func renderResult(cmd *cobra.Command, format string, res cli.Result) error {
	out, err := res.Render(format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
