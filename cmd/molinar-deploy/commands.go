package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/molinar-iot/setup-dashboard/internal/deploy"
	"github.com/molinar-iot/setup-dashboard/internal/device"
)

// errUploadIncomplete makes the process exit non-zero when files failed.
var errUploadIncomplete = errors.New("some files failed to upload")

// newPackCmd creates the pack command.
func newPackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Zip the built web front-end",
		Long: `Zip every file under the dist directory into a single archive
inside it, ready for list, upload or push.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dist := viper.GetString("dist")
			res, err := deploy.Pack(dist, viper.GetString("zip"))
			if err != nil {
				return err
			}

			color.Green("✓ Packed %d files into %s", res.Files, res.Path)
			fmt.Printf("  Original size: %s\n", deploy.FormatSize(res.OriginalSize))
			fmt.Printf("  Zip size:      %s\n", deploy.FormatSize(res.ZipSize))
			fmt.Printf("  Saved:         %.1f%%\n", res.Ratio())
			return nil
		},
	}

	cmd.Flags().String("dist", "dist", "directory holding the built front-end")
	cmd.Flags().String("zip", "dist.zip", "archive name, written inside the dist directory")
	_ = viper.BindPFlag("dist", cmd.Flags().Lookup("dist"))
	_ = viper.BindPFlag("zip", cmd.Flags().Lookup("zip"))
	return cmd
}

// newListCmd creates the list command.
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <bundle.zip>",
		Short: "Show the files inside a bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := deploy.OpenBundle(args[0])
			if err != nil {
				return err
			}
			defer b.Close()

			for _, e := range b.Entries {
				fmt.Printf("%-50s %10s\n", e.Path, deploy.FormatSize(e.Size))
			}
			color.Cyan("%d files, %s", len(b.Entries), deploy.FormatSize(b.TotalSize()))
			return nil
		},
	}
}

// newUploadCmd creates the upload command.
func newUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <bundle.zip>",
		Short: "Upload a bundle to the device file by file",
		Long: `Upload every selected file of the bundle through the device's
upload API. A failed file is reported and the rest still go out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := deploy.OpenBundle(args[0])
			if err != nil {
				return err
			}
			defer b.Close()

			entries, err := deploy.Select(b.Entries,
				deploy.SplitPatterns(viper.GetString("include")),
				deploy.SplitPatterns(viper.GetString("exclude")))
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return errors.New("no files match the include/exclude patterns")
			}

			host := viper.GetString("host")
			color.Blue("Uploading %d files to %s", len(entries), host)

			bar := progressbar.Default(int64(len(entries)), "Uploading")
			u := &deploy.Uploader{
				Device: newClient(),
				Host:   host,
				Pause:  viper.GetDuration("pause"),
				Progress: func(done, total int, message string) {
					bar.Describe(message)
					_ = bar.Set(done)
				},
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			res, err := u.Upload(ctx, entries)
			_ = bar.Finish()
			fmt.Println()

			for _, f := range res.Files {
				if f.Err != nil {
					color.Red("✗ %s: %v", f.Path, f.Err)
				}
			}
			if err != nil {
				return err
			}

			if res.Failed > 0 {
				color.Yellow("Uploaded %d files, %d failed", res.Uploaded, res.Failed)
				return errUploadIncomplete
			}
			color.Green("✓ Uploaded %d files", res.Uploaded)
			return nil
		},
	}

	cmd.Flags().String("include", "", "comma-separated glob patterns to upload (default all)")
	cmd.Flags().String("exclude", "", "comma-separated glob patterns to skip")
	cmd.Flags().Duration("pause", deploy.DefaultPause, "delay between two files")
	_ = viper.BindPFlag("include", cmd.Flags().Lookup("include"))
	_ = viper.BindPFlag("exclude", cmd.Flags().Lookup("exclude"))
	_ = viper.BindPFlag("pause", cmd.Flags().Lookup("pause"))
	return cmd
}

// newPushCmd creates the push command.
func newPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push <bundle.zip>",
		Short: "Send the whole bundle for the device to extract",
		Long: `Send the bundle in one request. The device clears its web root
and extracts the archive there.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := deploy.OpenBundle(args[0])
			if err != nil {
				return err
			}
			b.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			host := viper.GetString("host")
			id := uuid.NewString()
			color.Blue("Pushing %s to %s (upload %s)", filepath.Base(args[0]), host, id)

			res, err := newClient().UploadBundle(cmd.Context(), host, id, filepath.Base(args[0]), f)
			if err != nil {
				return err
			}

			color.Green("✓ %s", res.Message)
			if verbose {
				for _, p := range res.ExtractedFiles {
					fmt.Printf("  %s\n", p)
				}
			}
			fmt.Printf("%d files extracted\n", len(res.ExtractedFiles))
			return nil
		},
	}
}

func newClient() *device.Client {
	t := device.DefaultTimeouts
	if d := viper.GetDuration("timeout"); d > 0 {
		t.Request = d
	}
	return device.NewClient(t, nil)
}
