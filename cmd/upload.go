// Package cmd (upload.go) defines the 'upload' command, which streams a local
// file to the API as a multipart form with a progress bar. Uploads are never
// retried automatically.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tonimelisma/sponsorctl/internal/app"
	"github.com/tonimelisma/sponsorctl/internal/ui"
	"github.com/tonimelisma/sponsorctl/pkg/sponsorapi"
)

const defaultUploadPath = "/upload"

var uploadCmd = &cobra.Command{
	Use:   "upload <local-file> [remote-path]",
	Short: "Upload a file",
	Long: `Uploads a local file to the given API path (default /upload) as the 'file'
field of a multipart form. Progress is shown while the file is sent.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		remotePath := defaultUploadPath
		if len(args) == 2 {
			remotePath = args[1]
		}
		quiet, _ := cmd.Flags().GetBool("quiet")
		return runWithApp(cmd, func(ctx context.Context, a *app.App) error {
			return uploadLogic(ctx, a, args[0], remotePath, !quiet)
		})
	},
}

func uploadLogic(ctx context.Context, a *app.App, localPath, remotePath string, showProgress bool) error {
	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("opening local file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("getting file info: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", localPath)
	}

	name := filepath.Base(localPath)
	var onProgress sponsorapi.ProgressFunc
	if showProgress {
		bar := ui.NewProgressBar(info.Size(), "Uploading "+name)
		onProgress = ui.UploadProgress(bar, info.Size())
	}

	result, err := a.SDK.Upload(ctx, remotePath, sponsorapi.UploadFile{
		Name:   name,
		Reader: file,
		Size:   info.Size(),
	}, onProgress)
	if err != nil {
		return fmt.Errorf("uploading %s: %w", name, err)
	}

	ui.DisplayUpload(name, info.Size(), result)
	return nil
}

func init() {
	uploadCmd.Flags().BoolP("quiet", "q", false, "Do not show a progress bar")
	rootCmd.AddCommand(uploadCmd)
}
