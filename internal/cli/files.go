package cli

import (
	"os"
	"path/filepath"

	"artes-cli/internal/model"

	"github.com/spf13/cobra"
)

func newFilesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Activity file commands",
	}

	cmd.AddCommand(newFilesListCmd(app))
	cmd.AddCommand(newFilesUploadCmd(app))
	cmd.AddCommand(newFilesDownloadCmd(app))
	cmd.AddCommand(newFilesDeleteCmd(app))

	return cmd
}

func newFilesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <activity-id>",
		Short: "List an activity's files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, _, err := authedClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			files, err := c.ListFiles(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if files == nil {
				files = []model.ActivityFile{}
			}
			return writeOut(cmd, app, files)
		},
	}
}

func newFilesUploadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <activity-id> <path>",
		Short: "Attach a local file to an activity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			f, err := os.Open(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			defer f.Close()
			c, _, err := authedClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out, err := c.UploadFile(cmd.Context(), id, filepath.Base(args[1]), f)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, out)
		},
	}
}

func newFilesDownloadCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "download <activity-id> <file-id>",
		Short: "Download an attachment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			activityID, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			fileID, err := parseID(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, _, err := authedClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			path := out
			if path == "" {
				// Name the local copy after the server-side filename.
				files, err := c.ListFiles(cmd.Context(), activityID)
				if err != nil {
					return writeErr(cmd, err)
				}
				for _, f := range files {
					if f.ID == fileID {
						path = f.Filename
						break
					}
				}
				if path == "" {
					path = "download.bin"
				}
			}
			b, err := c.DownloadFile(cmd.Context(), activityID, fileID)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := os.WriteFile(path, b, 0o644); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"status": "downloaded", "path": path, "bytes": len(b)})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Output path (default: server-side filename)")
	return cmd
}

func newFilesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <activity-id> <file-id>",
		Short: "Delete an attachment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			activityID, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			fileID, err := parseID(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, _, err := authedClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := c.DeleteFile(cmd.Context(), activityID, fileID); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"status": "deleted", "id": fileID})
		},
	}
}
