package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/coursedesk/coursedesk/internal/guard"
	"github.com/coursedesk/coursedesk/internal/screen"
	"github.com/coursedesk/coursedesk/pkg/courseapi"
)

var (
	videosSearch     string
	videosModule     string
	videoTitle       string
	videoDescription string
	videoURL         string
	videoCourse      string
	videoModule      string
)

var videosCmd = &cobra.Command{
	Use:         "videos",
	Short:       "Manage lecture videos",
	Annotations: routeAnnotation(guard.PathVideos),
}

var videosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List videos",
	Long: `List all videos, or the videos of one module with --module.
--search narrows the listing by title without contacting the server
again.`,
	RunE: runVideosList,
}

var videosGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one video",
	Args:  cobra.ExactArgs(1),
	RunE:  runVideosGet,
}

var videosCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a video",
	RunE:  runVideosCreate,
}

var videosUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a video",
	Long: `Update a video. Fields not given as flags keep their current
values.`,
	Args: cobra.ExactArgs(1),
	RunE: runVideosUpdate,
}

var videosDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a video",
	Args:  cobra.ExactArgs(1),
	RunE:  runVideosDelete,
}

func init() {
	videosListCmd.Flags().StringVar(&videosSearch, "search", "", "filter by title (client-side)")
	videosListCmd.Flags().StringVar(&videosModule, "module", "", "only videos of this module ID")

	for _, c := range []*cobra.Command{videosCreateCmd, videosUpdateCmd} {
		c.Flags().StringVar(&videoTitle, "title", "", "video title")
		c.Flags().StringVar(&videoDescription, "description", "", "video description")
		c.Flags().StringVar(&videoURL, "url", "", "video URL")
		c.Flags().StringVar(&videoCourse, "course", "", "parent course ID")
		c.Flags().StringVar(&videoModule, "module", "", "parent module ID")
	}

	videosCmd.AddCommand(videosListCmd, videosGetCmd, videosCreateCmd, videosUpdateCmd, videosDeleteCmd)
	rootCmd.AddCommand(videosCmd)
}

func newVideosScreen(moduleID string) *screen.Screen[courseapi.Video] {
	fetch := client.ListVideos
	if moduleID != "" {
		fetch = func(ctx context.Context) ([]courseapi.Video, error) {
			return client.ListVideosByModule(ctx, moduleID)
		}
	}
	return screen.New(
		fetch,
		func(v courseapi.Video) string { return v.ID },
		func(v courseapi.Video) string { return v.Title },
	)
}

func videosTable(w io.Writer, rows []courseapi.Video) {
	tw := newTable(w, "TITLE", "COURSE", "MODULE", "URL", "ID")
	for _, v := range rows {
		url := v.VideoURL
		if url == "" {
			url = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", v.Title, refName(v.Course), refName(v.Module), url, v.ID)
	}
	tw.Flush()
}

func runVideosList(cmd *cobra.Command, args []string) error {
	sc := newVideosScreen(videosModule)
	if err := sc.Open(cmd.Context()); err != nil {
		return fmt.Errorf("failed to fetch videos: %w", err)
	}
	sc.SetFilter(videosSearch)
	return renderList(cmd, sc.Visible(), videosTable)
}

func runVideosGet(cmd *cobra.Command, args []string) error {
	video, err := client.GetVideo(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch video: %w", err)
	}
	return renderEntity(cmd, video)
}

func runVideosCreate(cmd *cobra.Command, args []string) error {
	input := courseapi.VideoInput{
		Title:       videoTitle,
		Description: videoDescription,
		VideoURL:    videoURL,
		Course:      videoCourse,
		Module:      videoModule,
	}

	sc := newVideosScreen(input.Module)
	if err := sc.Open(cmd.Context()); err != nil {
		logger.Warn("initial video fetch failed", "error", err)
	}
	if err := sc.Submit(cmd.Context(), func(ctx context.Context) error {
		_, err := client.CreateVideo(ctx, input)
		return err
	}); err != nil {
		return fmt.Errorf("failed to save video: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created video %q\n", input.Title)
	return renderList(cmd, sc.Visible(), videosTable)
}

func runVideosUpdate(cmd *cobra.Command, args []string) error {
	id := args[0]

	current, err := client.GetVideo(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to fetch video: %w", err)
	}
	input := courseapi.VideoInput{
		Title:       current.Title,
		Description: current.Description,
		VideoURL:    current.VideoURL,
		Course:      current.Course.ID,
		Module:      current.Module.ID,
	}
	if cmd.Flags().Changed("title") {
		input.Title = videoTitle
	}
	if cmd.Flags().Changed("description") {
		input.Description = videoDescription
	}
	if cmd.Flags().Changed("url") {
		input.VideoURL = videoURL
	}
	if cmd.Flags().Changed("course") {
		input.Course = videoCourse
	}
	if cmd.Flags().Changed("module") {
		input.Module = videoModule
	}

	sc := newVideosScreen("")
	if err := sc.Open(cmd.Context()); err != nil {
		logger.Warn("initial video fetch failed", "error", err)
	}
	if err := sc.Submit(cmd.Context(), func(ctx context.Context) error {
		_, err := client.UpdateVideo(ctx, id, input)
		return err
	}); err != nil {
		return fmt.Errorf("failed to save video: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated video %q\n", input.Title)
	return renderList(cmd, sc.Visible(), videosTable)
}

func runVideosDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	sc := newVideosScreen("")
	if err := sc.Open(cmd.Context()); err != nil {
		return fmt.Errorf("failed to fetch videos: %w", err)
	}

	title := id
	if row, err := sc.Find(id); err == nil {
		title = row.Title
	}

	confirmed := confirm(cmd, fmt.Sprintf("Delete video %q?", title))
	if err := sc.Delete(cmd.Context(), id, confirmed, client.DeleteVideo); err != nil {
		if errors.Is(err, screen.ErrNotConfirmed) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
		return fmt.Errorf("failed to delete video: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted video %q\n", title)
	return renderList(cmd, sc.Visible(), videosTable)
}
