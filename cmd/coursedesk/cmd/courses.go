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
	coursesSearch     string
	courseTitle       string
	courseDescription string
	coursePrice       float64
	courseFree        bool
	coursePublished   bool
	courseCategory    string
)

var coursesCmd = &cobra.Command{
	Use:         "courses",
	Short:       "Manage courses",
	Annotations: routeAnnotation(guard.PathCourses),
}

var coursesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List courses",
	Long: `List all courses. --search narrows the listing by title without
contacting the server again.`,
	RunE: runCoursesList,
}

var coursesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one course",
	Args:  cobra.ExactArgs(1),
	RunE:  runCoursesGet,
}

var coursesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a course",
	RunE:  runCoursesCreate,
}

var coursesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a course",
	Long: `Update a course. Fields not given as flags keep their current
values.`,
	Args: cobra.ExactArgs(1),
	RunE: runCoursesUpdate,
}

var coursesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a course",
	Args:  cobra.ExactArgs(1),
	RunE:  runCoursesDelete,
}

var coursesApproveCmd = &cobra.Command{
	Use:   "approve-enrollment <course-id> <user-id>",
	Short: "Approve a user's enrollment in a course",
	Args:  cobra.ExactArgs(2),
	RunE:  runCoursesApprove,
}

func init() {
	coursesListCmd.Flags().StringVar(&coursesSearch, "search", "", "filter by title (client-side)")

	for _, c := range []*cobra.Command{coursesCreateCmd, coursesUpdateCmd} {
		c.Flags().StringVar(&courseTitle, "title", "", "course title")
		c.Flags().StringVar(&courseDescription, "description", "", "course description")
		c.Flags().Float64Var(&coursePrice, "price", 0, "course price")
		c.Flags().BoolVar(&courseFree, "free", false, "mark the course as free")
		c.Flags().BoolVar(&coursePublished, "published", false, "mark the course as published")
		c.Flags().StringVar(&courseCategory, "category", "", "category ID")
	}

	coursesCmd.AddCommand(coursesListCmd, coursesGetCmd, coursesCreateCmd, coursesUpdateCmd, coursesDeleteCmd, coursesApproveCmd)
	rootCmd.AddCommand(coursesCmd)
}

func newCoursesScreen() *screen.Screen[courseapi.Course] {
	return screen.New(
		client.ListCourses,
		func(c courseapi.Course) string { return c.ID },
		func(c courseapi.Course) string { return c.Title },
	)
}

func coursesTable(w io.Writer, rows []courseapi.Course) {
	tw := newTable(w, "TITLE", "CATEGORY", "PRICE", "FREE", "PUBLISHED", "ID")
	for _, c := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\t%s\t%s\n",
			c.Title, refName(c.Category), c.Price, yesNo(c.IsFree), yesNo(c.IsPublished), c.ID)
	}
	tw.Flush()
}

func runCoursesList(cmd *cobra.Command, args []string) error {
	sc := newCoursesScreen()
	if err := sc.Open(cmd.Context()); err != nil {
		return fmt.Errorf("failed to fetch courses: %w", err)
	}
	sc.SetFilter(coursesSearch)
	return renderList(cmd, sc.Visible(), coursesTable)
}

func runCoursesGet(cmd *cobra.Command, args []string) error {
	course, err := client.GetCourse(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch course: %w", err)
	}
	return renderEntity(cmd, course)
}

func runCoursesCreate(cmd *cobra.Command, args []string) error {
	input := courseapi.CourseInput{
		Title:       courseTitle,
		Description: courseDescription,
		Price:       coursePrice,
		IsFree:      courseFree,
		IsPublished: coursePublished,
		Category:    courseCategory,
	}

	sc := newCoursesScreen()
	if err := sc.Open(cmd.Context()); err != nil {
		logger.Warn("initial course fetch failed", "error", err)
	}
	if err := sc.Submit(cmd.Context(), func(ctx context.Context) error {
		_, err := client.CreateCourse(ctx, input)
		return err
	}); err != nil {
		return fmt.Errorf("failed to save course: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created course %q\n", input.Title)
	return renderList(cmd, sc.Visible(), coursesTable)
}

func runCoursesUpdate(cmd *cobra.Command, args []string) error {
	id := args[0]

	current, err := client.GetCourse(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to fetch course: %w", err)
	}
	input := courseapi.CourseInput{
		Title:       current.Title,
		Description: current.Description,
		Price:       current.Price,
		IsFree:      current.IsFree,
		IsPublished: current.IsPublished,
		Category:    current.Category.ID,
	}
	if cmd.Flags().Changed("title") {
		input.Title = courseTitle
	}
	if cmd.Flags().Changed("description") {
		input.Description = courseDescription
	}
	if cmd.Flags().Changed("price") {
		input.Price = coursePrice
	}
	if cmd.Flags().Changed("free") {
		input.IsFree = courseFree
	}
	if cmd.Flags().Changed("published") {
		input.IsPublished = coursePublished
	}
	if cmd.Flags().Changed("category") {
		input.Category = courseCategory
	}

	sc := newCoursesScreen()
	if err := sc.Open(cmd.Context()); err != nil {
		logger.Warn("initial course fetch failed", "error", err)
	}
	if err := sc.Submit(cmd.Context(), func(ctx context.Context) error {
		_, err := client.UpdateCourse(ctx, id, input)
		return err
	}); err != nil {
		return fmt.Errorf("failed to save course: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated course %q\n", input.Title)
	return renderList(cmd, sc.Visible(), coursesTable)
}

func runCoursesDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	sc := newCoursesScreen()
	if err := sc.Open(cmd.Context()); err != nil {
		return fmt.Errorf("failed to fetch courses: %w", err)
	}

	title := id
	if row, err := sc.Find(id); err == nil {
		title = row.Title
	}

	confirmed := confirm(cmd, fmt.Sprintf("Delete course %q?", title))
	if err := sc.Delete(cmd.Context(), id, confirmed, client.DeleteCourse); err != nil {
		if errors.Is(err, screen.ErrNotConfirmed) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
		return fmt.Errorf("failed to delete course: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted course %q\n", title)
	return renderList(cmd, sc.Visible(), coursesTable)
}

func runCoursesApprove(cmd *cobra.Command, args []string) error {
	enrollment, err := client.ApproveEnrollment(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to approve enrollment: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Enrollment %s is now %s\n", enrollment.ID, enrollment.Status)
	return nil
}
