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
	modulesSearch     string
	modulesCourse     string
	moduleTitle       string
	moduleDescription string
	moduleCourse      string
)

var modulesCmd = &cobra.Command{
	Use:         "modules",
	Short:       "Manage course modules",
	Annotations: routeAnnotation(guard.PathModules),
}

var modulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List modules",
	Long: `List all modules, or the modules of one course with --course.
--search narrows the listing by title without contacting the server
again.`,
	RunE: runModulesList,
}

var modulesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one module",
	Args:  cobra.ExactArgs(1),
	RunE:  runModulesGet,
}

var modulesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a module",
	RunE:  runModulesCreate,
}

var modulesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a module",
	Long: `Update a module. Fields not given as flags keep their current
values.`,
	Args: cobra.ExactArgs(1),
	RunE: runModulesUpdate,
}

var modulesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a module",
	Args:  cobra.ExactArgs(1),
	RunE:  runModulesDelete,
}

var modulesPublishCmd = &cobra.Command{
	Use:   "publish <id>",
	Short: "Toggle a module's published flag",
	Args:  cobra.ExactArgs(1),
	RunE:  runModulesPublish,
}

func init() {
	modulesListCmd.Flags().StringVar(&modulesSearch, "search", "", "filter by title (client-side)")
	modulesListCmd.Flags().StringVar(&modulesCourse, "course", "", "only modules of this course ID")

	for _, c := range []*cobra.Command{modulesCreateCmd, modulesUpdateCmd} {
		c.Flags().StringVar(&moduleTitle, "title", "", "module title")
		c.Flags().StringVar(&moduleDescription, "description", "", "module description")
		c.Flags().StringVar(&moduleCourse, "course", "", "parent course ID")
	}

	modulesCmd.AddCommand(modulesListCmd, modulesGetCmd, modulesCreateCmd, modulesUpdateCmd, modulesDeleteCmd, modulesPublishCmd)
	rootCmd.AddCommand(modulesCmd)
}

// newModulesScreen builds the modules list view. An empty courseID
// lists every module; otherwise the listing is scoped to one course.
func newModulesScreen(courseID string) *screen.Screen[courseapi.Module] {
	fetch := client.ListModules
	if courseID != "" {
		fetch = func(ctx context.Context) ([]courseapi.Module, error) {
			return client.ListModulesByCourse(ctx, courseID)
		}
	}
	return screen.New(
		fetch,
		func(m courseapi.Module) string { return m.ID },
		func(m courseapi.Module) string { return m.Title },
	)
}

func modulesTable(w io.Writer, rows []courseapi.Module) {
	tw := newTable(w, "TITLE", "COURSE", "PUBLISHED", "ID")
	for _, m := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Title, refName(m.Course), yesNo(m.IsPublished), m.ID)
	}
	tw.Flush()
}

func runModulesList(cmd *cobra.Command, args []string) error {
	sc := newModulesScreen(modulesCourse)
	if err := sc.Open(cmd.Context()); err != nil {
		return fmt.Errorf("failed to fetch modules: %w", err)
	}
	sc.SetFilter(modulesSearch)
	return renderList(cmd, sc.Visible(), modulesTable)
}

func runModulesGet(cmd *cobra.Command, args []string) error {
	module, err := client.GetModule(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch module: %w", err)
	}
	return renderEntity(cmd, module)
}

func runModulesCreate(cmd *cobra.Command, args []string) error {
	input := courseapi.ModuleInput{
		Title:       moduleTitle,
		Description: moduleDescription,
		Course:      moduleCourse,
	}

	sc := newModulesScreen(input.Course)
	if err := sc.Open(cmd.Context()); err != nil {
		logger.Warn("initial module fetch failed", "error", err)
	}
	if err := sc.Submit(cmd.Context(), func(ctx context.Context) error {
		_, err := client.CreateModule(ctx, input)
		return err
	}); err != nil {
		return fmt.Errorf("failed to save module: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created module %q\n", input.Title)
	return renderList(cmd, sc.Visible(), modulesTable)
}

func runModulesUpdate(cmd *cobra.Command, args []string) error {
	id := args[0]

	current, err := client.GetModule(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to fetch module: %w", err)
	}
	input := courseapi.ModuleInput{
		Title:       current.Title,
		Description: current.Description,
		Course:      current.Course.ID,
	}
	if cmd.Flags().Changed("title") {
		input.Title = moduleTitle
	}
	if cmd.Flags().Changed("description") {
		input.Description = moduleDescription
	}
	if cmd.Flags().Changed("course") {
		input.Course = moduleCourse
	}

	sc := newModulesScreen("")
	if err := sc.Open(cmd.Context()); err != nil {
		logger.Warn("initial module fetch failed", "error", err)
	}
	if err := sc.Submit(cmd.Context(), func(ctx context.Context) error {
		_, err := client.UpdateModule(ctx, id, input)
		return err
	}); err != nil {
		return fmt.Errorf("failed to save module: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated module %q\n", input.Title)
	return renderList(cmd, sc.Visible(), modulesTable)
}

func runModulesDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	sc := newModulesScreen("")
	if err := sc.Open(cmd.Context()); err != nil {
		return fmt.Errorf("failed to fetch modules: %w", err)
	}

	title := id
	if row, err := sc.Find(id); err == nil {
		title = row.Title
	}

	confirmed := confirm(cmd, fmt.Sprintf("Delete module %q?", title))
	if err := sc.Delete(cmd.Context(), id, confirmed, client.DeleteModule); err != nil {
		if errors.Is(err, screen.ErrNotConfirmed) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
		return fmt.Errorf("failed to delete module: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted module %q\n", title)
	return renderList(cmd, sc.Visible(), modulesTable)
}

func runModulesPublish(cmd *cobra.Command, args []string) error {
	module, err := client.ToggleModulePublish(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to toggle publish: %w", err)
	}

	state := "unpublished"
	if module.IsPublished {
		state = "published"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Module %q is now %s\n", module.Title, state)
	return nil
}
