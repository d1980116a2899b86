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
	categoriesSearch    string
	categoryName        string
	categoryDescription string
)

var categoriesCmd = &cobra.Command{
	Use:         "categories",
	Short:       "Manage course categories",
	Annotations: routeAnnotation(guard.PathCategories),
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Long: `List all categories. --search narrows the listing by name without
contacting the server again.`,
	RunE: runCategoriesList,
}

var categoriesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesGet,
}

var categoriesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a category",
	RunE:  runCategoriesCreate,
}

var categoriesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a category",
	Long: `Update a category. Fields not given as flags keep their current
values.`,
	Args: cobra.ExactArgs(1),
	RunE: runCategoriesUpdate,
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesDelete,
}

func init() {
	categoriesListCmd.Flags().StringVar(&categoriesSearch, "search", "", "filter by name (client-side)")

	for _, c := range []*cobra.Command{categoriesCreateCmd, categoriesUpdateCmd} {
		c.Flags().StringVar(&categoryName, "name", "", "category name")
		c.Flags().StringVar(&categoryDescription, "description", "", "category description")
	}

	categoriesCmd.AddCommand(categoriesListCmd, categoriesGetCmd, categoriesCreateCmd, categoriesUpdateCmd, categoriesDeleteCmd)
	rootCmd.AddCommand(categoriesCmd)
}

// newCategoriesScreen builds the categories list view.
func newCategoriesScreen() *screen.Screen[courseapi.Category] {
	return screen.New(
		client.ListCategories,
		func(c courseapi.Category) string { return c.ID },
		func(c courseapi.Category) string { return c.Name },
	)
}

func categoriesTable(w io.Writer, rows []courseapi.Category) {
	tw := newTable(w, "NAME", "DESCRIPTION", "ID")
	for _, c := range rows {
		desc := c.Description
		if desc == "" {
			desc = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, desc, c.ID)
	}
	tw.Flush()
}

func runCategoriesList(cmd *cobra.Command, args []string) error {
	sc := newCategoriesScreen()
	if err := sc.Open(cmd.Context()); err != nil {
		return fmt.Errorf("failed to fetch categories: %w", err)
	}
	sc.SetFilter(categoriesSearch)
	return renderList(cmd, sc.Visible(), categoriesTable)
}

func runCategoriesGet(cmd *cobra.Command, args []string) error {
	category, err := client.GetCategory(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch category: %w", err)
	}
	return renderEntity(cmd, category)
}

func runCategoriesCreate(cmd *cobra.Command, args []string) error {
	input := courseapi.CategoryInput{
		Name:        categoryName,
		Description: categoryDescription,
	}

	sc := newCategoriesScreen()
	if err := sc.Open(cmd.Context()); err != nil {
		logger.Warn("initial category fetch failed", "error", err)
	}
	if err := sc.Submit(cmd.Context(), func(ctx context.Context) error {
		_, err := client.CreateCategory(ctx, input)
		return err
	}); err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created category %q\n", input.Name)
	return renderList(cmd, sc.Visible(), categoriesTable)
}

func runCategoriesUpdate(cmd *cobra.Command, args []string) error {
	id := args[0]

	// Pre-populate from the current record, like the edit form did.
	current, err := client.GetCategory(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to fetch category: %w", err)
	}
	input := courseapi.CategoryInput{
		Name:        current.Name,
		Description: current.Description,
	}
	if cmd.Flags().Changed("name") {
		input.Name = categoryName
	}
	if cmd.Flags().Changed("description") {
		input.Description = categoryDescription
	}

	sc := newCategoriesScreen()
	if err := sc.Open(cmd.Context()); err != nil {
		logger.Warn("initial category fetch failed", "error", err)
	}
	if err := sc.Submit(cmd.Context(), func(ctx context.Context) error {
		_, err := client.UpdateCategory(ctx, id, input)
		return err
	}); err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated category %q\n", input.Name)
	return renderList(cmd, sc.Visible(), categoriesTable)
}

func runCategoriesDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	sc := newCategoriesScreen()
	if err := sc.Open(cmd.Context()); err != nil {
		return fmt.Errorf("failed to fetch categories: %w", err)
	}

	name := id
	if row, err := sc.Find(id); err == nil {
		name = row.Name
	}

	confirmed := confirm(cmd, fmt.Sprintf("Delete category %q?", name))
	if err := sc.Delete(cmd.Context(), id, confirmed, client.DeleteCategory); err != nil {
		if errors.Is(err, screen.ErrNotConfirmed) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %q\n", name)
	return renderList(cmd, sc.Visible(), categoriesTable)
}
