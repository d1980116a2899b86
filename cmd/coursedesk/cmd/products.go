package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/coursedesk/coursedesk/internal/guard"
	"github.com/coursedesk/coursedesk/internal/screen"
	"github.com/coursedesk/coursedesk/pkg/courseapi"
)

var (
	productsSearch     string
	productName        string
	productDescription string
	productPrice       float64
	productFileURL     string
)

var productsCmd = &cobra.Command{
	Use:         "products",
	Short:       "Manage digital products",
	Annotations: routeAnnotation(guard.PathProducts),
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Long: `List all products. --search narrows the listing by name without
contacting the server again.`,
	RunE: runProductsList,
}

var productsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsGet,
}

var productsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product",
	Long: `Create a product. The platform has no product update or delete;
sales and stock are server-maintained.`,
	RunE: runProductsCreate,
}

func init() {
	productsListCmd.Flags().StringVar(&productsSearch, "search", "", "filter by name (client-side)")

	productsCreateCmd.Flags().StringVar(&productName, "name", "", "product name")
	productsCreateCmd.Flags().StringVar(&productDescription, "description", "", "product description")
	productsCreateCmd.Flags().Float64Var(&productPrice, "price", 0, "product price")
	productsCreateCmd.Flags().StringVar(&productFileURL, "file-url", "", "download URL")

	productsCmd.AddCommand(productsListCmd, productsGetCmd, productsCreateCmd)
	rootCmd.AddCommand(productsCmd)
}

func newProductsScreen() *screen.Screen[courseapi.Product] {
	return screen.New(
		client.ListProducts,
		func(p courseapi.Product) string { return p.ID },
		func(p courseapi.Product) string { return p.Name },
	)
}

func productsTable(w io.Writer, rows []courseapi.Product) {
	tw := newTable(w, "NAME", "PRICE", "SALES", "STOCK", "ID")
	for _, p := range rows {
		fmt.Fprintf(tw, "%s\t%.2f\t%d\t%d\t%s\n", p.Name, p.Price, p.Sales, p.Stock, p.ID)
	}
	tw.Flush()
}

func runProductsList(cmd *cobra.Command, args []string) error {
	sc := newProductsScreen()
	if err := sc.Open(cmd.Context()); err != nil {
		return fmt.Errorf("failed to fetch products: %w", err)
	}
	sc.SetFilter(productsSearch)
	return renderList(cmd, sc.Visible(), productsTable)
}

func runProductsGet(cmd *cobra.Command, args []string) error {
	product, err := client.GetProduct(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch product: %w", err)
	}
	return renderEntity(cmd, product)
}

func runProductsCreate(cmd *cobra.Command, args []string) error {
	input := courseapi.ProductInput{
		Name:        productName,
		Description: productDescription,
		Price:       productPrice,
		FileURL:     productFileURL,
	}

	sc := newProductsScreen()
	if err := sc.Open(cmd.Context()); err != nil {
		logger.Warn("initial product fetch failed", "error", err)
	}
	if err := sc.Submit(cmd.Context(), func(ctx context.Context) error {
		_, err := client.CreateProduct(ctx, input)
		return err
	}); err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created product %q\n", input.Name)
	return renderList(cmd, sc.Visible(), productsTable)
}
