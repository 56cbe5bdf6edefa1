package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"inventory/internal/models"
)

// NewListCommand lists every product.
func NewListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			products, err := a.Products.ListProducts(cmd.Context())
			if err != nil {
				return err
			}
			return writeProducts(cmd.OutOrStdout(), opts.Format, products)
		},
	}
}

// NewAddDummyCommand inserts the sample product.
func NewAddDummyCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add-dummy",
		Short: "Insert a sample product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := a.Products.InsertDummyProduct(cmd.Context())
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), opts.Format, map[string]any{"_id": id},
				fmt.Sprintf("Inserted product %d", id))
		},
	}
}

// NewDeleteAllCommand removes every product.
func NewDeleteAllCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-all",
		Short: "Delete all products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			rows, err := a.Products.DeleteAllProducts(cmd.Context())
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), opts.Format, map[string]any{"rows": rows},
				fmt.Sprintf("%d rows deleted from products database", rows))
		},
	}
}

// NewSellCommand sells one unit of a product.
func NewSellCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sell <id>",
		Short: "Sell one unit of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}

			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			quantity, err := a.Products.SellOne(cmd.Context(), id)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), opts.Format, map[string]any{"_id": id, "quantity": quantity},
				fmt.Sprintf("Sold one of product %d, %d left", id, quantity))
		},
	}
}

// NewTypeCommand resolves the content type of an address.
func NewTypeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "type <address>",
		Short: "Print the content type of a product address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			contentType, err := a.Provider.Type(args[0])
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), opts.Format, map[string]any{"type": contentType}, contentType)
		},
	}
}

// writeProducts renders products as an aligned table or JSON.
func writeProducts(w io.Writer, format string, products []models.Product) error {
	if format == "json" {
		return writeJSON(w, products)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tQUANTITY")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", p.ID, p.Name, p.Price.String(), p.Quantity)
	}
	return tw.Flush()
}

func writeResult(w io.Writer, format string, data any, text string) error {
	if format == "json" {
		return writeJSON(w, data)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}

func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
