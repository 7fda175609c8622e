package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/erauner12/showcase/internal/client"
	"github.com/erauner12/showcase/internal/model"
	"github.com/spf13/cobra"
)

func newProductsCmd(a *app) *cobra.Command {
	var category, search string

	cmd := &cobra.Command{
		Use:     "products [id]",
		Aliases: []string{"product", "shop"},
		Short:   "Browse the catalogue",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			remote := client.NewProductRemote(a.http)

			if len(args) == 1 {
				p, err := remote.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				renderProduct(cmd.OutOrStdout(), p)
				return nil
			}

			products, err := remote.List(cmd.Context(), search, category)
			if err != nil {
				return err
			}
			renderProducts(cmd.OutOrStdout(), products)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "all", "Only show this category")
	cmd.Flags().StringVar(&search, "search", "", "Only show products whose name contains this text")
	return cmd
}

func renderProducts(w io.Writer, products []model.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, model.FormatMoney(p.Price))
	}
	tw.Flush()
}

func renderProduct(w io.Writer, p model.Product) {
	fmt.Fprintf(w, "%s  %s\n", p.Name, model.FormatMoney(p.Price))
	fmt.Fprintf(w, "category: %s\n", p.Category)
	if p.Description != "" {
		fmt.Fprintln(w, p.Description)
	}
}
