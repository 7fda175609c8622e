package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/erauner12/showcase/internal/client"
	"github.com/erauner12/showcase/internal/collection"
	"github.com/erauner12/showcase/internal/model"
	"github.com/spf13/cobra"
)

type cartStore = collection.Store[model.CartEntry, model.Product]

func newCartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and change the shopping cart",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show the cart",
			Args:  cobra.NoArgs,
			RunE: a.withCart(func(*cobra.Command, *cartStore, []string) error {
				return nil
			}),
		},
		&cobra.Command{
			Use:   "add <product-id>",
			Short: "Add one of a product to the cart",
			Args:  cobra.ExactArgs(1),
			RunE: a.withCart(func(cmd *cobra.Command, s *cartStore, args []string) error {
				p, err := client.NewProductRemote(a.http).Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return reported(s.Create(cmd.Context(), p))
			}),
		},
		&cobra.Command{
			Use:   "qty <product-id> <quantity>",
			Short: "Set the quantity of a cart entry; 0 removes it",
			Args:  cobra.ExactArgs(2),
			RunE: a.withCart(func(cmd *cobra.Command, s *cartStore, args []string) error {
				qty, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("quantity must be a number: %w", err)
				}
				id, err := resolveID(s.Items(), args[0])
				if err != nil {
					return err
				}
				return reported(s.Update(cmd.Context(), id, model.SetQty(qty), collection.Confirmed))
			}),
		},
		&cobra.Command{
			Use:     "rm <product-id>",
			Aliases: []string{"remove"},
			Short:   "Remove an entry from the cart",
			Args:    cobra.ExactArgs(1),
			RunE: a.withCart(func(cmd *cobra.Command, s *cartStore, args []string) error {
				id, err := resolveID(s.Items(), args[0])
				if err != nil {
					return err
				}
				return reported(s.Delete(cmd.Context(), id))
			}),
		},
	)
	return cmd
}

// withCart hydrates the cart store, runs fn and prints the resulting cart
func (a *app) withCart(fn func(cmd *cobra.Command, s *cartStore, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := a.cartStore(cmd)
		if err != nil {
			return err
		}
		err = fn(cmd, s, args)
		s.Wait()
		if err != nil {
			return err
		}
		renderCart(cmd.OutOrStdout(), s.Items())
		return nil
	}
}

func renderCart(w io.Writer, cart []model.CartEntry) {
	if len(cart) == 0 {
		fmt.Fprintln(w, "Your cart is empty.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range cart {
		fmt.Fprintf(tw, "%s\t%s\t%d x %s\t%s\n",
			e.ID, e.Name, e.Qty, model.FormatMoney(e.Price), model.FormatMoney(e.Price*float64(e.Qty)))
	}
	tw.Flush()

	fmt.Fprintf(w, "Total: %s (%d items)\n", model.FormatMoney(model.CartTotal(cart)), model.BadgeCount(cart))
}
