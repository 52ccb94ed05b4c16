package cli

import (
	"fmt"
	"io"
	"strconv"

	"storefront/internal/domain/model"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

func renderCart(w io.Writer, cart model.Cart) error {
	if len(cart) == 0 {
		_, err := fmt.Fprintln(w, "cart is empty")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Name", "Price", "Amount", "Subtotal"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.PerColumn = []tw.Align{tw.AlignRight, tw.AlignLeft, tw.AlignRight, tw.AlignRight, tw.AlignRight}
	})

	data := make([][]string, 0, len(cart))
	for _, p := range cart {
		data = append(data, []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Price.StringFixed(2),
			strconv.FormatInt(p.Amount, 10),
			p.Subtotal().StringFixed(2),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	table.Footer([]string{"", "", "Total", strconv.FormatInt(cart.Count(), 10), cart.Total().StringFixed(2)})

	return table.Render()
}
