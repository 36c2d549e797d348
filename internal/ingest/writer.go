package ingest

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/siddharthshetty008/restoAnalyze/internal/models"
)

var orderColumns = []string{ColOrderNo, ColCreated, ColAmount, ColItems, ColOrderType, ColPaymentType}

// WriteOrders writes orders in the export format ReadOrders accepts.
func WriteOrders(w io.Writer, orders []models.Order) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(orderColumns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, o := range orders {
		row := []string{
			o.ID,
			o.Timestamp.Format(CreatedLayout),
			o.TotalAmount.StringFixed(2),
			o.ItemsText,
			o.OrderType,
			o.PaymentType,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing order %s: %w", o.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMenu writes a menu export with Name, Price and Category columns.
func WriteMenu(w io.Writer, items []models.MenuItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ColMenuName, ColMenuPrice, ColMenuCategory}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, it := range items {
		if err := cw.Write([]string{it.Name, it.Price.StringFixed(2), it.Category}); err != nil {
			return fmt.Errorf("writing menu item %s: %w", it.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
