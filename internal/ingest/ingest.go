// Package ingest reads menu exports and point-of-sale order exports.
package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/siddharthshetty008/restoAnalyze/internal/catalog"
	"github.com/siddharthshetty008/restoAnalyze/internal/logging"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
	"github.com/sirupsen/logrus"
)

var ErrMissingColumn = errors.New("missing required column")

const (
	ColMenuName     = "Name"
	ColMenuPrice    = "Price"
	ColMenuCategory = "Category"
	ColAddonName    = "Addon_Item_Name"
	ColAddonPrice   = "Addon_Item_Price"

	ColOrderNo     = "Order No."
	ColAmount      = "My Amount (₹)"
	ColCreated     = "Created"
	ColItems       = "Items"
	ColOrderType   = "Order Type"
	ColPaymentType = "Payment Type"

	// CreatedLayout is the POS export timestamp format; CreatedFallback is
	// accepted as well.
	CreatedLayout   = "02 Jan 2006 15:04:05"
	CreatedFallback = "2006-01-02 15:04:05"
)

type Loader struct {
	logger logrus.FieldLogger
}

func NewLoader(logger logrus.FieldLogger) *Loader {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Loader{logger: logger}
}

// header maps column names to positions and checks the required ones.
type header map[string]int

func newHeader(row []string, required ...string) (header, error) {
	h := make(header, len(row))
	for i, name := range row {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := h[name]; !dup {
			h[name] = i
		}
	}
	for _, col := range required {
		if _, ok := h[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}
	return h, nil
}

func (h header) get(row []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// ReadMenu parses a menu export. Rows with a blank name or a missing, zero
// or unparseable price are dropped.
func (l *Loader) ReadMenu(r io.Reader) ([]catalog.Entry, error) {
	return l.readPriceList(r, ColMenuName, ColMenuPrice)
}

// ReadAddons parses an addon price list; it is merged after the main menu.
func (l *Loader) ReadAddons(r io.Reader) ([]catalog.Entry, error) {
	return l.readPriceList(r, ColAddonName, ColAddonPrice)
}

func (l *Loader) readPriceList(r io.Reader, nameCol, priceCol string) ([]catalog.Entry, error) {
	cr := newCSVReader(r)
	first, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	h, err := newHeader(first, nameCol, priceCol)
	if err != nil {
		return nil, err
	}

	var entries []catalog.Entry
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		name := h.get(row, nameCol)
		price, err := parseAmount(h.get(row, priceCol))
		if name == "" || err != nil || !price.IsPositive() {
			continue
		}
		entries = append(entries, catalog.Entry{
			Name:     name,
			Price:    price,
			Category: h.get(row, ColMenuCategory),
		})
	}
	l.logger.WithFields(logrus.Fields{"entries": len(entries), "column": nameCol}).Debug("price list read")
	return entries, nil
}

// skipTableLine drops a leading "Table..." banner line some exports carry
// above the header.
func skipTableLine(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	line, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	if strings.HasPrefix(strings.TrimPrefix(line, "\ufeff"), "Table") {
		return br, nil
	}
	return io.MultiReader(strings.NewReader(line), br), nil
}

func ParseCreated(s string) (time.Time, error) {
	t, err := time.Parse(CreatedLayout, s)
	if err == nil {
		return t, nil
	}
	if t, ferr := time.Parse(CreatedFallback, s); ferr == nil {
		return t, nil
	}
	return time.Time{}, err
}

// ReadOrders parses a POS order export. Rows without an order number, with
// a non-positive amount or with an unreadable timestamp are skipped.
func (l *Loader) ReadOrders(r io.Reader) ([]models.Order, error) {
	r, err := skipTableLine(r)
	if err != nil {
		return nil, fmt.Errorf("reading orders: %w", err)
	}
	cr := newCSVReader(r)
	first, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	h, err := newHeader(first, ColOrderNo, ColAmount, ColCreated, ColItems)
	if err != nil {
		return nil, err
	}

	var orders []models.Order
	skipped := 0
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		id := h.get(row, ColOrderNo)
		amount, aerr := parseAmount(h.get(row, ColAmount))
		if id == "" || aerr != nil || !amount.IsPositive() {
			skipped++
			continue
		}
		ts, err := ParseCreated(h.get(row, ColCreated))
		if err != nil {
			l.logger.WithFields(logrus.Fields{"order_id": id, "line": line}).Debug("unreadable order timestamp")
			skipped++
			continue
		}
		orders = append(orders, models.Order{
			ID:          id,
			TotalAmount: amount,
			Timestamp:   ts,
			ItemsText:   h.get(row, ColItems),
			OrderType:   h.get(row, ColOrderType),
			PaymentType: h.get(row, ColPaymentType),
		})
	}
	l.logger.WithFields(logrus.Fields{"orders": len(orders), "skipped": skipped}).Info("orders read")
	return orders, nil
}

// LoadCatalog builds a catalog from a menu file and an optional addon file.
// An addon file without the addon columns is ignored.
func (l *Loader) LoadCatalog(menuPath, addonsPath string) (*catalog.Catalog, error) {
	entries, err := readFile(menuPath, l.ReadMenu)
	if err != nil {
		return nil, err
	}
	if addonsPath != "" {
		addons, err := readFile(addonsPath, l.ReadAddons)
		switch {
		case errors.Is(err, ErrMissingColumn):
			l.logger.WithField("file", addonsPath).Warn("no addon prices found")
		case err != nil:
			return nil, err
		default:
			entries = append(entries, addons...)
		}
	}
	c := catalog.Build(entries)
	l.logger.WithField("items", c.Len()).Info("menu catalog built")
	return c, nil
}

func (l *Loader) LoadOrders(path string) ([]models.Order, error) {
	return readFile(path, l.ReadOrders)
}

func readFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	v, err := read(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
