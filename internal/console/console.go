// Package console implements the interactive inventory menu.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vyrodovalexey/agrostock/internal/metrics"
	"github.com/vyrodovalexey/agrostock/internal/model"
	"github.com/vyrodovalexey/agrostock/internal/report"
	"github.com/vyrodovalexey/agrostock/internal/store"
)

// Operation names, used in logs and metrics.
const (
	OpCreate       = "create"
	OpRestock      = "restock"
	OpWithdraw     = "withdraw"
	OpList         = "list"
	OpSearch       = "search"
	OpExportRecent = "export_recent"
	OpDelete       = "delete"
	OpEdit         = "edit"
	OpExportFull   = "export_full"
)

// Operation outcomes that are not failures.
var (
	errDeclined = errors.New("operator declined")
	errNoItems  = errors.New("inventory is empty")
)

const backHint = "\n💡 Type 'back' at any prompt to return to the main menu."

// menuEntry binds a menu key to an operation.
type menuEntry struct {
	key   string
	label string
	name  string
	run   func(context.Context) error
}

// Console runs the inventory menu over a line-oriented reader and writer.
type Console struct {
	store    store.Store
	exporter *report.Exporter
	metrics  *metrics.Recorder
	logger   *zap.Logger
	in       *bufio.Reader
	out      io.Writer
	now      func() time.Time
	menu     []menuEntry
}

// Option configures a Console.
type Option func(*Console)

// WithClock sets the time source used to date movements and reports.
func WithClock(now func() time.Time) Option {
	return func(c *Console) {
		c.now = now
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(c *Console) {
		c.metrics = rec
	}
}

// New creates a Console reading operator input from in and writing to out.
func New(
	in io.Reader,
	out io.Writer,
	s store.Store,
	exporter *report.Exporter,
	logger *zap.Logger,
	opts ...Option,
) *Console {
	c := &Console{
		store:    s,
		exporter: exporter,
		logger:   logger,
		in:       bufio.NewReader(in),
		out:      out,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.metrics == nil {
		c.metrics = metrics.New()
	}

	c.menu = []menuEntry{
		{"1", "Register new item", OpCreate, c.createItem},
		{"2", "Add quantity to an existing item", OpRestock, c.restock},
		{"3", "Register item withdrawal", OpWithdraw, c.withdraw},
		{"4", "List full inventory", OpList, c.listAll},
		{"5", "Search item", OpSearch, c.search},
		{"6", fmt.Sprintf("Export JSON report (last %d days)", exporter.WindowDays()), OpExportRecent, c.exportRecent},
		{"7", "Delete item", OpDelete, c.deleteItem},
		{"8", "Edit existing item", OpEdit, c.editItem},
		{"9", "Export full TXT report", OpExportFull, c.exportFull},
	}

	return c
}

// Run shows the menu and dispatches selections until the operator exits or
// input ends. It returns an error only when input cannot be read or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("console stopped: %w", err)
		}

		c.printMenu()

		choice, err := c.readLine("Choose an option: ")
		if errors.Is(err, ErrLineTooLong) {
			c.warn("Invalid option. Try again.\n")
			continue
		}
		if errors.Is(err, ErrEndOfInput) {
			fmt.Fprintln(c.out, "Exiting the system!")
			return nil
		}
		if err != nil {
			return err
		}

		if choice == "0" {
			fmt.Fprintln(c.out, "Exiting the system!")
			return nil
		}

		entry, ok := c.lookup(choice)
		if !ok {
			c.warn("Invalid option. Try again.\n")
			continue
		}

		c.dispatch(ctx, entry)
	}
}

func (c *Console) printMenu() {
	fmt.Fprintln(c.out, "\n🌾 AGRICULTURAL SUPPLY INVENTORY")
	for _, e := range c.menu {
		fmt.Fprintf(c.out, "%s. %s\n", e.key, e.label)
	}
	fmt.Fprintln(c.out, "0. Exit")
	fmt.Fprintln(c.out)
}

func (c *Console) lookup(key string) (menuEntry, bool) {
	for _, e := range c.menu {
		if e.key == key {
			return e, true
		}
	}
	return menuEntry{}, false
}

// dispatch runs one operation and records how it ended.
func (c *Console) dispatch(ctx context.Context, entry menuEntry) {
	err := entry.run(ctx)
	outcome := outcomeOf(err)
	c.metrics.Operation(entry.name, outcome)

	switch outcome {
	case metrics.OutcomeFailed:
		c.logger.Error("operation failed",
			zap.String("operation", entry.name),
			zap.Error(err),
		)
		fmt.Fprintf(c.out, "❌ Operation failed: %v\n\n", err)
	case metrics.OutcomeCancelled:
		c.logger.Debug("operation cancelled", zap.String("operation", entry.name))
		fmt.Fprintln(c.out, "↩ Back to the main menu.")
	default:
		c.logger.Debug("operation finished",
			zap.String("operation", entry.name),
			zap.String("outcome", outcome),
		)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrCancelled):
		return metrics.OutcomeCancelled
	case errors.Is(err, errDeclined):
		return metrics.OutcomeDeclined
	case errors.Is(err, errNoItems):
		return metrics.OutcomeEmpty
	default:
		return metrics.OutcomeFailed
	}
}

func (c *Console) today() model.Date {
	return model.DateOf(c.now())
}

// refreshItemCount updates the item gauge after the store changes size.
func (c *Console) refreshItemCount(ctx context.Context) {
	items, err := c.store.List(ctx)
	if err != nil {
		c.logger.Warn("failed to count items", zap.Error(err))
		return
	}
	c.metrics.SetItems(len(items))
}

func trimLine(s string) string {
	return strings.TrimSpace(s)
}
