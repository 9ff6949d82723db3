package console

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vyrodovalexey/agrostock/internal/model"
	"github.com/vyrodovalexey/agrostock/internal/report"
	"github.com/vyrodovalexey/agrostock/internal/store"
)

// createItem collects a new item and adds it after confirmation. A declined
// confirmation starts the collection over from the first field.
func (c *Console) createItem(ctx context.Context) error {
	fmt.Fprintln(c.out, backHint)

	for {
		name, err := ask(c, "Item name: ", func(s string) (string, error) {
			return c.parseNewName(ctx, s)
		})
		if err != nil {
			return err
		}

		quantity, err := c.askPositive("Initial quantity: ")
		if err != nil {
			return err
		}

		unit, err := c.askText("Unit of measure (e.g. kg, L, bags): ")
		if err != nil {
			return err
		}

		expiry, err := c.askDate("Expiry date (YYYY-MM-DD): ")
		if err != nil {
			return err
		}

		supplier, err := c.askText("Supplier: ")
		if err != nil {
			return err
		}

		fmt.Fprintln(c.out, "\n--- Confirm the item data ---")
		fmt.Fprintf(c.out, "Name: %s\n", name)
		fmt.Fprintf(c.out, "Quantity: %s %s\n", quantity, unit)
		fmt.Fprintf(c.out, "Expiry: %s\n", expiry)
		fmt.Fprintf(c.out, "Supplier: %s\n", supplier)

		ok, err := c.confirm("Confirm registration? (Y/N): ")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(c.out, "You can re-enter the data before confirming.")
			continue
		}

		item, err := model.NewItem(name, quantity, unit, expiry, supplier, c.today())
		if err != nil {
			return fmt.Errorf("building item: %w", err)
		}

		created, err := c.store.Create(ctx, item)
		if errors.Is(err, store.ErrAlreadyExists) {
			c.warn(fmt.Sprintf("An item named %q already exists.", name))
			continue
		}
		if err != nil {
			return err
		}

		c.metrics.Movement(model.Inflow)
		c.refreshItemCount(ctx)
		c.logger.Info("item created",
			zap.String("item_id", created.ID),
			zap.String("name", created.Name),
			zap.Stringer("quantity", created.Quantity),
			zap.String("unit", created.Unit),
		)

		fmt.Fprintln(c.out, "\n✅ Item registered successfully!")
		return nil
	}
}

// parseNewName accepts a non-blank name that no stored item uses yet.
func (c *Console) parseNewName(ctx context.Context, s string) (string, error) {
	name, err := ParseText(s)
	if err != nil {
		return "", err
	}

	if _, err := c.store.Get(ctx, name); err == nil {
		return "", fmt.Errorf("an item named %q already exists, choose another name", name)
	}

	return name, nil
}

// restock adds quantity to one existing item.
func (c *Console) restock(ctx context.Context) error {
	fmt.Fprintln(c.out, backHint)

	if err := c.requireItems(ctx); err != nil {
		return err
	}

	for {
		item, err := c.pickItem(ctx, "\nEnter the name of the item to restock: ", true)
		if err != nil {
			return err
		}

		amount, err := c.askPositive("Amount to add: ")
		if err != nil {
			return err
		}

		fmt.Fprintf(c.out, "\nYou are about to add %s %s to %s.\n", amount, item.Unit, item.Name)
		ok, err := c.confirm("Confirm? (Y/N): ")
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		updated, err := c.store.Restock(ctx, item.Name, amount, c.today())
		if err != nil {
			return err
		}

		c.recordMovement(updated, model.Inflow, amount)
		fmt.Fprintf(c.out, "✅ Quantity updated! New quantity: %s %s\n", updated.Quantity, updated.Unit)
		return nil
	}
}

// withdraw registers an outflow from one existing item. An amount above the
// current stock is refused and asked again for the same item.
func (c *Console) withdraw(ctx context.Context) error {
	fmt.Fprintln(c.out, backHint)

	if err := c.requireItems(ctx); err != nil {
		return err
	}

	for {
		item, err := c.pickItem(ctx, "\nEnter the name of the item to withdraw from: ", true)
		if err != nil {
			return err
		}

		updated, err := c.withdrawFrom(ctx, item)
		if errors.Is(err, errDeclined) {
			continue
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(c.out, "✅ Withdrawal registered! Current quantity: %s %s\n", updated.Quantity, updated.Unit)
		return nil
	}
}

func (c *Console) withdrawFrom(ctx context.Context, item *model.Item) (*model.Item, error) {
	for {
		amount, err := c.askPositive("Amount to withdraw: ")
		if err != nil {
			return nil, err
		}

		if amount.GreaterThan(item.Quantity) {
			c.warn(fmt.Sprintf("Insufficient stock! Current stock: %s %s.", item.Quantity, item.Unit))
			continue
		}

		fmt.Fprintf(c.out, "\nYou are about to withdraw %s %s from %s.\n", amount, item.Unit, item.Name)
		ok, err := c.confirm("Confirm the withdrawal? (Y/N): ")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errDeclined
		}

		updated, err := c.store.Withdraw(ctx, item.Name, amount, c.today())
		if errors.Is(err, model.ErrInsufficientStock) {
			if item, err = c.store.Get(ctx, item.Name); err != nil {
				return nil, err
			}
			c.warn(fmt.Sprintf("Insufficient stock! Current stock: %s %s.", item.Quantity, item.Unit))
			continue
		}
		if err != nil {
			return nil, err
		}

		c.recordMovement(updated, model.Outflow, amount)
		return updated, nil
	}
}

// editItem changes the expiry or supplier of one item through a sub-menu.
func (c *Console) editItem(ctx context.Context) error {
	fmt.Fprintln(c.out, backHint)

	if err := c.requireItems(ctx); err != nil {
		return err
	}

	item, err := c.pickItem(ctx, "\nEnter the name of the item to edit: ", false)
	if err != nil {
		return err
	}

	for {
		fmt.Fprintf(c.out, "\n--- Current data of '%s' ---\n", item.Name)
		fmt.Fprintf(c.out, "1. Expiry: %s\n", item.Expiry)
		fmt.Fprintf(c.out, "2. Supplier: %s\n", item.Supplier)
		fmt.Fprintln(c.out, "0. Back to the main menu")

		choice, err := c.askChoice("\nChoose the field to change (1-2) or 0 to go back: ")
		if err != nil {
			return err
		}

		var patch store.Patch
		switch choice {
		case "0":
			return nil
		case "1":
			expiry, err := c.askDate("New expiry date (YYYY-MM-DD): ")
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "\nOld expiry: %s -> New expiry: %s\n", item.Expiry, expiry)
			patch.Expiry = &expiry
		case "2":
			supplier, err := c.askText("New supplier: ")
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "\nOld supplier: %s -> New supplier: %s\n", item.Supplier, supplier)
			patch.Supplier = &supplier
		default:
			c.warn("Invalid option.")
			continue
		}

		ok, err := c.confirm("Confirm the change? (Y/N): ")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(c.out, "❌ Change discarded.")
			continue
		}

		updated, err := c.store.Update(ctx, item.Name, patch)
		if err != nil {
			return err
		}
		item = updated

		c.logger.Info("item edited",
			zap.String("item_id", item.ID),
			zap.String("name", item.Name),
			zap.Stringer("expiry", item.Expiry),
			zap.String("supplier", item.Supplier),
		)
		fmt.Fprintf(c.out, "✅ Item '%s' updated successfully!\n", item.Name)
	}
}

// search prints the record for an exact, case-insensitive name.
func (c *Console) search(ctx context.Context) error {
	fmt.Fprintln(c.out, backHint)

	if err := c.requireItems(ctx); err != nil {
		return err
	}

	item, err := c.findItem(ctx, "Enter the name of the item to search: ")
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, "\n--- Item data ---")
	c.printItem(item)
	return nil
}

// listAll prints every item as a fixed-width table in store order.
func (c *Console) listAll(ctx context.Context) error {
	items, err := c.store.List(ctx)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		c.warn("No items registered.\n")
		return errNoItems
	}

	fmt.Fprintln(c.out, "\n--- Supply Inventory ---")
	fmt.Fprintf(c.out, "%-20s %8s %-10s %-12s %-20s\n", "Name", "Qty", "Unit", "Expiry", "Supplier")
	fmt.Fprintln(c.out, strings.Repeat("-", 75))
	for _, item := range items {
		fmt.Fprintf(c.out, "%-20s %8s %-10s %-12s %-20s\n",
			item.Name, item.Quantity, item.Unit, item.Expiry, item.Supplier)
	}
	fmt.Fprintln(c.out)

	return nil
}

// deleteItem removes one item after confirmation.
func (c *Console) deleteItem(ctx context.Context) error {
	fmt.Fprintln(c.out, backHint)

	if err := c.requireItems(ctx); err != nil {
		return err
	}

	item, err := c.pickItem(ctx, "\nEnter the name of the item to delete: ", false)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, "\n--- Confirm the item to delete ---")
	c.printItem(item)

	ok, err := c.confirm("Are you sure you want to delete this item? (Y/N): ")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(c.out, "❌ Deletion cancelled.")
		return errDeclined
	}

	if err := c.store.Delete(ctx, item.Name); err != nil {
		return err
	}

	c.refreshItemCount(ctx)
	c.logger.Info("item deleted",
		zap.String("item_id", item.ID),
		zap.String("name", item.Name),
		zap.Int("movements", len(item.History)),
	)
	fmt.Fprintf(c.out, "✅ Item '%s' removed successfully!\n", item.Name)
	return nil
}

// exportRecent writes the recent movement JSON report.
func (c *Console) exportRecent(ctx context.Context) error {
	items, err := c.store.List(ctx)
	if err != nil {
		return err
	}

	n, err := c.exporter.ExportRecent(items, c.today())
	if err != nil {
		return fmt.Errorf("exporting JSON report: %w", err)
	}

	c.metrics.Report(report.NameRecent)
	fmt.Fprintf(c.out, "✅ JSON report for the last %d days written to %s (%d items).\n",
		c.exporter.WindowDays(), c.exporter.RecentPath(), n)
	return nil
}

// exportFull writes the complete text report. An empty inventory writes nothing.
func (c *Console) exportFull(ctx context.Context) error {
	items, err := c.store.List(ctx)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		c.warn("No items registered.\n")
		return errNoItems
	}

	if err := c.exporter.ExportFull(items); err != nil {
		return fmt.Errorf("exporting TXT report: %w", err)
	}

	c.metrics.Report(report.NameFull)
	fmt.Fprintf(c.out, "✅ Full TXT report written to %s.\n", c.exporter.FullPath())
	return nil
}

// requireItems reports an empty inventory and returns errNoItems for it.
func (c *Console) requireItems(ctx context.Context) error {
	items, err := c.store.List(ctx)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		c.warn("There are no registered items.\n")
		return errNoItems
	}

	return nil
}

// pickItem lists the available items and asks for a name until it matches one.
func (c *Console) pickItem(ctx context.Context, msg string, showQuantity bool) (*model.Item, error) {
	for {
		items, err := c.store.List(ctx)
		if err != nil {
			return nil, err
		}

		fmt.Fprintln(c.out, "\n--- Available items ---")
		for _, item := range items {
			if showQuantity {
				fmt.Fprintf(c.out, "- %s (Qty: %s %s)\n", item.Name, item.Quantity, item.Unit)
			} else {
				fmt.Fprintf(c.out, "- %s\n", item.Name)
			}
		}

		item, err := c.lookupName(ctx, msg)
		if errors.Is(err, store.ErrNotFound) {
			c.warn("Item not found. Try again.\n")
			continue
		}
		return item, err
	}
}

// findItem asks for a name until it matches an item, without listing items.
func (c *Console) findItem(ctx context.Context, msg string) (*model.Item, error) {
	for {
		item, err := c.lookupName(ctx, msg)
		if errors.Is(err, store.ErrNotFound) {
			c.warn("Item not found.\n")
			continue
		}
		return item, err
	}
}

func (c *Console) lookupName(ctx context.Context, msg string) (*model.Item, error) {
	name, err := c.askText(msg)
	if err != nil {
		return nil, err
	}
	return c.store.Get(ctx, name)
}

func (c *Console) printItem(item *model.Item) {
	fmt.Fprintf(c.out, "Name: %s\n", item.Name)
	fmt.Fprintf(c.out, "Quantity: %s %s\n", item.Quantity, item.Unit)
	fmt.Fprintf(c.out, "Expiry: %s\n", item.Expiry)
	fmt.Fprintf(c.out, "Supplier: %s\n", item.Supplier)
}

func (c *Console) recordMovement(item *model.Item, kind model.MovementKind, amount decimal.Decimal) {
	c.metrics.Movement(kind)
	c.logger.Info("stock movement recorded",
		zap.String("item_id", item.ID),
		zap.String("name", item.Name),
		zap.String("kind", string(kind)),
		zap.Stringer("amount", amount),
		zap.Stringer("quantity", item.Quantity),
	)
}
