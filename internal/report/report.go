// Package report renders inventory movement reports and writes them to disk.
package report

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vyrodovalexey/agrostock/internal/model"
)

// ErrEmptyInventory is returned when a report needs at least one item.
var ErrEmptyInventory = errors.New("inventory has no items")

// FullReportTitle is the first line of the full text report.
const FullReportTitle = "=== FULL SUPPLY MOVEMENT REPORT ==="

// RecentMovement is one movement as serialized in the recent report.
type RecentMovement struct {
	Kind   string      `json:"kind"`
	Amount json.Number `json:"amount"`
	Date   string      `json:"date"`
}

// RecentEntry groups the recent movements of one item.
type RecentEntry struct {
	Name      string           `json:"name"`
	Movements []RecentMovement `json:"movements"`
}

// Recent keeps, for each item, the movements dated on or after
// today minus windowDays. Items without such movements are omitted.
// The result is never nil.
func Recent(items []model.Item, today model.Date, windowDays int) []RecentEntry {
	from := today.AddDays(-windowDays)
	entries := make([]RecentEntry, 0, len(items))

	for i := range items {
		movements := items[i].MovementsSince(from)
		if len(movements) == 0 {
			continue
		}

		entry := RecentEntry{
			Name:      items[i].Name,
			Movements: make([]RecentMovement, 0, len(movements)),
		}
		for _, m := range movements {
			entry.Movements = append(entry.Movements, RecentMovement{
				Kind:   string(m.Kind),
				Amount: json.Number(m.Amount.String()),
				Date:   m.Date.String(),
			})
		}
		entries = append(entries, entry)
	}

	return entries
}

// WriteRecentJSON encodes entries as an indented UTF-8 JSON array.
func WriteRecentJSON(w io.Writer, entries []RecentEntry) error {
	if entries == nil {
		entries = []RecentEntry{}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")

	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encoding recent report: %w", err)
	}

	return nil
}

// WriteFullText writes the snapshot and complete history of every item.
func WriteFullText(w io.Writer, items []model.Item) error {
	if len(items) == 0 {
		return ErrEmptyInventory
	}

	title := cases.Title(language.English)
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s\n\n", FullReportTitle)
	for i := range items {
		item := &items[i]
		fmt.Fprintf(bw, "Item: %s\n", item.Name)
		fmt.Fprintf(bw, "Current quantity: %s %s\n", item.Quantity, item.Unit)
		fmt.Fprintf(bw, "Expiry: %s\n", item.Expiry)
		fmt.Fprintf(bw, "Supplier: %s\n", item.Supplier)
		fmt.Fprintln(bw, "History:")
		for _, m := range item.History {
			fmt.Fprintf(bw, "  - %s | %s | Amount: %s\n", m.Date, title.String(string(m.Kind)), m.Amount)
		}
		fmt.Fprintln(bw)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing full report: %w", err)
	}

	return nil
}

// WriteFile replaces path with the output of write. The content goes to a
// temporary file in the same directory first and is renamed into place, so
// a failed write leaves any previous report intact.
func WriteFile(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("syncing %s: %w", tmp.Name(), err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}

	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting mode on %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("moving report into %s: %w", path, err)
	}

	return nil
}
