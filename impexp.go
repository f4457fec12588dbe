package finance

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/etnz/finance/date"
)

// this file contains the backup format: the whole document as indented JSON,
// human readable and identical to the persisted document.

// Export writes the whole document as indented JSON.
func (s *Store) Export(w io.Writer) error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode document: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("could not write export: %w", err)
	}
	return nil
}

// ExportFilename returns the backup file name for a given day.
func ExportFilename(day date.Date) string {
	return fmt.Sprintf("finance-backup-%s.json", day)
}

// Import replaces the whole document with the one in data.
//
// data must be a JSON object with at least the "transactions", "categories"
// and "settings" keys, otherwise an error wrapping ErrInvalidImport is
// returned and the current document is left untouched. Missing optional keys
// are filled from the defaults.
func (s *Store) Import(data []byte) error {
	doc, err := decodeDocument(data, requiredImportKeys...)
	if err != nil {
		s.log.Warn("import rejected", "error", err)
		return fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}
	s.doc = doc
	s.log.Info("document imported", "transactions", len(doc.Transactions), "savings", len(doc.Savings))
	return s.persist()
}
