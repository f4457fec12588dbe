package finance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// top level keys of the persisted document, in encoding order.
const (
	keyTransactions = "transactions"
	keyCategories   = "categories"
	keySavings      = "savings"
	keyBudgets      = "budgets"
	keySettings     = "settings"
)

// the keys an import payload must carry.
var requiredImportKeys = []string{keyTransactions, keyCategories, keySettings}

// Document is the whole persisted state: the unit of persistence, export and
// import.
//
// Transactions and Savings are ordered newest first by insertion. Top level
// keys unknown to this version are kept as is and written back. Unknown fields
// inside a record, like a "createdAt" on a transaction, are not: they are
// dropped on load and import.
type Document struct {
	Transactions []Transaction
	Categories   Categories
	Savings      []Saving
	Budgets      Budgets
	Settings     Settings

	extra map[string]json.RawMessage
}

// DefaultDocument returns the document of a first run.
func DefaultDocument() *Document {
	return &Document{
		Transactions: []Transaction{},
		Categories:   defaultCategories(),
		Savings:      []Saving{},
		Budgets:      Budgets{},
		Settings:     defaultSettings(),
	}
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	return &Document{
		Transactions: slices.Clone(d.Transactions),
		Categories:   d.Categories.clone(),
		Savings:      slices.Clone(d.Savings),
		Budgets:      d.Budgets.clone(),
		Settings:     d.Settings.clone(),
		extra:        maps.Clone(d.extra),
	}
}

// Normalizer returns the Normalizer for the document's exchange rates.
func (d *Document) Normalizer() Normalizer { return NewNormalizer(d.Settings) }

// MarshalJSON writes the known keys first, in a fixed order, then the unknown
// ones.
func (d *Document) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append(keyTransactions, orEmpty(d.Transactions))
	w.Append(keyCategories, orEmptyMap(d.Categories))
	w.Append(keySavings, orEmpty(d.Savings))
	w.Append(keyBudgets, orEmptyMap(d.Budgets))
	w.Append(keySettings, d.Settings)
	if len(d.extra) > 0 {
		w.EmbedFrom(d.extra)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON decodes a document. Missing keys are filled from the
// defaults.
func (d *Document) UnmarshalJSON(data []byte) error {
	doc, err := decodeDocument(data)
	if err != nil {
		return err
	}
	*d = *doc
	return nil
}

// decodeDocument decodes a document and fills the missing top level keys with
// a fresh copy of the defaults.
//
// It fails if data is not a JSON object, if a known key cannot be decoded, or
// if one of the required keys is missing.
func decodeDocument(data []byte, required ...string) (*Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("not a JSON object: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("not a JSON object: null")
	}
	for _, key := range required {
		if !present(raw, key) {
			return nil, fmt.Errorf("missing %q", key)
		}
	}

	// pointers tell a missing key from an empty value.
	var known struct {
		Transactions *[]Transaction `json:"transactions"`
		Categories   *Categories    `json:"categories"`
		Savings      *[]Saving      `json:"savings"`
		Budgets      *Budgets       `json:"budgets"`
		Settings     *Settings      `json:"settings"`
	}
	if err := json.Unmarshal(data, &known); err != nil {
		return nil, fmt.Errorf("cannot decode document: %w", err)
	}

	doc := DefaultDocument()
	if known.Transactions != nil {
		doc.Transactions = *known.Transactions
	}
	if known.Categories != nil {
		doc.Categories = *known.Categories
	}
	if known.Savings != nil {
		doc.Savings = *known.Savings
	}
	if known.Budgets != nil {
		doc.Budgets = *known.Budgets
	}
	if known.Settings != nil {
		doc.Settings = *known.Settings
	}

	for _, key := range []string{keyTransactions, keyCategories, keySavings, keyBudgets, keySettings} {
		delete(raw, key)
	}
	if len(raw) > 0 {
		doc.extra = raw
	}
	return doc, nil
}

func present(raw map[string]json.RawMessage, key string) bool {
	value, ok := raw[key]
	return ok && !isNull(value)
}

func isNull(value json.RawMessage) bool { return bytes.Equal(bytes.TrimSpace(value), []byte("null")) }

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func orEmptyMap[K comparable, V any, M ~map[K]V](m M) M {
	if m == nil {
		return M{}
	}
	return m
}
