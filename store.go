package finance

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/etnz/finance/date"
	"github.com/etnz/finance/kv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultStorageKey is the key the document is persisted under.
const DefaultStorageKey = "finance_data"

// CorruptSuffix is appended to the storage key to keep a document that could
// not be decoded, before the Store starts over from the defaults.
const CorruptSuffix = ".corrupt"

// Store owns the ledger Document and keeps its persisted copy in sync.
//
// Every successful mutation is followed by a write of the whole document to
// the medium. When that write fails the error is returned and the in-memory
// document stays authoritative: Flush retries the write.
//
// Getters return copies. A Store is not safe for concurrent use.
type Store struct {
	medium kv.Store
	key    string
	log    *slog.Logger
	today  date.Clock

	doc *Document
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger, slog.Default() otherwise.
func WithLogger(l *slog.Logger) Option { return func(s *Store) { s.log = l } }

// WithClock sets the source of "today", date.Today otherwise.
func WithClock(c date.Clock) Option { return func(s *Store) { s.today = c } }

// WithKey sets the storage key, DefaultStorageKey otherwise.
func WithKey(key string) Option { return func(s *Store) { s.key = key } }

// Open loads the document persisted in medium and persists it back.
//
// A missing or undecodable document is replaced by the defaults; a document
// missing some top level keys gets them from the defaults. Only medium
// failures are returned.
func Open(medium kv.Store, opts ...Option) (*Store, error) {
	s := &Store{
		medium: medium,
		key:    DefaultStorageKey,
		log:    slog.Default(),
		today:  date.Today,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "store")

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	s.doc = doc
	if err := s.persist(); err != nil {
		return nil, fmt.Errorf("could not persist initial document: %w", err)
	}
	return s, nil
}

func (s *Store) load() (*Document, error) {
	data, ok, err := s.medium.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", s.key, err)
	}
	if !ok {
		s.log.Debug("no document found, starting from defaults", "key", s.key)
		return DefaultDocument(), nil
	}
	doc, err := decodeDocument([]byte(data))
	if err != nil {
		backup := s.corruptKey()
		if err := s.medium.Set(backup, data); err != nil {
			return nil, fmt.Errorf("could not back up undecodable %q: %w", s.key, err)
		}
		s.log.Warn("could not decode document, starting from defaults", "key", s.key, "backup", backup, "error", err)
		return DefaultDocument(), nil
	}
	return doc, nil
}

// corruptKey is where load keeps the last document it could not decode.
func (s *Store) corruptKey() string { return s.key + CorruptSuffix }

// persist writes the whole document to the medium.
func (s *Store) persist() error {
	data, err := json.Marshal(s.doc)
	if err != nil {
		return fmt.Errorf("could not encode document: %w", err)
	}
	if err := s.medium.Set(s.key, string(data)); err != nil {
		return fmt.Errorf("could not write %q: %w", s.key, err)
	}
	s.log.Debug("document persisted", "key", s.key, "bytes", len(data))
	return nil
}

// Flush writes the current document again. It is the retry after a failed
// mutation write.
func (s *Store) Flush() error { return s.persist() }

// Close closes the medium if it holds resources.
func (s *Store) Close() error {
	if c, ok := s.medium.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Today returns the store's current date.
func (s *Store) Today() date.Date { return s.today() }

// Document returns a deep copy of the whole document.
func (s *Store) Document() *Document { return s.doc.Clone() }

// Normalizer returns the Normalizer for the current exchange rates.
func (s *Store) Normalizer() Normalizer { return NewNormalizer(s.doc.Settings) }

func newID() string { return uuid.Must(uuid.NewV7()).String() }

// Transactions returns all transactions, newest first.
func (s *Store) Transactions() []Transaction { return slices.Clone(s.doc.Transactions) }

// Transaction returns the transaction with the given id.
func (s *Store) Transaction(id string) (Transaction, bool) {
	i := slices.IndexFunc(s.doc.Transactions, func(t Transaction) bool { return t.ID == id })
	if i < 0 {
		return Transaction{}, false
	}
	return s.doc.Transactions[i], true
}

// AddTransaction validates tx, assigns it an ID if it has none, stores it in
// front of the others and returns it.
//
// The category must be one of the categories of the transaction type.
func (s *Store) AddTransaction(tx Transaction) (Transaction, error) {
	if err := tx.validate(); err != nil {
		return Transaction{}, err
	}
	if !s.doc.Categories.Contains(tx.Type, tx.Category) {
		return Transaction{}, fmt.Errorf("%w %q for %s", ErrUnknownCategory, tx.Category, tx.Type)
	}
	if tx.ID == "" {
		tx.ID = newID()
	}
	s.doc.Transactions = slices.Insert(s.doc.Transactions, 0, tx)
	return tx, s.persist()
}

// UpdateTransaction merges patch into the transaction with the given id.
//
// An unknown id is not an error: it returns found=false and writes nothing.
// The category is checked against the lists only when the patch changes the
// category or the type.
func (s *Store) UpdateTransaction(id string, patch TransactionPatch) (found bool, err error) {
	i := slices.IndexFunc(s.doc.Transactions, func(t Transaction) bool { return t.ID == id })
	if i < 0 {
		return false, nil
	}
	if err := patch.validate(); err != nil {
		return true, err
	}
	tx := patch.apply(s.doc.Transactions[i])
	if (patch.Category != nil || patch.Type != nil) && !s.doc.Categories.Contains(tx.Type, tx.Category) {
		return true, fmt.Errorf("%w %q for %s", ErrUnknownCategory, tx.Category, tx.Type)
	}
	s.doc.Transactions[i] = tx
	return true, s.persist()
}

// DeleteTransaction removes every transaction with the given id. The document
// is written even when none matched.
func (s *Store) DeleteTransaction(id string) (removed bool, err error) {
	n := len(s.doc.Transactions)
	s.doc.Transactions = slices.DeleteFunc(s.doc.Transactions, func(t Transaction) bool { return t.ID == id })
	return len(s.doc.Transactions) < n, s.persist()
}

// Savings returns all savings entries, newest first.
func (s *Store) Savings() []Saving { return slices.Clone(s.doc.Savings) }

// Saving returns the savings entry with the given id.
func (s *Store) Saving(id string) (Saving, bool) {
	i := slices.IndexFunc(s.doc.Savings, func(e Saving) bool { return e.ID == id })
	if i < 0 {
		return Saving{}, false
	}
	return s.doc.Savings[i], true
}

// SavingsBalance returns the current savings balance in SavingsCurrency.
func (s *Store) SavingsBalance() decimal.Decimal { return SavingsBalance(s.doc.Savings) }

// AddSaving validates e, assigns it an ID if it has none, stores it in front
// of the others and returns it.
func (s *Store) AddSaving(e Saving) (Saving, error) {
	if err := e.validate(); err != nil {
		return Saving{}, err
	}
	if e.ID == "" {
		e.ID = newID()
	}
	s.doc.Savings = slices.Insert(s.doc.Savings, 0, e)
	return e, s.persist()
}

// UpdateSaving merges patch into the savings entry with the given id. An
// unknown id returns found=false and writes nothing.
func (s *Store) UpdateSaving(id string, patch SavingPatch) (found bool, err error) {
	i := slices.IndexFunc(s.doc.Savings, func(e Saving) bool { return e.ID == id })
	if i < 0 {
		return false, nil
	}
	if err := patch.validate(); err != nil {
		return true, err
	}
	e := patch.apply(s.doc.Savings[i])
	s.doc.Savings[i] = e
	return true, s.persist()
}

// DeleteSaving removes every savings entry with the given id. The document is
// written even when none matched.
func (s *Store) DeleteSaving(id string) (removed bool, err error) {
	n := len(s.doc.Savings)
	s.doc.Savings = slices.DeleteFunc(s.doc.Savings, func(e Saving) bool { return e.ID == id })
	return len(s.doc.Savings) < n, s.persist()
}

// Categories returns the categories of the given type, in order.
func (s *Store) Categories(kind TransactionType) []string {
	return slices.Clone(s.doc.Categories[kind])
}

// AddCategory appends name to the categories of the given type. It is a no-op
// returning added=false when the name is already there.
func (s *Store) AddCategory(kind TransactionType, name string) (added bool, err error) {
	if !kind.Valid() {
		return false, fmt.Errorf("%w %q", ErrInvalidType, kind)
	}
	if strings.TrimSpace(name) == "" {
		return false, fmt.Errorf("%w: empty", ErrInvalidCategory)
	}
	if s.doc.Categories.Contains(kind, name) {
		return false, nil
	}
	if s.doc.Categories == nil {
		s.doc.Categories = Categories{}
	}
	s.doc.Categories[kind] = append(s.doc.Categories[kind], name)
	return true, s.persist()
}

// RemoveCategory removes every occurrence of name from the categories of the
// given type. Transactions and budgets using it are left untouched.
func (s *Store) RemoveCategory(kind TransactionType, name string) error {
	if !kind.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidType, kind)
	}
	if names, ok := s.doc.Categories[kind]; ok {
		s.doc.Categories[kind] = slices.DeleteFunc(names, func(n string) bool { return n == name })
	}
	return s.persist()
}

// CategoryInUse reports whether a transaction or a budget refers to name.
func (s *Store) CategoryInUse(name string) bool {
	if _, ok := s.doc.Budgets[name]; ok {
		return true
	}
	return slices.ContainsFunc(s.doc.Transactions, func(t Transaction) bool { return t.Category == name })
}

// Budgets returns a copy of the budgets.
func (s *Store) Budgets() Budgets { return s.doc.Budgets.clone() }

// SetBudget sets, or replaces, the monthly limit of a category.
func (s *Store) SetBudget(category string, limit decimal.Decimal, cur Currency) error {
	if strings.TrimSpace(category) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidCategory)
	}
	if !limit.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, limit)
	}
	if !cur.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidCurrency, cur)
	}
	if s.doc.Budgets == nil {
		s.doc.Budgets = Budgets{}
	}
	s.doc.Budgets[category] = Budget{Limit: limit, Currency: cur}
	return s.persist()
}

// RemoveBudget removes the budget of a category, if any.
func (s *Store) RemoveBudget(category string) error {
	delete(s.doc.Budgets, category)
	return s.persist()
}

// Settings returns a copy of the settings.
func (s *Store) Settings() Settings { return s.doc.Settings.clone() }

// UpdateSettings merges patch into the settings.
func (s *Store) UpdateSettings(patch SettingsPatch) error {
	if err := patch.validate(); err != nil {
		return err
	}
	s.doc.Settings = patch.apply(s.doc.Settings)
	return s.persist()
}

// SetExchangeRate sets the value of one unit of cur in ReportingCurrency.
func (s *Store) SetExchangeRate(cur Currency, rate decimal.Decimal) error {
	if err := validateRate(cur, rate); err != nil {
		return err
	}
	if s.doc.Settings.ExchangeRates == nil {
		s.doc.Settings.ExchangeRates = make(map[Currency]decimal.Decimal)
	}
	s.doc.Settings.ExchangeRates[cur] = rate
	return s.persist()
}

// ResetAll replaces the document with the defaults and drops the backup of an
// undecodable document, if any.
func (s *Store) ResetAll() error {
	s.log.Info("resetting document to defaults", "key", s.key)
	s.doc = DefaultDocument()
	if err := s.medium.Remove(s.corruptKey()); err != nil {
		return fmt.Errorf("could not remove %q: %w", s.corruptKey(), err)
	}
	return s.persist()
}
