// Package finance is a personal finance ledger: incomes, expenses and savings
// kept in a single local document, with budgets, exchange rates and reports.
//
// The core pieces are:
//   - Store: the sole owner of the Document. Every mutation is validated then
//     written to a key-value medium (see package kv). Loading repairs legacy
//     or corrupt documents from the defaults, Export and Import move the whole
//     document as indented JSON.
//   - Normalizer: converts amounts between currencies through the reporting
//     currency with the current exchange rate snapshot, and groups
//     transactions by category or month.
//   - Reports: the dashboard, budget consumption, period statistics and
//     savings summary, computed from a Document.
//
// This package is the foundation of the `fin` command-line tool.
package finance
