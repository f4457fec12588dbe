package finance

import "slices"

// Categories holds the ordered category names available for each transaction
// type.
//
// Names are free text. A transaction keeps its category when the category is
// removed from the list.
type Categories map[TransactionType][]string

// Contains reports whether name is a category of the given type.
func (c Categories) Contains(kind TransactionType, name string) bool {
	return slices.Contains(c[kind], name)
}

// clone returns a deep copy of c.
func (c Categories) clone() Categories {
	if c == nil {
		return nil
	}
	out := make(Categories, len(c))
	for k, names := range c {
		out[k] = slices.Clone(names)
	}
	return out
}

// the categories seeded on first run.
func defaultCategories() Categories {
	return Categories{
		Expense: {"Еда", "Транспорт", "Жильё", "Развлечения", "Одежда", "Здоровье", "Подписки", "Другое"},
		Income:  {"Зарплата", "Подработка", "Инвестиции", "Другое"},
	}
}

// SavedCategory is the expense category that moves money to savings. The
// dashboard reports it apart from the other expenses.
const SavedCategory = "Сбережение"

var categoryIcons = map[string]string{
	"Еда":         "🍔",
	"Транспорт":   "🚗",
	"Жильё":       "🏠",
	"Развлечения": "🎬",
	"Одежда":      "👕",
	"Здоровье":    "💊",
	"Подписки":    "📱",
	"Зарплата":    "💰",
	"Подработка":  "💻",
	"Инвестиции":  "📈",
	"Сбережение":  "💰",
}

// CategoryIcon returns the emoji displayed in front of a category, 📌 for the
// categories without one.
func CategoryIcon(name string) string {
	if icon, ok := categoryIcons[name]; ok {
		return icon
	}
	return "📌"
}
