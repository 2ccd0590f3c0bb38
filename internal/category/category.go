// Package category holds the fixed list of expense categories. Expenses store
// the category name as plain text; nothing enforces membership in this list.
package category

// Category is a display label used to group expenses.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// OtherName is the category unknown names fall back to.
const OtherName = "Other"

var categories = []Category{
	{ID: "1", Name: "Food & Dining", Icon: "🍽️", Color: "#EF4444"},
	{ID: "2", Name: "Transportation", Icon: "🚗", Color: "#3B82F6"},
	{ID: "3", Name: "Shopping", Icon: "🛒", Color: "#8B5CF6"},
	{ID: "4", Name: "Entertainment", Icon: "🎬", Color: "#F59E0B"},
	{ID: "5", Name: "Bills & Utilities", Icon: "💡", Color: "#10B981"},
	{ID: "6", Name: "Healthcare", Icon: "🏥", Color: "#EC4899"},
	{ID: "7", Name: "Travel", Icon: "✈️", Color: "#06B6D4"},
	{ID: "8", Name: "Education", Icon: "📚", Color: "#84CC16"},
	{ID: "9", Name: "Investment", Icon: "📈", Color: "#6366F1"},
	{ID: "10", Name: OtherName, Icon: "📝", Color: "#6B7280"},
}

// All returns the categories in display order.
func All() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)

	return out
}

// Names returns the category names in display order.
func Names() []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}

	return names
}

// Find returns the category with the given name.
func Find(name string) (Category, bool) {
	for _, c := range categories {
		if c.Name == name {
			return c, true
		}
	}

	return Category{}, false
}

// Lookup returns the category with the given name, or Other when there is none.
func Lookup(name string) Category {
	if c, ok := Find(name); ok {
		return c
	}

	return categories[len(categories)-1]
}
