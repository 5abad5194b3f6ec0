package skylight

import (
	"fmt"
	"strings"

	"pantry-sync-backend/internal/model"
)

// ShareText renders a list as plain text for sharing, pending items first.
func ShareText(list model.ShoppingList, items []model.ListItem) string {
	var pending, completed []model.ListItem
	for _, item := range items {
		if item.IsCompleted() {
			completed = append(completed, item)
		} else {
			pending = append(pending, item)
		}
	}

	var b strings.Builder
	b.WriteString(list.Attributes.Label)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "TO BUY (%d):\n", len(pending))
	for _, item := range pending {
		fmt.Fprintf(&b, "☐ %s\n", item.Attributes.Label)
	}

	if len(completed) > 0 {
		fmt.Fprintf(&b, "\nCOMPLETED (%d):\n", len(completed))
		for _, item := range completed {
			fmt.Fprintf(&b, "✓ %s\n", item.Attributes.Label)
		}
	}
	return b.String()
}
