package model

import "strings"

// List item statuses. "completed" is the only definition of done.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// TempIDPrefix marks list items created locally and not yet synced.
const TempIDPrefix = "temp_"

// ShoppingList is a JSON:API list resource.
type ShoppingList struct {
	Type          string             `json:"type"`
	ID            string             `json:"id"`
	Attributes    ListAttributes     `json:"attributes"`
	Relationships *ListRelationships `json:"relationships,omitempty"`
}

// ListAttributes are the attributes of a list resource.
type ListAttributes struct {
	Label              string  `json:"label"`
	Color              *string `json:"color,omitempty"`
	Kind               *string `json:"kind,omitempty"`
	DefaultGroceryList *bool   `json:"default_grocery_list,omitempty"`
}

// ListRelationships links a list to its item identifiers.
type ListRelationships struct {
	ListItems *struct {
		Data []ResourceIdentifier `json:"data"`
	} `json:"list_items,omitempty"`
}

// ResourceIdentifier is a JSON:API {type, id} pair.
type ResourceIdentifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// ListItem is a JSON:API list_item resource.
type ListItem struct {
	Type       string             `json:"type"`
	ID         string             `json:"id"`
	Attributes ListItemAttributes `json:"attributes"`
}

// ListItemAttributes are the attributes of a list item.
type ListItemAttributes struct {
	Label     string  `json:"label"`
	Status    string  `json:"status"`
	Section   *string `json:"section,omitempty"`
	Position  *int    `json:"position,omitempty"`
	CreatedAt *string `json:"created_at,omitempty"`
}

// IsCompleted reports whether the item is done.
func (li ListItem) IsCompleted() bool {
	return li.Attributes.Status == StatusCompleted
}

// IsUnsynced reports whether the item only exists in the local cache.
func (li ListItem) IsUnsynced() bool {
	return strings.HasPrefix(li.ID, TempIDPrefix)
}

// PositionOrZero returns the ordering key, treating unset as 0.
func (li ListItem) PositionOrZero() int {
	if li.Attributes.Position == nil {
		return 0
	}
	return *li.Attributes.Position
}

// ListsResponse is the envelope of GET /api/frames/{frameId}/lists.
type ListsResponse struct {
	Data []ShoppingList `json:"data"`
}

// ListDetailResponse is the envelope of GET /api/frames/{frameId}/lists/{listId}.
type ListDetailResponse struct {
	Data     ShoppingList `json:"data"`
	Included []ListItem   `json:"included"`
	Meta     *struct {
		Sections []ListSection `json:"sections"`
	} `json:"meta,omitempty"`
}

// ListSection groups item ids under a section name.
type ListSection struct {
	Name  *string  `json:"name"`
	Items []string `json:"items"`
}

// ListDetail is a list together with its items, ordered by position.
type ListDetail struct {
	List  ShoppingList `json:"list"`
	Items []ListItem   `json:"items"`
}
