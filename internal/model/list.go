package model

const (
	// TypeShopping is the default list category.
	TypeShopping = "Shopping"
	// TypeToDo is the to-do list category.
	TypeToDo = "To Do"
	// TypeChores is the chores list category.
	TypeChores = "Chores"
)

// ListTypes is the set of categories known to the UI.
// It is a presentation convention, the store accepts any value.
var ListTypes = []string{TypeShopping, TypeToDo, TypeChores}

// A List represents a database record and the rendered API response.
type List struct {
	Base `msgpack:",inline" storm:"inline"`

	Name string `json:"name"      msgpack:"name"`
	Type string `json:"list_type" msgpack:"list_type" storm:"index"`
}

// NewList returns a new list with the default category.
func NewList(name string) *List {
	return &List{
		Name: name,
		Type: TypeShopping,
	}
}
