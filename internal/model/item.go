package model

// An Item represents a database record and the rendered API response.
// It belongs to exactly one list and is removed along with it.
type Item struct {
	Base `msgpack:",inline" storm:"inline"`

	ListID    string `json:"list_id"   msgpack:"list_id"   storm:"index"`
	Name      string `json:"name"      msgpack:"name"`
	Purchased bool   `json:"purchased" msgpack:"purchased" storm:"index"`
}
