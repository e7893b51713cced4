// Package session holds the transient per-browser view state of the
// interaction flow. Everything lives in memory and dies with the process,
// durable records belong to the database package.
package session

// Views of the single-page surface.
const (
	// ViewAllLists shows every list with a preview of its unpurchased items.
	ViewAllLists = "all-lists"
	// ViewSingleList shows the detail of the selected list.
	ViewSingleList = "single-list"
	// ViewExtraction shows the text/audio extraction helper.
	ViewExtraction = "extraction"
)

// A State is the view state of one session.
type State struct {
	// SelectedListID is empty when no list is selected.
	SelectedListID string `json:"selected_list_id,omitempty"`
	// View is one of the View* constants.
	View string `json:"view"`
	// PendingItems holds the last extraction result, awaiting confirmation.
	PendingItems []string `json:"pending_items,omitempty"`
}
