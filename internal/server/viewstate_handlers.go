package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"listkeeper/internal/database"
	"listkeeper/internal/lkerror"
	"listkeeper/internal/server/session"
)

// viewstate contains the interaction-flow handlers.
// View state is ephemeral and per session, durable records stay in the store.
type viewstate struct {
	db       database.Client
	sessions *session.Manager
}

///// Show
////
//

// Show renders the current view state of the session.
func (h *viewstate) Show(c echo.Context) error {
	return c.JSON(http.StatusOK, h.sessions.State(sessionToken(c)))
}

///// Select
////
//

// Select switches the session to the single-list view.
// The list detail is always fetched fresh from the store, never cached.
func (h *viewstate) Select(c echo.Context) error {
	list, err := h.db.FindList(c.Param("id"))
	if err != nil {
		if h.db.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, lkerror.New("List not found."))
		}
		return err
	}

	items, err := h.db.FindItemsByList(list.ID)
	if err != nil {
		return err
	}

	state := h.sessions.Select(sessionToken(c), list.ID)

	return c.JSON(http.StatusOK, echo.Map{
		"state": state,
		"list":  list,
		"items": items,
	})
}

///// Back
////
//

// Back switches the session to the all-lists view and clears the selection.
func (h *viewstate) Back(c echo.Context) error {
	return c.JSON(http.StatusOK, h.sessions.Back(sessionToken(c)))
}

///// Assistant
////
//

// Assistant switches the session to the extraction helper.
// Selection and pending items are kept so the user can return to a prior list.
func (h *viewstate) Assistant(c echo.Context) error {
	return c.JSON(http.StatusOK, h.sessions.OpenExtraction(sessionToken(c)))
}
