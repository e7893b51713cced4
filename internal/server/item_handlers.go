package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"listkeeper/internal/database"
	"listkeeper/internal/lkerror"
)

// item contains all item handlers.
type item struct {
	db database.Client
}

type createItemParams struct {
	Name string `json:"name" form:"name"`
}

///// Index
////
//

// Index renders the items of a list, unpurchased first, newest first within each group.
func (h *item) Index(c echo.Context) error {
	items, err := h.db.FindItemsByList(c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"items": items,
	})
}

///// Create
////
//

// Create stores a new item in the list.
// The list id is trusted, cascade delete keeps the store consistent.
func (h *item) Create(c echo.Context) error {
	var params createItemParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, lkerror.New("Could not get item params."))
	}

	if strings.TrimSpace(params.Name) == "" {
		return c.JSON(http.StatusBadRequest, lkerror.New("Item name can't be blank."))
	}

	item, err := h.db.AddItem(c.Param("id"), params.Name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, item)
}

///// Toggle
////
//

// Toggle flips the purchased flag of the item. A missing id is a no-op.
func (h *item) Toggle(c echo.Context) error {
	if err := h.db.ToggleItem(c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

///// Delete
////
//

// Delete removes the item. A missing id is a no-op.
func (h *item) Delete(c echo.Context) error {
	if err := h.db.DeleteItem(c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
