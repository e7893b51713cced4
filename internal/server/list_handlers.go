package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"listkeeper/internal/database"
	"listkeeper/internal/lkerror"
	"listkeeper/internal/model"
	"listkeeper/internal/server/view"
)

// list contains all list handlers.
type list struct {
	db   database.Client
	view *view.Renderer
}

type createListParams struct {
	Name string `json:"name" form:"name"`
	Type string `json:"list_type" form:"list_type"`
}

///// Index
////
//

// Index renders all lists, newest first, optionally filtered by category.
func (h *list) Index(c echo.Context) error {
	lists, err := h.db.FindLists(typeFilter(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"lists": lists,
	})
}

///// Create
////
//

// Create stores a new list.
func (h *list) Create(c echo.Context) error {
	var params createListParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, lkerror.New("Could not get list params."))
	}

	if strings.TrimSpace(params.Name) == "" {
		return c.JSON(http.StatusBadRequest, lkerror.New("List name can't be blank."))
	}

	list, err := h.db.CreateList(params.Name, params.Type)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, list)
}

///// Show
////
//

// Show renders a single list.
func (h *list) Show(c echo.Context) error {
	list, err := h.db.FindList(c.Param("id"))
	if err != nil {
		if h.db.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, lkerror.New("List not found."))
		}
		return err
	}

	return c.JSON(http.StatusOK, list)
}

///// Delete
////
//

// Delete removes the list and all its items. A missing id is a no-op.
func (h *list) Delete(c echo.Context) error {
	if err := h.db.DeleteList(c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

///// Fragments
////
//

// IndexFragment renders the all-lists view as an HTML fragment.
// Each card previews the unpurchased items of its list.
func (h *list) IndexFragment(c echo.Context) error {
	lists, err := h.db.FindLists(typeFilter(c))
	if err != nil {
		return err
	}

	previews := make(map[string][]*model.Item, len(lists))
	for _, list := range lists {
		items, err := h.db.FindUnpurchasedItemsByList(list.ID)
		if err != nil {
			return err
		}
		previews[list.ID] = items
	}

	html, err := h.view.AllLists(lists, previews)
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, html)
}

// ShowFragment renders the single-list view as an HTML fragment.
func (h *list) ShowFragment(c echo.Context) error {
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

	html, err := h.view.SingleList(list, items)
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, html)
}

// typeFilter reads the category filter. "All" and blank mean no filter.
func typeFilter(c echo.Context) string {
	filter := c.QueryParam("type")
	if filter == "All" {
		return ""
	}
	return filter
}
