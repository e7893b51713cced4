package server_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/appleboy/gofight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listkeeper/internal/model"
)

func TestRequestItemCreate(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	list := createList(ctrl, "Groceries", model.TypeShopping)

	params := gofight.D{"name": "Milk"}
	r.POST("/lists/"+list.ID+"/items").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusCreated, r.Code)

		var item model.Item
		require.NoError(t, json.Unmarshal(r.Body.Bytes(), &item))
		assert.NotEmpty(t, item.ID)
		assert.Equal(t, list.ID, item.ListID)
		assert.Equal(t, "Milk", item.Name)
		assert.False(t, item.Purchased)
	})
}

func TestRequestItemCreateBlankName(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	list := createList(ctrl, "Groceries", model.TypeShopping)

	params := gofight.D{"name": "  "}
	r.POST("/lists/"+list.ID+"/items").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"message":"Item name can't be blank."}}`, r.Body.String())
	})
}

func TestRequestItemIndex(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	list := createList(ctrl, "Groceries", model.TypeShopping)
	milk := createItem(ctrl, list.ID, "Milk")
	createItem(ctrl, list.ID, "Eggs")
	require.NoError(t, ctrl.Database.ToggleItem(milk.ID))

	r.GET("/lists/"+list.ID+"/items").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		var payload struct {
			Items []*model.Item `json:"items"`
		}
		require.NoError(t, json.Unmarshal(r.Body.Bytes(), &payload))
		require.Len(t, payload.Items, 2)
		// Unpurchased first.
		assert.Equal(t, "Eggs", payload.Items[0].Name)
		assert.Equal(t, "Milk", payload.Items[1].Name)
	})
}

func TestRequestItemToggle(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	list := createList(ctrl, "Groceries", model.TypeShopping)
	item := createItem(ctrl, list.ID, "Milk")

	r.POST("/items/"+item.ID+"/toggle").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNoContent, r.Code)
	})

	found, err := ctrl.Database.FindItem(item.ID)
	require.NoError(t, err)
	assert.True(t, found.Purchased)

	r.POST("/items/"+item.ID+"/toggle").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNoContent, r.Code)
	})

	found, err = ctrl.Database.FindItem(item.ID)
	require.NoError(t, err)
	assert.False(t, found.Purchased)
}

func TestRequestItemToggleMissing(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	r.POST("/items/nope/toggle").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNoContent, r.Code)
	})
}

func TestRequestItemDelete(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	list := createList(ctrl, "Groceries", model.TypeShopping)
	item := createItem(ctrl, list.ID, "Milk")

	r.DELETE("/items/"+item.ID).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNoContent, r.Code)
	})

	_, err := ctrl.Database.FindItem(item.ID)
	assert.True(t, ctrl.Database.IsNotFound(err))
}
