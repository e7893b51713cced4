package database

import (
	"listkeeper/internal/model"
)

type (
	// A Client can interacts with the database.
	Client interface {
		// Save inserts or updates the entry in database with the given model.
		Save(m model.Model) error
		// Delete deletes the entry in database with the given model.
		Delete(m model.Model) error
		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool

		ListInteraction
		ItemInteraction
	}

	// A ListInteraction defines all the methods used to interact with a list record.
	ListInteraction interface {
		// CreateList stores a new list with the given name and category.
		CreateList(name, listType string) (*model.List, error)
		// FindList returns the list for the given id (UUID).
		FindList(id string) (*model.List, error)
		// FindLists returns all lists, newest first.
		// An empty listType returns every category.
		FindLists(listType string) ([]*model.List, error)
		// DeleteList removes the list and all its items in a single transaction.
		// A missing id is a no-op.
		DeleteList(id string) error
	}

	// An ItemInteraction defines all the methods used to interact with item record(s).
	ItemInteraction interface {
		// FindItem returns the item for the given id (UUID).
		FindItem(id string) (*model.Item, error)
		// FindItemsByList returns all items of the given list,
		// unpurchased before purchased, newest first within each group.
		FindItemsByList(listID string) ([]*model.Item, error)
		// FindUnpurchasedItemsByList returns the unpurchased items of the given list, newest first.
		FindUnpurchasedItemsByList(listID string) ([]*model.Item, error)
		// AddItem stores a new item in the given list.
		AddItem(listID, name string) (*model.Item, error)
		// AddItems stores the given names as items of the list, preserving their order.
		// Names are trimmed and blank ones are skipped.
		AddItems(listID string, names []string) ([]*model.Item, error)
		// ToggleItem flips the purchased flag of the item. A missing id is a no-op.
		ToggleItem(id string) error
		// DeleteItem removes the item. A missing id is a no-op.
		DeleteItem(id string) error
	}
)
