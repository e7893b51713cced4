package database

import (
	"sort"
	"strings"
	"time"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/asdine/storm/v3/q"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"

	"listkeeper/internal/model"
)

type strm struct {
	db *storm.DB
}

// StormCodec is the format used to store data in the database.
var StormCodec = storm.Codec(msgpack.Codec)

// StormInit initializes Storm database.
func StormInit(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	if err := db.Init(&model.List{}); err != nil {
		return errors.Wrap(err, "could not init list index")
	}

	err = db.Init(&model.Item{})
	return errors.Wrap(err, "could not init item index")
}

// StormReIndex reindex Storm database.
func StormReIndex(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	if err := db.ReIndex(&model.List{}); err != nil {
		return errors.Wrap(err, "could not ReIndex lists")
	}

	err = db.ReIndex(&model.Item{})
	return errors.Wrap(err, "could not ReIndex items")
}

// StormOpen returns a new Storm database connection.
func StormOpen(database string) (Client, error) {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	return &strm{
		db: db,
	}, nil
}

// Save inserts or updates the entry in database with the given model.
func (c *strm) Save(m model.Model) error {
	t := time.Now().UTC()
	m.SetUpdatedAt(t)

	if m.GetID() == "" {
		m.SetID(uuid.Must(uuid.NewV4()).String())
		m.SetCreatedAt(t)
	}

	return errors.Wrap(c.db.Save(m), "could not save the model")
}

// Delete deletes the entry in database with the given model.
func (c *strm) Delete(m model.Model) error {
	return errors.Wrap(c.db.DeleteStruct(m), "could not delete the model")
}

// Close the database.
func (c *strm) Close() error {
	return c.db.Close()
}

// IsNotFound returns true if err is a not found error.
func (c *strm) IsNotFound(err error) bool {
	return errors.Cause(err) == storm.ErrNotFound
}

// CreateList stores a new list with the given name and category.
func (c *strm) CreateList(name, listType string) (*model.List, error) {
	list := model.NewList(strings.TrimSpace(name))
	if listType != "" {
		list.Type = listType
	}

	if err := c.Save(list); err != nil {
		return nil, errors.Wrap(err, "create list")
	}
	return list, nil
}

// FindList returns the list for the given id (UUID).
func (c *strm) FindList(id string) (*model.List, error) {
	var list model.List
	if err := c.db.One("ID", id, &list); err != nil {
		return nil, errors.Wrap(err, "find list by id")
	}
	return &list, nil
}

// FindLists returns all lists, newest first. An empty listType returns every category.
func (c *strm) FindLists(listType string) ([]*model.List, error) {
	lists := make([]*model.List, 0)

	stmt := c.db.Select().OrderBy("CreatedAt").Reverse()
	if listType != "" {
		stmt = c.db.Select(q.Eq("Type", listType)).OrderBy("CreatedAt").Reverse()
	}

	err := stmt.Find(&lists)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find lists")
	}
	return lists, nil
}

// DeleteList removes the list and all its items.
// Both deletions run in the same transaction so they commit together.
func (c *strm) DeleteList(id string) error {
	tx, err := c.db.Begin(true)
	if err != nil {
		return errors.Wrap(err, "could not begin transaction")
	}
	defer tx.Rollback()

	err = tx.Select(q.Eq("ListID", id)).Delete(&model.Item{})
	if err != nil && err != storm.ErrNotFound {
		return errors.Wrap(err, "could not delete list items")
	}

	err = tx.Select(q.Eq("ID", id)).Delete(&model.List{})
	if err != nil && err != storm.ErrNotFound {
		return errors.Wrap(err, "could not delete list")
	}

	return errors.Wrap(tx.Commit(), "could not commit list deletion")
}

// FindItem returns the item for the given id (UUID).
func (c *strm) FindItem(id string) (*model.Item, error) {
	var item model.Item
	if err := c.db.One("ID", id, &item); err != nil {
		return nil, errors.Wrap(err, "could not find item")
	}
	return &item, nil
}

// FindItemsByList returns all items of the given list.
// Storm cannot order on two fields so the purchased/recency ordering is applied here.
func (c *strm) FindItemsByList(listID string) ([]*model.Item, error) {
	items := make([]*model.Item, 0)
	err := c.db.Select(q.Eq("ListID", listID)).Find(&items)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find items")
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Purchased != items[j].Purchased {
			return !items[i].Purchased
		}
		return items[i].CreatedAt.After(*items[j].CreatedAt)
	})
	return items, nil
}

// FindUnpurchasedItemsByList returns the unpurchased items of the given list, newest first.
func (c *strm) FindUnpurchasedItemsByList(listID string) ([]*model.Item, error) {
	items := make([]*model.Item, 0)
	err := c.db.Select(q.Eq("ListID", listID), q.Eq("Purchased", false)).
		OrderBy("CreatedAt").Reverse().Find(&items)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find unpurchased items")
	}
	return items, nil
}

// AddItem stores a new item in the given list.
func (c *strm) AddItem(listID, name string) (*model.Item, error) {
	item := &model.Item{
		ListID: listID,
		Name:   strings.TrimSpace(name),
	}

	if err := c.Save(item); err != nil {
		return nil, errors.Wrap(err, "add item")
	}
	return item, nil
}

// AddItems stores the given names as items of the list, preserving their order.
func (c *strm) AddItems(listID string, names []string) ([]*model.Item, error) {
	items := make([]*model.Item, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		item, err := c.AddItem(listID, name)
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}
	return items, nil
}

// ToggleItem flips the purchased flag of the item. A missing id is a no-op.
func (c *strm) ToggleItem(id string) error {
	item, err := c.FindItem(id)
	if err != nil {
		if c.IsNotFound(err) {
			return nil
		}
		return err
	}

	item.Purchased = !item.Purchased
	return errors.Wrap(c.Save(item), "toggle item")
}

// DeleteItem removes the item. A missing id is a no-op.
func (c *strm) DeleteItem(id string) error {
	err := c.db.Select(q.Eq("ID", id)).Delete(&model.Item{})
	if err != nil && err != storm.ErrNotFound {
		return errors.Wrap(err, "could not delete item")
	}
	return nil
}
