package database_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listkeeper/internal/database"
	"listkeeper/internal/model"
)

func TestCreateList(t *testing.T) {
	db, cleanup := setup(t)
	defer cleanup()

	list, err := db.CreateList("Groceries", model.TypeShopping)
	require.NoError(t, err)
	assert.NotEmpty(t, list.ID)

	found, err := db.FindList(list.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", found.Name)
	assert.Equal(t, model.TypeShopping, found.Type)
	assert.False(t, found.CreatedAt.After(time.Now().UTC()))
}

func TestCreateListDefaultType(t *testing.T) {
	db, cleanup := setup(t)
	defer cleanup()

	list, err := db.CreateList("  Groceries  ", "")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", list.Name)
	assert.Equal(t, model.TypeShopping, list.Type)
}

func TestFindLists(t *testing.T) {
	db, cleanup := setup(t)
	defer cleanup()

	for _, name := range []string{"Groceries", "Costco Run"} {
		_, err := db.CreateList(name, model.TypeShopping)
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}
	_, err := db.CreateList("Weekly Tasks", model.TypeToDo)
	require.NoError(t, err)

	lists, err := db.FindLists("")
	require.NoError(t, err)
	require.Len(t, lists, 3)
	// Newest first.
	assert.Equal(t, "Weekly Tasks", lists[0].Name)
	assert.Equal(t, "Costco Run", lists[1].Name)
	assert.Equal(t, "Groceries", lists[2].Name)

	lists, err = db.FindLists(model.TypeToDo)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, "Weekly Tasks", lists[0].Name)
}

func TestFindListNotFound(t *testing.T) {
	db, cleanup := setup(t)
	defer cleanup()

	_, err := db.FindList("e5e5545e-0000-0000-0000-000000000000")
	assert.True(t, db.IsNotFound(err))
}

func TestDeleteListCascade(t *testing.T) {
	db, cleanup := setup(t)
	defer cleanup()

	list, err := db.CreateList("Groceries", model.TypeShopping)
	require.NoError(t, err)
	other, err := db.CreateList("Costco Run", model.TypeShopping)
	require.NoError(t, err)

	_, err = db.AddItems(list.ID, []string{"Milk", "Eggs"})
	require.NoError(t, err)
	kept, err := db.AddItem(other.ID, "Olive Oil")
	require.NoError(t, err)

	require.NoError(t, db.DeleteList(list.ID))

	_, err = db.FindList(list.ID)
	assert.True(t, db.IsNotFound(err))

	items, err := db.FindItemsByList(list.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Unrelated lists keep their items.
	items, err = db.FindItemsByList(other.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, kept.ID, items[0].ID)
}

func TestDeleteListMissingIsNoop(t *testing.T) {
	db, cleanup := setup(t)
	defer cleanup()

	assert.NoError(t, db.DeleteList("e5e5545e-0000-0000-0000-000000000000"))
}

func TestItemOrdering(t *testing.T) {
	db, cleanup := setup(t)
	defer cleanup()

	list, err := db.CreateList("Groceries", model.TypeShopping)
	require.NoError(t, err)

	names := []string{"Milk", "Eggs", "Bread"}
	items := make([]*model.Item, 0, len(names))
	for _, name := range names {
		item, err := db.AddItem(list.ID, name)
		require.NoError(t, err)
		items = append(items, item)
		time.Sleep(time.Millisecond)
	}
	// purchased = [false, true, false]
	require.NoError(t, db.ToggleItem(items[1].ID))

	found, err := db.FindItemsByList(list.ID)
	require.NoError(t, err)
	require.Len(t, found, 3)

	// Unpurchased first, newest first, then purchased.
	assert.Equal(t, "Bread", found[0].Name)
	assert.Equal(t, "Milk", found[1].Name)
	assert.Equal(t, "Eggs", found[2].Name)
	assert.True(t, found[2].Purchased)
}

func TestFindUnpurchasedItemsByList(t *testing.T) {
	db, cleanup := setup(t)
	defer cleanup()

	list, err := db.CreateList("Groceries", model.TypeShopping)
	require.NoError(t, err)

	milk, err := db.AddItem(list.ID, "Milk")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = db.AddItem(list.ID, "Eggs")
	require.NoError(t, err)

	require.NoError(t, db.ToggleItem(milk.ID))

	items, err := db.FindUnpurchasedItemsByList(list.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Eggs", items[0].Name)
}

func TestToggleItemRoundTrip(t *testing.T) {
	db, cleanup := setup(t)
	defer cleanup()

	list, err := db.CreateList("Groceries", model.TypeShopping)
	require.NoError(t, err)
	item, err := db.AddItem(list.ID, "Milk")
	require.NoError(t, err)
	assert.False(t, item.Purchased)

	require.NoError(t, db.ToggleItem(item.ID))
	found, err := db.FindItem(item.ID)
	require.NoError(t, err)
	assert.True(t, found.Purchased)

	require.NoError(t, db.ToggleItem(item.ID))
	found, err = db.FindItem(item.ID)
	require.NoError(t, err)
	assert.False(t, found.Purchased)
}

func TestToggleItemMissingIsNoop(t *testing.T) {
	db, cleanup := setup(t)
	defer cleanup()

	assert.NoError(t, db.ToggleItem("e5e5545e-0000-0000-0000-000000000000"))
}

func TestAddItemsBulk(t *testing.T) {
	db, cleanup := setup(t)
	defer cleanup()

	list, err := db.CreateList("Groceries", model.TypeShopping)
	require.NoError(t, err)

	items, err := db.AddItems(list.ID, []string{"Milk", " Eggs ", "Bread", "  "})
	require.NoError(t, err)
	require.Len(t, items, 3)

	// Trimmed, input order preserved, blanks skipped.
	assert.Equal(t, "Milk", items[0].Name)
	assert.Equal(t, "Eggs", items[1].Name)
	assert.Equal(t, "Bread", items[2].Name)
}

func TestDeleteItem(t *testing.T) {
	db, cleanup := setup(t)
	defer cleanup()

	list, err := db.CreateList("Groceries", model.TypeShopping)
	require.NoError(t, err)
	item, err := db.AddItem(list.ID, "Milk")
	require.NoError(t, err)

	require.NoError(t, db.DeleteItem(item.ID))
	_, err = db.FindItem(item.ID)
	assert.True(t, db.IsNotFound(err))

	// Missing id is a no-op.
	assert.NoError(t, db.DeleteItem(item.ID))
}

func TestSeed(t *testing.T) {
	db, cleanup := setup(t)
	defer cleanup()

	require.NoError(t, database.Seed(db))

	lists, err := db.FindLists("")
	require.NoError(t, err)
	assert.Len(t, lists, 6)

	// Seeding twice does not duplicate.
	require.NoError(t, database.Seed(db))
	lists, err = db.FindLists("")
	require.NoError(t, err)
	assert.Len(t, lists, 6)
}

func setup(t *testing.T) (database.Client, func()) {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "listkeeper.*.db")
	if err != nil {
		panic(err)
	}
	filename := tmpfile.Name()
	tmpfile.Close()

	db, err := database.StormOpen(filename)
	if err != nil {
		panic(err)
	}

	return db, func() {
		db.Close()
		os.RemoveAll(filename)
	}
}
