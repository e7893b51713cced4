package database

import (
	"github.com/pkg/errors"

	"listkeeper/internal/model"
)

// Seed inserts a few starter lists and items when the store is empty.
func Seed(c Client) error {
	lists, err := c.FindLists("")
	if err != nil {
		return err
	}
	if len(lists) > 0 {
		return nil
	}

	samples := []struct {
		name  string
		typ   string
		items []string
	}{
		{"Groceries", model.TypeShopping, []string{"Milk", "Bread", "Eggs", "Butter", "Apples", "Bananas", "Chicken"}},
		{"Trader Joe's", model.TypeShopping, []string{"Dark Chocolate", "Orange Chicken", "Cookie Butter", "Everything Bagel Seasoning"}},
		{"Costco Run", model.TypeShopping, []string{"Paper Towels", "Toilet Paper", "Olive Oil", "Almonds"}},
		{"Weekly Tasks", model.TypeToDo, []string{"Pay bills", "Schedule dentist", "Call mom"}},
		{"Work Projects", model.TypeToDo, []string{"Finish report", "Email client", "Review PR"}},
		{"House Chores", model.TypeChores, []string{"Vacuum living room", "Do laundry", "Clean bathroom"}},
	}

	for _, sample := range samples {
		list, err := c.CreateList(sample.name, sample.typ)
		if err != nil {
			return errors.Wrap(err, "could not seed list")
		}

		if _, err := c.AddItems(list.ID, sample.items); err != nil {
			return errors.Wrap(err, "could not seed items")
		}
	}
	return nil
}
