package main

import (
	"fmt"
	"log"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/q"
	"github.com/muesli/coral"
	"github.com/pkg/errors"

	"listkeeper/internal/database"
	"listkeeper/internal/model"
)

func main() {
	c := &coral.Command{
		Use:   "rmlist",
		Short: "Remove a list and its items from the database",
		Args:  coral.ExactArgs(2),
		RunE: func(_ *coral.Command, args []string) error {
			//
			//
			fmt.Println("Opening", args[0])
			db, err := storm.Open(args[0], database.StormCodec)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			// Fetch list
			var list model.List
			err = db.One("ID", args[1], &list)
			if err != nil {
				if err == storm.ErrNotFound {
					fmt.Println("No list for this id")
					return nil
				}
				return errors.Wrap(err, "find list by id")
			}

			fmt.Printf("List found: %s (%s)\n", list.Name, list.Type)

			// Deleting list's items
			err = db.Select(q.Eq("ListID", list.ID)).Delete(&model.Item{})
			if err != nil && err != storm.ErrNotFound {
				return errors.Wrap(err, "delete items")
			}
			fmt.Println("Items removed")

			// Delete list
			err = db.DeleteStruct(&list)
			if err != nil && err != storm.ErrNotFound {
				return errors.Wrap(err, "delete list")
			}
			fmt.Println("List removed")

			return nil
		},
	}

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}
