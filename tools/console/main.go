package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/asdine/storm/v3"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"listkeeper/internal/database"
	"listkeeper/internal/model"
	"listkeeper/pkg/stormql"
)

// go run tools/console/main.go listkeeper.db " SELECT count(*) FROM items WHERE Purchased = false AND CreatedAt > '2026-01-01';  "

func main() {
	c := &cobra.Command{
		Use:   "console",
		Short: "SQL console for listkeeper database",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			//
			//
			sc, err := stormql.ParseSelect(args[1])
			if err != nil {
				return err
			}

			//
			//
			fmt.Println("Opening", args[0])
			db, err := storm.Open(args[0], database.StormCodec)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			//
			// Prepare request
			//

			query := db.Select(sc.Matcher)
			if sc.Skip > 0 {
				query.Skip(sc.Skip)
			}
			if sc.Limit > 0 {
				query.Limit(sc.Limit)
			}
			if len(sc.OrderBy) > 0 {
				query.OrderBy(sc.OrderBy...)
				if sc.OrderByReversed {
					query.Reverse()
				}
			}

			// Execute

			if sc.Count {
				return count(sc, query)
			}

			return list(sc, query)
		},
	}

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func count(sc *stormql.SelectClause, query storm.Query) error {
	var records interface{}
	switch sc.Tablename {
	case "lists":
		records = &model.List{}
	case "items":
		records = &model.Item{}
	default:
		return errors.Errorf("unknown tablename: %s", sc.Tablename)
	}

	n, err := query.Count(records)
	if err != nil {
		return errors.Wrap(err, "could not perform query")
	}

	fmt.Println("Count:", n)

	return nil
}

func list(sc *stormql.SelectClause, query storm.Query) error {
	var records interface{}
	switch sc.Tablename {
	case "lists":
		records = &[]*model.List{}
	case "items":
		records = &[]*model.Item{}
	default:
		return errors.Errorf("unknown tablename: %s", sc.Tablename)
	}

	err := query.Find(records)
	if err == storm.ErrNotFound {
		fmt.Println("[]")
		return nil
	}

	if err != nil {
		return errors.Wrap(err, "could not perform query")
	}

	jsondump(records)

	return nil
}

func jsondump(v interface{}) {
	d, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(d))
}
