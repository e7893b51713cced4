package main

import (
	"fmt"
	"log"
	"path/filepath"
	"runtime"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/muesli/coral"
	"github.com/pkg/errors"

	"listkeeper/internal/database"
	"listkeeper/internal/extract"
	"listkeeper/internal/server"
	"listkeeper/internal/transcribe"
)

const dbname = "listkeeper.db"

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	cfg string
)

func main() {
	c := &coral.Command{
		Use:     "listkeeper",
		Short:   "Personal list-management server with AI list extraction",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    coral.ExactArgs(0),
	}
	initCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(initCmd)

	reindexCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(reindexCmd)

	serverCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(serverCmd)

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

// konf loads the baked-in defaults, overridden by the optional config file.
func konf() (*koanf.Koanf, error) {
	k := koanf.New(".")

	err := k.Load(confmap.Provider(map[string]interface{}{
		"address":          ":7862",
		"database_path":    "",
		"log_file":         "listkeeper.log",
		"ollama.endpoint":  "http://localhost:11434",
		"ollama.model":     "qwen2.5:7b-instruct",
		"whisper.endpoint": "http://localhost:8080/inference",
	}, "."), nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not load default configuration")
	}

	if cfg != "" {
		if err := k.Load(file.Provider(cfg), yaml.Parser()); err != nil {
			return nil, errors.Wrap(err, "could not load configuration file")
		}
	}
	return k, nil
}

func dbnameWithPath(path string) string {
	if len(path) == 0 {
		return dbname
	}
	return filepath.Join(path, dbname)
}

var (
	initCmd = &coral.Command{
		Use:   "init",
		Short: "Init the database and seed starter lists",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			k, err := konf()
			if err != nil {
				return err
			}

			name := dbnameWithPath(k.String("database_path"))
			if err := database.StormInit(name); err != nil {
				return err
			}

			db, err := database.StormOpen(name)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			return database.Seed(db)
		},
	}

	//
	reindexCmd = &coral.Command{
		Use:   "reindex",
		Short: "Reindex the database",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			k, err := konf()
			if err != nil {
				return err
			}

			return database.StormReIndex(dbnameWithPath(k.String("database_path")))
		},
	}

	//
	//
	serverCmd = &coral.Command{
		Use:   "server",
		Short: "Start server",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			k, err := konf()
			if err != nil {
				return err
			}

			setupLogger(k.String("log_file"))

			db, err := database.StormOpen(dbnameWithPath(k.String("database_path")))
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			engine := server.EchoEngine(server.Controller{
				Version:     version,
				Database:    db,
				Extractor:   extract.NewService(k.String("ollama.endpoint"), k.String("ollama.model"), extract.DefaultTimeout),
				Transcriber: transcribe.NewService(k.String("whisper.endpoint")),
			})
			server.PrintRoutes(engine)

			address := k.String("address")
			log.Printf("Server listening on %s\n", address)
			return errors.Wrap(engine.Start(address), "could not run server")
		},
	}
)
