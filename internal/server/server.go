package server

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"listkeeper/internal/database"
	"listkeeper/internal/extract"
	"listkeeper/internal/server/middlewares"
	"listkeeper/internal/server/session"
	"listkeeper/internal/server/view"
	"listkeeper/internal/transcribe"
)

// A Controller is an Inversion Of Control pattern used to init the server package.
type Controller struct {
	Version     string
	Database    database.Client
	Extractor   *extract.Service
	Transcriber *transcribe.Service
}

// EchoEngine instantiates the wep server.
func EchoEngine(ctrl Controller) *echo.Echo {
	engine := echo.New()
	engine.Use(middleware.Recover())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	engine.Use(middleware.Gzip())

	engine.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${status}] ${method} ${uri} (${bytes_in}) ${latency_human}\n",
	}))
	engine.Binder = middlewares.NewBinder()
	// Error handler
	engine.HTTPErrorHandler = middlewares.HTTPErrorHandler

	////////////
	// Router //
	////////////

	sessions := session.NewManager()
	renderer := view.New()

	router := engine.Group("", middlewares.ViewState())

	// generic handlers
	//
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	})

	//
	// list handlers
	//
	list := &list{
		db:   ctrl.Database,
		view: renderer,
	}
	router.GET("/lists", list.Index)
	router.POST("/lists", list.Create)
	router.GET("/lists/:id", list.Show)
	router.DELETE("/lists/:id", list.Delete)
	router.GET("/fragments/lists", list.IndexFragment)
	router.GET("/fragments/lists/:id", list.ShowFragment)

	//
	// item handlers
	//
	item := &item{
		db: ctrl.Database,
	}
	router.GET("/lists/:id/items", item.Index)
	router.POST("/lists/:id/items", item.Create)
	router.POST("/items/:id/toggle", item.Toggle)
	router.DELETE("/items/:id", item.Delete)

	//
	// assistant handlers
	//
	assistant := &assistant{
		db:          ctrl.Database,
		extractor:   ctrl.Extractor,
		transcriber: ctrl.Transcriber,
		sessions:    sessions,
		view:        renderer,
	}
	router.POST("/assistant/extract", assistant.Extract)
	router.POST("/assistant/transcribe", assistant.Transcribe)
	router.POST("/assistant/confirm", assistant.Confirm)
	router.GET("/fragments/pending", assistant.PendingFragment)

	//
	// view-state handlers
	//
	state := &viewstate{
		db:       ctrl.Database,
		sessions: sessions,
	}
	router.GET("/view", state.Show)
	router.POST("/view/select/:id", state.Select)
	router.POST("/view/back", state.Back)
	router.POST("/view/assistant", state.Assistant)

	//
	// static UI
	//
	registerUI(engine)

	return engine
}

// PrintRoutes prints the Echo engin exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}

func sessionToken(c echo.Context) string {
	token, ok := c.Get(middlewares.SessionTokenContextKey).(string)
	if ok {
		return token
	}
	return ""
}
