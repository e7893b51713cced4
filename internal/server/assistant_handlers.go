package server

import (
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"listkeeper/internal/database"
	"listkeeper/internal/extract"
	"listkeeper/internal/lkerror"
	"listkeeper/internal/server/session"
	"listkeeper/internal/server/view"
	"listkeeper/internal/transcribe"
)

// assistant contains the extraction and transcription handlers.
type assistant struct {
	db          database.Client
	extractor   *extract.Service
	transcriber *transcribe.Service
	sessions    *session.Manager
	view        *view.Renderer
}

type extractParams struct {
	Text string `json:"text" form:"text"`
}

type confirmParams struct {
	ListID string   `json:"list_id" form:"list_id"`
	Items  []string `json:"items"`
}

///// Extract
////
//

// Extract parses free-form text into item names and stores them as the
// session's pending items. Nothing is added to any list yet.
func (h *assistant) Extract(c echo.Context) error {
	var params extractParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, lkerror.New("Could not get extraction params."))
	}

	items := h.extractor.Extract(c.Request().Context(), params.Text)
	if len(items) == 0 {
		return c.JSON(http.StatusBadRequest, lkerror.New("Please enter some text to parse."))
	}

	h.sessions.SetPending(sessionToken(c), items)

	return c.JSON(http.StatusOK, echo.Map{
		"items": items,
	})
}

///// Transcribe
////
//

// Transcribe recognizes the speech of the uploaded audio clip.
// A missing upload reports the no-audio status, failures a short message,
// both with HTTP 200 since they are expected outcomes, not server faults.
func (h *assistant) Transcribe(c echo.Context) error {
	upload, err := c.FormFile("audio")
	if err != nil {
		return c.JSON(http.StatusOK, transcribe.Result{
			Status:  transcribe.StatusNoAudio,
			Message: "No audio recorded.",
		})
	}

	path, err := saveUpload(upload)
	if err != nil {
		return err
	}
	defer os.Remove(path)

	return c.JSON(http.StatusOK, h.transcriber.Transcribe(c.Request().Context(), path))
}

// saveUpload copies the multipart upload to a temporary file and returns its path.
func saveUpload(upload *multipart.FileHeader) (string, error) {
	src, err := upload.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.CreateTemp("", "listkeeper-audio-*"+filepath.Ext(upload.Filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return dst.Name(), nil
}

///// Confirm
////
//

// Confirm bulk-inserts pending items into the chosen list.
// The request may narrow the selection down to a subset of the pending items,
// an empty selection means all of them. Pending items are cleared on success only.
func (h *assistant) Confirm(c echo.Context) error {
	var params confirmParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, lkerror.New("Could not get confirmation params."))
	}

	if params.ListID == "" {
		return c.JSON(http.StatusBadRequest, lkerror.New("Please select a list first."))
	}

	token := sessionToken(c)
	items := params.Items
	if len(items) == 0 {
		items = h.sessions.Pending(token)
	}
	if len(items) == 0 {
		return c.JSON(http.StatusBadRequest, lkerror.New("No items to add."))
	}

	added, err := h.db.AddItems(params.ListID, items)
	if err != nil {
		return err
	}
	h.sessions.ClearPending(token)

	return c.JSON(http.StatusOK, echo.Map{
		"added": len(added),
		"items": added,
	})
}

///// Fragments
////
//

// PendingFragment renders the pending extraction result as an HTML fragment.
func (h *assistant) PendingFragment(c echo.Context) error {
	html, err := h.view.PendingItems(h.sessions.Pending(sessionToken(c)))
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, html)
}
