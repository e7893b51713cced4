// Package view renders lists and items as HTML fragments for the single-page UI.
package view

import (
	"html/template"
	"strings"

	"github.com/pkg/errors"

	"listkeeper/internal/model"
)

// previewSize is the number of unpurchased items shown on a list card.
const previewSize = 4

var icons = map[string]string{
	model.TypeShopping: "🛒",
	model.TypeToDo:     "✅",
	model.TypeChores:   "🏠",
}

type (
	// A Renderer renders the HTML fragments of the three views.
	Renderer struct {
		t *template.Template
	}

	listCard struct {
		List      *model.List
		Icon      string
		Preview   []*model.Item
		Remaining int
		HasItems  bool
	}

	itemGroups struct {
		List        *model.List
		Unpurchased []*model.Item
		Purchased   []*model.Item
	}
)

// New returns a renderer with all fragment templates compiled.
func New() *Renderer {
	return &Renderer{
		t: template.Must(template.New("fragments").Parse(fragments)),
	}
}

// AllLists renders the list-cards fragment.
// previews maps list ids to their unpurchased items, newest first.
func (r *Renderer) AllLists(lists []*model.List, previews map[string][]*model.Item) (string, error) {
	cards := make([]listCard, 0, len(lists))
	for _, list := range lists {
		preview := previews[list.ID]

		card := listCard{
			List:     list,
			Icon:     icon(list.Type),
			Preview:  preview,
			HasItems: len(preview) > 0,
		}
		if len(preview) > previewSize {
			card.Preview = preview[:previewSize]
			card.Remaining = len(preview) - previewSize
		}
		cards = append(cards, card)
	}

	return r.render("all-lists", cards)
}

// SingleList renders the detail fragment of one list,
// unpurchased items first, completed ones below.
func (r *Renderer) SingleList(list *model.List, items []*model.Item) (string, error) {
	groups := itemGroups{List: list}
	for _, item := range items {
		if item.Purchased {
			groups.Purchased = append(groups.Purchased, item)
		} else {
			groups.Unpurchased = append(groups.Unpurchased, item)
		}
	}

	return r.render("single-list", groups)
}

// PendingItems renders the extraction result awaiting confirmation.
func (r *Renderer) PendingItems(items []string) (string, error) {
	return r.render("pending-items", items)
}

func (r *Renderer) render(name string, data interface{}) (string, error) {
	var b strings.Builder
	if err := r.t.ExecuteTemplate(&b, name, data); err != nil {
		return "", errors.Wrapf(err, "could not render %s fragment", name)
	}
	return b.String(), nil
}

func icon(listType string) string {
	if icon, ok := icons[listType]; ok {
		return icon
	}
	return "📋"
}

const fragments = `
{{define "all-lists"}}
{{- if not .}}<div class="empty-state"><p>No lists yet!</p><p>Create your first list below.</p></div>{{- else}}
<div class="list-cards">
{{- range .}}
  <div class="list-card" data-list-id="{{.List.ID}}">
    <div class="list-card-header">
      <span class="list-icon">{{.Icon}}</span>
      <span class="list-name">{{.List.Name}}</span>
      <button class="delete-list" data-list-id="{{.List.ID}}">×</button>
    </div>
    <div class="list-card-preview">
    {{- range .Preview}}
      <div class="preview-item">{{.Name}}</div>
    {{- end}}
    {{- if .Remaining}}<div class="preview-more">+ {{.Remaining}} more items</div>{{- end}}
    {{- if not .HasItems}}<div class="preview-empty">No items yet</div>{{- end}}
    </div>
  </div>
{{- end}}
</div>
{{- end}}
{{end}}

{{define "single-list"}}
<div class="item-rows" data-list-id="{{.List.ID}}">
{{- range .Unpurchased}}
  <div class="item-row" data-item-id="{{.ID}}">
    <input type="checkbox" class="toggle-item" data-item-id="{{.ID}}">
    <label>{{.Name}}</label>
    <button class="delete-item" data-item-id="{{.ID}}">×</button>
  </div>
{{- end}}
{{- if .Purchased}}
  <div class="completed-header">Completed ({{len .Purchased}})</div>
{{- range .Purchased}}
  <div class="item-row purchased" data-item-id="{{.ID}}">
    <input type="checkbox" class="toggle-item" data-item-id="{{.ID}}" checked>
    <label>{{.Name}}</label>
    <button class="delete-item" data-item-id="{{.ID}}">×</button>
  </div>
{{- end}}
{{- end}}
{{- if and (not .Unpurchased) (not .Purchased)}}
  <div class="empty-state"><p>This list is empty</p><p>Add your first item above!</p></div>
{{- end}}
</div>
{{end}}

{{define "pending-items"}}
{{- if not .}}<div class="empty-state">No items parsed yet</div>{{- else}}
<div class="pending-items">
{{- range $i, $item := .}}
  <div class="pending-item">
    <input type="checkbox" class="pending-check" id="pending-{{$i}}" value="{{$item}}" checked>
    <label for="pending-{{$i}}">{{$item}}</label>
  </div>
{{- end}}
</div>
{{- end}}
{{end}}
`
