package grid

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/Werneck0live/shukatsu-tracker/internal/models"
)

// Estado da lista viaja na query string:
// status, sort, dir=asc|desc, view=table|card, hide=col,col e sel=id,id.

func (s *State) Encode() url.Values {
	v := url.Values{}
	if s.Status != "" {
		v.Set("status", s.Status)
	}
	if s.SortKey != "" {
		v.Set("sort", s.SortKey)
		dir := "asc"
		if s.Desc {
			dir = "desc"
		}
		v.Set("dir", dir)
	}
	if s.View == ViewCard {
		v.Set("view", string(ViewCard))
	}
	if len(s.Hidden) > 0 {
		keys := make([]string, 0, len(s.Hidden))
		for k := range s.Hidden {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		v.Set("hide", strings.Join(keys, ","))
	}
	if ids := s.SelectedIDs(); len(ids) > 0 {
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = strconv.FormatInt(id, 10)
		}
		v.Set("sel", strings.Join(parts, ","))
	}
	return v
}

// Decode ignora valores desconhecidos.
func Decode(v url.Values) *State {
	s := New()
	if st := v.Get("status"); models.Status(st).Valid() {
		s.Status = st
	}
	if key := v.Get("sort"); key != "" {
		if _, ok := column(key); ok {
			s.SortKey = key
			s.Desc = v.Get("dir") == "desc"
		}
	}
	if View(v.Get("view")) == ViewCard {
		s.View = ViewCard
	}
	for _, k := range splitList(v.Get("hide")) {
		if col, ok := column(k); ok && !col.Locked {
			s.Hidden[k] = true
		}
	}
	for _, raw := range splitList(v.Get("sel")) {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			s.Selected[id] = true
		}
	}
	return s
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Ações da tela de lista.
const (
	ActionSort   = "click"  // arg = coluna
	ActionToggle = "toggle" // arg = id
	ActionAll    = "all"
	ActionColumn = "col" // arg = coluna
	ActionView   = "view"
	ActionFilter = "filter" // arg = status, vazio = todos
)

// Apply executa uma ação; records é a lista atual (usada pelo select-all).
func (s *State) Apply(action, arg string, records []models.Company) {
	switch action {
	case ActionSort:
		s.ToggleSort(arg)
	case ActionToggle:
		if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
			s.ToggleRow(id)
		}
	case ActionAll:
		s.ToggleAll(s.Visible(records))
	case ActionColumn:
		s.ToggleColumn(arg)
	case ActionView:
		if View(arg) == ViewCard {
			s.View = ViewCard
		} else {
			s.View = ViewTable
		}
	case ActionFilter:
		if arg == "" || models.Status(arg).Valid() {
			s.Status = arg
		}
	}
}
