// Package todo is a small sample store: a root todo list with a "filter"
// submodule that searches the list by tag and a "stats" submodule that
// summarizes it. The CLI demo and the runnable example both drive it.
package todo

import (
	"fmt"
	"slices"

	"github.com/comalice/storex"
)

// Namespaces of the submodules.
const (
	FilterNamespace = "filter"
	StatsNamespace  = "stats"
)

// Item is one entry in the list.
type Item struct {
	ID    int    `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Tag   string `json:"tag,omitempty" yaml:"tag,omitempty"`
	Done  bool   `json:"done" yaml:"done"`
}

// NewItem is the payload of the root "add" action.
type NewItem struct {
	Title string
	Tag   string
}

// State is the root state.
type State struct {
	Items  []Item `json:"items" yaml:"items"`
	NextID int    `json:"nextId" yaml:"nextId"`
}

// FilterState holds the last search.
type FilterState struct {
	Tag     string `json:"tag" yaml:"tag"`
	Matches []Item `json:"matches" yaml:"matches"`
}

// Stats summarizes the list as of the last refresh.
type Stats struct {
	Total int `json:"total" yaml:"total"`
	Done  int `json:"done" yaml:"done"`
}

func reduceList(state any, a storex.Action) (any, error) {
	s := state.(State)
	switch a.Type {
	case "ADD_ITEM":
		p, ok := a.Payload.(NewItem)
		if !ok || p.Title == "" {
			return nil, fmt.Errorf("ADD_ITEM: invalid payload %v", a.Payload)
		}
		s.NextID++
		s.Items = append(slices.Clone(s.Items), Item{ID: s.NextID, Title: p.Title, Tag: p.Tag})
	case "TOGGLE_ITEM":
		id, _ := a.Payload.(int)
		i := slices.IndexFunc(s.Items, func(it Item) bool { return it.ID == id })
		if i < 0 {
			return nil, fmt.Errorf("TOGGLE_ITEM: no item %d", id)
		}
		s.Items = slices.Clone(s.Items)
		s.Items[i].Done = !s.Items[i].Done
	case "CLEAR_DONE":
		s.Items = slices.DeleteFunc(slices.Clone(s.Items), func(it Item) bool { return it.Done })
	default:
		return nil, fmt.Errorf("%w: %s", storex.ErrUnknownAction, a.Type)
	}
	return s, nil
}

func listGetters(state any) storex.Getters {
	s := state.(State)
	remaining := 0
	for _, it := range s.Items {
		if !it.Done {
			remaining++
		}
	}
	return storex.Getters{
		"total":     len(s.Items),
		"remaining": remaining,
	}
}

func listActions(ctx storex.ActionContext) storex.Actions {
	return storex.Actions{
		"add": func(payload any) (any, error) {
			return nil, ctx.Dispatch(storex.NewAction("ADD_ITEM", payload))
		},
		"toggle": func(payload any) (any, error) {
			return nil, ctx.Dispatch(storex.NewAction("TOGGLE_ITEM", payload))
		},
		"clearDone": func(any) (any, error) {
			return nil, ctx.Dispatch(storex.NewAction("CLEAR_DONE", nil))
		},
	}
}

func reduceFilter(state any, a storex.Action) (any, error) {
	if a.Type != "SET_FILTER" {
		return nil, fmt.Errorf("%w: %s", storex.ErrUnknownAction, a.Type)
	}
	f, ok := a.Payload.(FilterState)
	if !ok {
		return nil, fmt.Errorf("SET_FILTER: invalid payload %v", a.Payload)
	}
	return f, nil
}

func filterGetters(state any) storex.Getters {
	return storex.Getters{"matches": len(state.(FilterState).Matches)}
}

func filterActions(ctx storex.ActionContext) storex.Actions {
	itemsByTag := ctx.Ref("itemsByTag")
	return storex.Actions{
		// search looks items up through its sibling and records the result.
		"search": func(payload any) (any, error) {
			tag, _ := payload.(string)
			found, err := itemsByTag.Call(tag)
			if err != nil {
				return nil, err
			}
			matches := found.([]Item)
			return matches, ctx.Dispatch(storex.NewAction("SET_FILTER", FilterState{Tag: tag, Matches: matches}))
		},
		"itemsByTag": func(payload any) (any, error) {
			tag, _ := payload.(string)
			matches := []Item{}
			for _, it := range parentItems(ctx.Parent) {
				if it.Tag == tag {
					matches = append(matches, it)
				}
			}
			return matches, nil
		},
	}
}

func reduceStats(state any, a storex.Action) (any, error) {
	if a.Type != "SET_STATS" {
		return nil, fmt.Errorf("%w: %s", storex.ErrUnknownAction, a.Type)
	}
	st, ok := a.Payload.(Stats)
	if !ok {
		return nil, fmt.Errorf("SET_STATS: invalid payload %v", a.Payload)
	}
	return st, nil
}

func statsGetters(state any) storex.Getters {
	s := state.(Stats)
	percent := 0
	if s.Total > 0 {
		percent = s.Done * 100 / s.Total
	}
	return storex.Getters{"percentDone": percent}
}

func statsActions(ctx storex.ActionContext) storex.Actions {
	return storex.Actions{
		"refresh": func(any) (any, error) {
			var s Stats
			for _, it := range parentItems(ctx.Parent) {
				s.Total++
				if it.Done {
					s.Done++
				}
			}
			return s, ctx.Dispatch(storex.NewAction("SET_STATS", s))
		},
	}
}

func parentItems(parent *storex.Module) []Item {
	if parent == nil {
		return nil
	}
	s, _ := parent.State.(State)
	return s.Items
}

// Factory returns the todo store factory. opts apply to the root builder and
// both submodules; onBuilt, if set, is registered on the root builder only,
// so it fires once per render with the merged store.
func Factory(onBuilt func(*storex.Store), opts ...storex.Option) storex.Factory {
	filter := storex.NewStoreBuilder(FilterState{Matches: []Item{}}, reduceFilter, FilterNamespace, opts...).
		WithGetters(filterGetters).
		WithActions(filterActions).
		Build()
	stats := storex.NewStoreBuilder(Stats{}, reduceStats, StatsNamespace, opts...).
		WithGetters(statsGetters).
		WithActions(statsActions).
		Build()
	rootOpts := append(slices.Clone(opts), storex.WithOnBuilt(onBuilt))
	return storex.NewStoreBuilder(State{Items: []Item{}}, reduceList, "", rootOpts...).
		WithGetters(listGetters).
		WithActions(listActions).
		WithSubmodule(filter).
		WithSubmodule(stats).
		Build()
}
