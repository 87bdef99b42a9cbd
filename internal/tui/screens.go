package tui

import (
	"context"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/wishbrick/internal/sorting"
	"github.com/msto63/wishbrick/internal/wishlist"
	"github.com/msto63/wishbrick/internal/wishlist/store"
)

// submit handles one line of input on the current screen.
func (m Model) submit(value string) (Model, tea.Cmd) {
	switch m.screen {
	case screenHome:
		return m.submitHome(value)
	case screenMenu:
		return m.submitMenu(value)
	case screenList:
		switch value {
		case "1":
			return m.enter(screenViewPick)
		case "0":
			return m.enter(screenMenu)
		}
		return m.invalidChoice()
	case screenViewPick:
		return m.pick(value, screenDetail, screenList)
	case screenDetail:
		return m.submitDetail(value)
	case screenAdd:
		return m.submitAdd(value)
	case screenQuickAdd:
		return m.submitQuickAdd(value)
	case screenEditPick:
		m.returnTo = screenMenu
		return m.pick(value, screenEditConfirm, screenEditPick)
	case screenEditConfirm:
		return m.confirm(value, screenEditFields)
	case screenEditFields:
		return m.submitEdit(value)
	case screenDeletePick:
		m.returnTo = screenMenu
		return m.pick(value, screenDeleteConfirm, screenDeletePick)
	case screenDeleteConfirm:
		return m.submitDelete(value)
	case screenSort:
		return m.submitSort(value)
	case screenFilter, screenSearch:
		switch value {
		case "1", "2":
			m.choice = value
			if m.screen == screenFilter {
				return m.enter(screenFilterValue)
			}
			return m.enter(screenSearchValue)
		case "0":
			return m.enter(screenMenu)
		}
		return m.invalidChoice()
	case screenFilterValue:
		return m.submitFilter(value)
	case screenSearchValue:
		return m.submitSearch(value)
	case screenTotals:
		return m.submitTotals(value)
	case screenResult:
		return m.enter(m.result.back)
	}
	return m, nil
}

func (m Model) submitHome(value string) (Model, tea.Cmd) {
	switch value {
	case "1":
		return m.enter(screenMenu)
	case "0":
		m.quitting = true
		return m, tea.Quit
	}
	return m.invalidChoice()
}

func (m Model) submitMenu(value string) (Model, tea.Cmd) {
	switch value {
	case "1":
		return m.enter(screenList)
	case "2":
		return m.enter(screenAdd)
	case "3":
		return m.enter(screenQuickAdd)
	case "4":
		return m.enter(screenEditPick)
	case "5":
		return m.enter(screenDeletePick)
	case "6":
		return m.enter(screenSort)
	case "7":
		return m.enter(screenFilter)
	case "8":
		return m.enter(screenSearch)
	case "9":
		return m.enter(screenTotals)
	case "0":
		return m.enter(screenHome)
	}
	return m.invalidChoice()
}

// pick selects the set named by value and enters next, or reports it
// missing and returns to retry.
func (m Model) pick(value string, next, retry screen) (Model, tea.Cmd) {
	_, err := m.store.Get(m.ctx, value)
	if store.IsNotFound(err) {
		text := msgNotFound
		if guess := wishlist.Suggest(value, m.sets); guess != "" {
			text += fmt.Sprintf(" Did you mean [%s]?", guess)
		}
		return m.pause(text, true, m.opts.Pause, retry)
	}
	if err != nil {
		return m.storeFailed(err)
	}
	m.key = value
	return m.enter(next)
}

func (m Model) submitDetail(value string) (Model, tea.Cmd) {
	switch value {
	case "1":
		m.returnTo = screenDetail
		return m.enter(screenEditConfirm)
	case "2":
		m.returnTo = screenList
		return m.enter(screenDeleteConfirm)
	case "0":
		return m.enter(screenList)
	}
	return m.invalidChoice()
}

// confirm handles the destructive-action question.
func (m Model) confirm(value string, next screen) (Model, tea.Cmd) {
	switch value {
	case "1":
		return m.enter(next)
	case "0":
		return m.enter(m.returnTo)
	}
	return m.invalidChoice()
}

func (m Model) submitAdd(value string) (Model, tea.Cmd) {
	m.answers = append(append([]string(nil), m.answers...), value)
	if len(m.answers) < len(addPrompts) {
		return m, nil
	}

	a := m.answers
	key := a[4]
	if err := wishlist.ValidateKey(key); err != nil {
		return m.pause(msgInvalidFormat, true, m.opts.Pause, screenMenu)
	}
	rec := wishlist.Record{Name: a[0], Price: a[1], AgeGroup: a[2], Pieces: a[3], Description: a[5]}
	if err := m.store.Put(m.ctx, key, rec); err != nil {
		return m.storeFailed(err)
	}
	m.logger.Info("Set added", "set_number", key)
	return m.pause(msgAdded, false, m.opts.Pause, screenMenu)
}

func (m Model) submitQuickAdd(value string) (Model, tea.Cmd) {
	key, rec, err := wishlist.ParseQuickAdd(value)
	if err != nil {
		return m.pause(msgInvalidFormat, true, m.opts.Pause, screenMenu)
	}
	if err := m.store.Put(m.ctx, key, rec); err != nil {
		return m.storeFailed(err)
	}
	m.logger.Info("Set quick-added", "set_number", key)
	return m.pause(msgAdded, false, m.opts.Pause, screenMenu)
}

func (m Model) submitEdit(value string) (Model, tea.Cmd) {
	m.answers = append(append([]string(nil), m.answers...), value)
	if len(m.answers) < len(editFields) {
		return m, nil
	}

	a := m.answers
	partial := wishlist.Record{Name: a[0], Price: a[1], AgeGroup: a[2], Pieces: a[3], Description: a[4]}
	if err := m.store.Update(m.ctx, m.key, partial); err != nil {
		return m.storeFailed(err)
	}
	m.logger.Info("Set updated", "set_number", m.key)
	return m.pause(msgUpdated, false, m.opts.Pause, m.returnTo)
}

func (m Model) submitDelete(value string) (Model, tea.Cmd) {
	switch value {
	case "1":
	case "0":
		back := m.returnTo
		if back == screenList {
			back = screenDetail
		}
		return m.enter(back)
	default:
		return m.invalidChoice()
	}

	if err := m.store.Delete(m.ctx, m.key); err != nil {
		return m.storeFailed(err)
	}
	m.logger.Info("Set deleted", "set_number", m.key)
	return m.pause(msgDeleted, false, m.opts.Pause, m.returnTo)
}

func (m Model) submitSort(value string) (Model, tea.Cmd) {
	var dir sorting.Direction
	switch value {
	case "1":
		dir = sorting.Ascending
	case "2":
		dir = sorting.Descending
	case "0":
		return m.enter(screenMenu)
	default:
		return m.invalidChoice()
	}

	coll, err := m.snapshot()
	if err != nil {
		return m.storeFailed(err)
	}
	d := m.dispatcher
	return m.request(screenSort, func(ctx context.Context) (result, error) {
		sorted, err := d.Sort(ctx, coll, dir)
		return result{title: "LEGO sets by price, " + dir.String() + ":", sets: sorted}, err
	})
}

func (m Model) submitFilter(value string) (Model, tea.Cmd) {
	threshold, err := strconv.Atoi(value)
	if err != nil || threshold < 0 {
		return m.pause(msgInvalidFormat, true, m.opts.Pause, screenFilterValue)
	}

	coll, err := m.snapshot()
	if err != nil {
		return m.storeFailed(err)
	}
	d := m.dispatcher
	if m.choice == "1" {
		return m.request(screenFilter, func(ctx context.Context) (result, error) {
			sets, err := d.FilterByAge(ctx, coll, threshold)
			return result{title: fmt.Sprintf("LEGO sets for ages %d and up:", threshold), sets: sets}, err
		})
	}
	return m.request(screenFilter, func(ctx context.Context) (result, error) {
		sets, err := d.FilterByPieces(ctx, coll, threshold)
		return result{title: fmt.Sprintf("LEGO sets with at least %d pieces:", threshold), sets: sets}, err
	})
}

func (m Model) submitSearch(value string) (Model, tea.Cmd) {
	if value == "" {
		return m.pause(msgInvalidFormat, true, m.opts.Pause, screenSearchValue)
	}

	d := m.dispatcher
	byNumber := m.choice == "1"
	return m.request(screenSearch, func(ctx context.Context) (result, error) {
		var (
			text string
			err  error
		)
		if byNumber {
			text, err = d.SearchByNumber(ctx, value)
		} else {
			text, err = d.SearchByName(ctx, value)
		}
		return result{title: "Search for " + value, text: text}, err
	})
}

func (m Model) submitTotals(value string) (Model, tea.Cmd) {
	if value == "0" {
		return m.enter(screenMenu)
	}
	if value != "1" && value != "2" && value != "3" {
		return m.invalidChoice()
	}

	coll, err := m.snapshot()
	if err != nil {
		return m.storeFailed(err)
	}
	d := m.dispatcher
	return m.request(screenTotals, func(ctx context.Context) (result, error) {
		res := result{title: "Wish list totals"}
		switch value {
		case "1":
			n, err := d.CountSets(ctx, coll)
			res.text = fmt.Sprintf("Total number of LEGO sets: %d", n)
			return res, err
		case "2":
			cost, err := d.TotalCost(ctx, coll)
			res.text = "Total cost of LEGO sets: $" + cost.StringFixed(2)
			return res, err
		default:
			n, err := d.TotalPieces(ctx, coll)
			res.text = fmt.Sprintf("Total pieces of LEGO sets: %d", n)
			return res, err
		}
	})
}
