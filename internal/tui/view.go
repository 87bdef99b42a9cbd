package tui

import (
	"fmt"
	"strings"

	"github.com/msto63/wishbrick/internal/wishlist"
)

// View renders the current screen
func (m Model) View() string {
	if m.quitting {
		return Farewell + "\n"
	}

	var b strings.Builder
	b.WriteString(RenderTitle("Wish Upon a Brick"))
	b.WriteString("\n")

	body := m.body()
	if m.ready {
		m.viewport.SetContent(body)
		m.viewport.GotoBottom()
		body = m.viewport.View()
	}
	b.WriteString(body)
	b.WriteString("\n\n")

	switch {
	case m.waiting:
		b.WriteString(m.spinner.View() + " " + SubtitleStyle.Render(msgWorking))
	case m.flash != "" && m.flashErr:
		b.WriteString(RenderError(m.flash))
	case m.flash != "":
		b.WriteString(RenderSuccess(m.flash))
	default:
		b.WriteString(PromptStyle.Render(m.prompt()))
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")

	if m.screen != screenHome && m.screen != screenMenu {
		b.WriteString(RenderHelp("esc: menu • ctrl+c: quit"))
		b.WriteString("\n")
	}
	return b.String()
}

// prompt returns the input prompt of the current screen.
func (m Model) prompt() string {
	switch m.screen {
	case screenList:
		return promptViewSet
	case screenViewPick:
		return promptSetKey
	case screenDetail:
		return promptDetail
	case screenAdd:
		if n := len(m.answers); n < len(addPrompts) {
			return addPrompts[n]
		}
	case screenQuickAdd:
		return promptQuickAdd
	case screenEditPick:
		return promptEditKey
	case screenDeletePick:
		return promptDelKey
	case screenEditConfirm, screenDeleteConfirm:
		return promptContinue
	case screenEditFields:
		if n := len(m.answers); n < len(editFields) {
			return fmt.Sprintf("Enter new %s for LEGO set #%s (or press 'Enter' to skip): ", editFields[n], m.key)
		}
	case screenFilterValue:
		if m.choice == "1" {
			return promptMinAge
		}
		return promptMinPiece
	case screenSearchValue:
		if m.choice == "1" {
			return promptNumber
		}
		return promptName
	case screenResult:
		return promptResult
	}
	return promptChoice
}

func (m Model) body() string {
	switch m.screen {
	case screenHome:
		return BannerStyle.Render(banner) + "\n\n" + strings.Join(homeLines, "\n")
	case screenMenu:
		return menu(menuLines)
	case screenList, screenViewPick, screenEditPick, screenDeletePick:
		return m.listBody()
	case screenDetail:
		return m.detailBody()
	case screenAdd:
		return headerAdd + "\n\n" + m.answered(addPrompts)
	case screenQuickAdd:
		return headerQuickAdd + "\n\nExample: Millennium Falcon, 849.99, 16+, 7541, 75192, The most famous starship"
	case screenEditConfirm:
		return confirmEdit + "\n\n" + WarningStyle.Render(warnEdit)
	case screenDeleteConfirm:
		return confirmDelete + "\n\n" + WarningStyle.Render(warnDelete)
	case screenEditFields:
		return fmt.Sprintf("[Edit LEGO set #%s]", m.key)
	case screenSort:
		return menu(sortLines)
	case screenFilter, screenFilterValue:
		return menu(filterLines)
	case screenSearch, screenSearchValue:
		return menu(searchLines)
	case screenTotals:
		return menu(totalsLines)
	case screenResult:
		return m.resultBody()
	}
	return ""
}

func menu(lines []string) string {
	var b strings.Builder
	b.WriteString(lines[0])
	for _, l := range lines[1:] {
		b.WriteString("\n")
		b.WriteString(MenuItemStyle.Render(l))
	}
	return b.String()
}

// answered lists the prompts already answered on a multi-step form.
func (m Model) answered(prompts []string) string {
	var lines []string
	for i, a := range m.answers {
		if i < len(prompts) {
			lines = append(lines, LabelStyle.Render(prompts[i])+a)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) listBody() string {
	return headerList + "\n\n" + setLines(m.sets)
}

func setLines(coll wishlist.Collection) string {
	lines := make([]string, 0, len(coll))
	for _, e := range coll {
		lines = append(lines, KeyStyle.Render("["+e.Key+"]")+" --- "+e.Record.Name)
	}
	return strings.Join(lines, "\n")
}

// money shows a parsable price with two decimals and anything else as typed.
func money(price string) string {
	d, err := wishlist.ParsePrice(price)
	if err != nil {
		return "$" + price
	}
	return "$" + d.StringFixed(2)
}

func (m Model) detailBody() string {
	rec := m.record
	rows := [][2]string{
		{"LEGO Set Name:", rec.Name},
		{"Price:", money(rec.Price)},
		{"Age Group:", rec.AgeGroup},
		{"Pieces:", rec.Pieces},
		{"LEGO Set Number:", m.key},
		{"Description:", rec.Description},
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = LabelStyle.Render(r[0]) + " " + ValueStyle.Render(r[1])
	}
	return BoxStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) resultBody() string {
	r := m.result
	if r.text != "" {
		return r.title + "\n\n" + r.text
	}
	if len(r.sets) == 0 {
		return r.title + "\n\n" + SubtitleStyle.Render("No LEGO sets match.")
	}
	lines := make([]string, 0, len(r.sets))
	for _, e := range r.sets {
		lines = append(lines, fmt.Sprintf("%s --- %s  %s, %s, %s pieces",
			KeyStyle.Render("["+e.Key+"]"), e.Record.Name, money(e.Record.Price), e.Record.AgeGroup, e.Record.Pieces))
	}
	return r.title + "\n\n" + strings.Join(lines, "\n")
}
