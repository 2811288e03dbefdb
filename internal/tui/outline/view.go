package outline

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jfarrand/syllabus/pkg/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sectionStyle = lipgloss.NewStyle().Bold(true)
	itemStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	typeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	grabbedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(0, 1)
)

var typeCaser = cases.Title(language.English)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	header := titleStyle.Render("syllabus · " + m.course.ID)
	switch {
	case m.loading:
		header += pendingStyle.Render("  " + m.spin.View() + " loading")
	case m.pending:
		header += pendingStyle.Render("  " + m.spin.View() + " saving order")
	}
	b.WriteString(header + "\n\n")

	if len(m.rows) == 0 && !m.loading {
		b.WriteString(itemStyle.Render("  (empty outline)") + "\n")
	}

	for i, r := range m.rows {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		line := m.renderRow(r)
		if m.drag != nil && r.id == m.drag.fromID && r.isSection == m.drag.isSection {
			line = grabbedStyle.Render("◆ " + line)
		}
		b.WriteString(cursor + line + "\n")
	}

	if m.banner != nil {
		msg := fmt.Sprintf("%s: %s", m.banner.Code, m.banner.Message)
		hint := typeStyle.Render("r retry · x dismiss")
		b.WriteString("\n" + errorStyle.Render(msg+"\n"+hint) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m Model) renderRow(r row) string {
	if r.isSection {
		marker := "▾"
		if m.folded[r.id] {
			marker = "▸"
		}
		return sectionStyle.Render(fmt.Sprintf("%s %s", marker, r.title))
	}
	label := typeLabel(r.itemType)
	return fmt.Sprintf("    %s %s", itemStyle.Render(r.title), typeStyle.Render("["+label+"]"))
}

func typeLabel(t models.ItemType) string {
	return typeCaser.String(string(t))
}
