package ncctl

import (
	"fmt"
	"strings"

	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
)

var (
	colorBorder = lipgloss.Color("#575653")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGreen  = lipgloss.Color("#879A39")
	colorOrange = lipgloss.Color("#DA702C")
	colorRed    = lipgloss.Color("#D14D41")
	colorMuted  = lipgloss.Color("#6F6E69")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
)

func statusStyle(s domain.NoteStatus) lipgloss.Style {
	switch s {
	case domain.StatusActive:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case domain.StatusExpired:
		return lipgloss.NewStyle().Foreground(colorOrange)
	case domain.StatusCancelled:
		return lipgloss.NewStyle().Foreground(colorRed)
	}
	return mutedStyle
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func money(d decimal.Decimal) string {
	return d.StringFixed(domain.MoneyPlaces)
}

// RenderBalances renders one line per allocation.
func RenderBalances(rows []domain.BalanceRow) string {
	if len(rows) == 0 {
		return mutedStyle.Render("No allocations match the filter.")
	}
	t := newTable("Note", "Section", "Program", "Allocated", "Committed", "Returned", "Balance", "Expires", "Status")
	for _, r := range rows {
		t.Row(
			r.NoteNumber,
			r.SectionName,
			r.Program,
			money(r.Value),
			money(r.Committed),
			money(r.Returned),
			money(r.Balance),
			r.NoteExpiresOn.Format(domain.DateLayout),
			statusStyle(r.Status).Render(string(r.Status)),
		)
	}
	return t.Render()
}

// RenderSummary renders totals followed by counts per status.
func RenderSummary(s *domain.DashboardSummary) string {
	t := newTable("Metric", "Value").
		Row("Allocations", fmt.Sprintf("%d", s.AllocationCount)).
		Row("Total allocated", money(s.TotalAllocated)).
		Row("Total used", money(s.TotalUsed)).
		Row("Total balance", money(s.TotalBalance))
	for _, status := range []domain.NoteStatus{domain.StatusActive, domain.StatusDepleted, domain.StatusExpired, domain.StatusCancelled} {
		t.Row(statusStyle(status).Render(string(status)), fmt.Sprintf("%d", s.StatusCounts[status]))
	}
	return t.Render()
}

// RenderSectionBalances renders one line per section with a closing total.
func RenderSectionBalances(sections []domain.SectionBalance) string {
	if len(sections) == 0 {
		return mutedStyle.Render("No allocations match the filter.")
	}
	t := newTable("Section", "Allocations", "Allocated", "Used", "Balance")
	allocated, used, balance := decimal.Zero, decimal.Zero, decimal.Zero
	for _, s := range sections {
		t.Row(s.SectionName, fmt.Sprintf("%d", s.AllocationCount), money(s.Allocated), money(s.Used), money(s.Balance))
		allocated = allocated.Add(s.Allocated)
		used = used.Add(s.Used)
		balance = balance.Add(s.Balance)
	}
	t.Row(titleStyle.Render("Total"), "", money(allocated), money(used), money(balance))
	return t.Render()
}

// RenderStatement renders a note header, its allocations and its debits.
func RenderStatement(st *domain.NoteStatement) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  %s", st.Note.Number, statusStyle(st.Status).Render(string(st.Status)))))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total %s   Balance %s   Received %s   Expires %s\n",
		money(st.Note.TotalValue), money(st.Balance),
		st.Note.ReceivedOn.Format(domain.DateLayout), st.Note.ExpiresOn.Format(domain.DateLayout)))
	if st.Note.Program != "" || st.Note.ExpenseNature != "" {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Program %s   Expense nature %s", st.Note.Program, st.Note.ExpenseNature)))
		b.WriteString("\n")
	}

	alloc := newTable("Section", "Allocated", "Committed", "Returned", "Balance")
	for _, r := range st.Allocations {
		alloc.Row(r.SectionName, money(r.Value), money(r.Committed), money(r.Returned), money(r.Balance))
	}
	b.WriteString(alloc.Render())
	b.WriteString("\n")

	if len(st.Commitments) > 0 {
		b.WriteString(titleStyle.Render("Commitments"))
		b.WriteString("\n")
		ct := newTable("Number", "Date", "Section", "Value", "Description")
		for _, c := range st.Commitments {
			ct.Row(c.Number, c.Date.Format(domain.DateLayout), c.SectionName, money(c.Value), c.Description)
		}
		b.WriteString(ct.Render())
		b.WriteString("\n")
	}

	if len(st.Returns) > 0 {
		b.WriteString(titleStyle.Render("Returns"))
		b.WriteString("\n")
		rt := newTable("Date", "Allocation", "Value", "Description")
		for _, r := range st.Returns {
			rt.Row(r.Date.Format(domain.DateLayout), r.AllocationID, money(r.Value), r.Description)
		}
		b.WriteString(rt.Render())
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderAudit renders the audit trail, newest first.
func RenderAudit(entries []domain.AuditEntry) string {
	if len(entries) == 0 {
		return mutedStyle.Render("No audit entries.")
	}
	t := newTable("When", "Actor", "Action", "Table", "Target", "Detail")
	for _, e := range entries {
		t.Row(e.RecordedAt.Format("2006-01-02 15:04:05"), e.ActorID, string(e.Action), e.TargetTable, e.TargetID, e.Detail)
	}
	return t.Render()
}
