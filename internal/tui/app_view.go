package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"artes-cli/internal/model"
)

func (m appModel) View() string {
	if m.modal != modalNone {
		return m.placeCentered(m.viewModal())
	}
	switch m.view {
	case viewLogin:
		return m.viewLogin()
	default:
		return m.viewActivities()
	}
}

func (m appModel) viewLogin() string {
	header := lipgloss.NewStyle().Bold(true).Render("Gestión de las Artes")

	var sections []string
	sections = append(sections, header, "")

	switch m.invite.stage {
	case inviteCaptured:
		sections = append(sections, styleMuted().Render("Verificando invitación…"), "")
	case invitePrompting:
		p := m.invite.preview
		box := fmt.Sprintf("Invitación a la actividad #%d para %s", p.ActivityID, p.InvitedEmail)
		if p.ExpiresAt != nil {
			box += styleMuted().Render("  (expira " + p.ExpiresAt.Format("2006-01-02") + ")")
		}
		sections = append(sections,
			lipgloss.NewStyle().Foreground(colorAccent).Render(box),
			styleMuted().Render("Elige usuario y contraseña para aceptarla."),
			"")
	case inviteExchanging:
		sections = append(sections, styleMuted().Render("Aceptando invitación…"), "")
	case inviteFailed:
		sections = append(sections,
			lipgloss.NewStyle().Foreground(colorError).Render(m.invite.errText),
			"")
	}

	sections = append(sections,
		"Usuario:     "+m.userInput.View(),
		"Contraseña:  "+m.passInput.View(),
		"")

	if m.loginBusy {
		sections = append(sections, styleMuted().Render("Entrando…"))
	}
	if m.statusText != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(colorError).Render(m.statusText))
	}
	loginHelp := "enter: entrar   ctrl+r: registrarse   tab: cambiar campo   esc: salir"
	if m.invite.active() {
		loginHelp = "enter: aceptar invitación   tab: cambiar campo   esc: cancelar"
	}
	sections = append(sections, "", styleMuted().Render(loginHelp))

	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(sections, "\n"))
}

func (m appModel) viewActivities() string {
	header := m.viewHeader()
	filterLine := m.viewFilterLine()
	body := m.viewBody()
	footer := m.viewFooter()

	parts := []string{header, filterLine, body, footer}
	return strings.Join(parts, "\n")
}

func (m appModel) viewHeader() string {
	who := m.sess.Username
	if m.me != nil {
		who = m.me.DisplayName()
		if m.me.IsAdmin() {
			who += styleMuted().Render(" · admin")
		}
	}
	left := lipgloss.NewStyle().Bold(true).Render("Gestión de las Artes") + "  " + who

	if m.dash == nil {
		return left
	}
	d := m.dash
	summary := fmt.Sprintf("Semana: %d en curso · %d completadas · %d canceladas (%d total)",
		d.InProgress, d.Done, d.Cancelled, d.Total)
	var pcts []string
	for _, st := range model.AllStatuses() {
		if v, ok := d.Percentages[string(st)]; ok {
			pcts = append(pcts, fmt.Sprintf("%s %.0f%%", st, v))
		}
	}
	if len(pcts) > 0 {
		summary += "  " + strings.Join(pcts, " · ")
	}
	return left + "\n" + styleMuted().Render(summary)
}

func (m appModel) viewFilterLine() string {
	filter := "todas"
	if m.list.filter != "" {
		filter = string(m.list.filter)
	}
	line := fmt.Sprintf("filtro: %s   página %d/%d   %d actividades",
		filter, m.list.page, m.list.totalPages, m.list.total)
	if m.list.loading {
		line += "   cargando…"
	}
	return styleMuted().Render(line)
}

func (m appModel) viewBody() string {
	bodyHeight := m.height - 8
	if bodyHeight < 6 {
		bodyHeight = 6
	}

	if m.nested.expanded == 0 {
		if len(m.list.items) == 0 && !m.list.loading {
			return lipgloss.NewStyle().Height(bodyHeight).Render(
				styleMuted().Render("No hay actividades. Pulsa 'c' para crear una."))
		}
		return normalizePane(m.activitiesList.View(), m.width, bodyHeight)
	}

	leftW := m.width / 2
	if leftW < 40 {
		leftW = 40
	}
	rightW := m.width - leftW - 2
	if rightW < 30 {
		rightW = 30
	}

	left := normalizePane(m.activitiesList.View(), leftW, bodyHeight)
	right := normalizePane(m.viewExpandedPanel(rightW), rightW, bodyHeight)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// viewExpandedPanel renders the detail pane for the expanded activity:
// description, subtasks, files and invitations.
func (m appModel) viewExpandedPanel(width int) string {
	id := m.nested.expanded
	var act *model.Activity
	for i := range m.list.items {
		if m.list.items[i].ID == id {
			act = &m.list.items[i]
			break
		}
	}

	var b strings.Builder
	if act != nil {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(act.Title) + "\n")
		b.WriteString(statusStyle(act.Status).Render(string(act.Status)))
		if act.DueDate != nil {
			t := act.DueDate.Time
			d := model.ClassifyDeadline(m.now(), &t)
			b.WriteString("  " + deadlineStyle(d.Kind).Render(d.Label()))
		}
		b.WriteString("\n")
		if s := strings.TrimSpace(act.AssignedTo); s != "" {
			b.WriteString(styleMuted().Render("asignada a "+s) + "\n")
		}
		if desc := strings.TrimSpace(act.Description); desc != "" {
			b.WriteString("\n" + renderMarkdown(desc, width-2) + "\n")
		}
	}

	if !m.nested.loaded(id) {
		b.WriteString("\n" + styleMuted().Render("cargando…"))
		return b.String()
	}

	subs := m.nested.subtasks[id]
	b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Subtareas (%d)", len(subs))) + "\n")
	if len(subs) == 0 {
		b.WriteString(styleMuted().Render("  ninguna") + "\n")
	}
	for i, st := range subs {
		cursor := "  "
		if i == m.subtaskIdx {
			cursor = "> "
		}
		check := "[ ]"
		if st.Status == model.StatusDone {
			check = "[x]"
		}
		b.WriteString(cursor + check + " " + st.Title + "\n")
	}

	files := m.nested.files[id]
	b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Archivos (%d)", len(files))) + "\n")
	if len(files) == 0 {
		b.WriteString(styleMuted().Render("  ninguno") + "\n")
	}
	for _, f := range files {
		b.WriteString(fmt.Sprintf("  %s %s\n", f.Filename, styleMuted().Render(formatFileSize(f.FileSize))))
	}

	invs := m.nested.invitations[id]
	b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Invitaciones (%d)", len(invs))) + "\n")
	if len(invs) == 0 {
		b.WriteString(styleMuted().Render("  ninguna") + "\n")
	}
	for _, inv := range invs {
		state := styleMuted().Render("pendiente")
		if inv.Accepted() {
			state = lipgloss.NewStyle().Foreground(colorSuccess).Render("aceptada por " + inv.AcceptedBy)
		}
		b.WriteString("  " + inv.InvitedEmail + " " + state + "\n")
	}

	return b.String()
}

func (m appModel) viewFooter() string {
	help := "enter: expandir  f: filtro  ←/→: página  c: crear  s: estado  a: asignar  d: borrar  v: historial  t: subtarea  x: marcar  o: descargar  i: invitar  w: webhooks  r: recargar  L: salir sesión  q: salir"
	if m.me != nil && m.me.IsAdmin() {
		help += "  A: usuarios"
	}
	lines := []string{styleMuted().Render(help)}
	if m.statusText != "" {
		lines = append([]string{lipgloss.NewStyle().Foreground(colorError).Render(m.statusText)}, lines...)
	}
	return strings.Join(lines, "\n")
}

func (m appModel) viewModal() string {
	switch m.modal {
	case modalConfirmDelete:
		body := fmt.Sprintf("¿Eliminar la actividad #%d?\nEsta acción no se puede deshacer.", m.modalForID)
		return renderConfirmModal(m.width, "Eliminar actividad", body, "Eliminar", "Cancelar", m.confirmFocus)

	case modalAssign:
		return renderModalBox(m.width, "Asignar a",
			m.assignList.View()+"\n\n"+styleMuted().Render("enter: asignar   esc: cancelar"))

	case modalAdmin:
		return renderModalBox(m.width, "Usuarios",
			m.assignList.View()+"\n\n"+styleMuted().Render("enter: alternar rol   d: eliminar usuario   esc: cerrar"))

	case modalCreate:
		content := strings.Join([]string{
			"Título:       " + m.titleInput.View(),
			"",
			m.descInput.View(),
			"",
			"Vencimiento:  " + m.dueInput.View(),
			"",
			styleMuted().Render("tab: campo   ctrl+s/enter: crear   esc: cancelar"),
		}, "\n")
		return renderModalBox(m.width, "Nueva actividad", content)

	case modalSubtask:
		return renderModalBox(m.width, "Nueva subtarea",
			m.subtaskInput.View()+"\n\n"+styleMuted().Render("enter: crear   esc: cancelar"))

	case modalInvite:
		return renderModalBox(m.width, "Invitar por correo",
			m.inviteInput.View()+"\n\n"+styleMuted().Render("enter: invitar   esc: cancelar"))

	case modalHistory:
		var b strings.Builder
		if len(m.historyRecords) == 0 {
			b.WriteString(styleMuted().Render("sin cambios registrados"))
		}
		for _, r := range m.historyRecords {
			b.WriteString(fmt.Sprintf("%s  %s: %s → %s  %s\n",
				r.Timestamp.Format("2006-01-02 15:04"),
				r.ChangedField, r.OldValue, r.NewValue,
				styleMuted().Render("por "+r.ChangedBy)))
		}
		return renderModalBox(m.width, "Historial", strings.TrimRight(b.String(), "\n"))

	case modalWebhooks:
		var b strings.Builder
		if len(m.webhooks) == 0 {
			b.WriteString(styleMuted().Render("sin webhooks"))
		}
		for _, h := range m.webhooks {
			b.WriteString(fmt.Sprintf("#%d  %s  %s\n", h.ID, h.URL, styleMuted().Render(h.Event)))
		}
		return renderModalBox(m.width, "Webhooks", strings.TrimRight(b.String(), "\n"))
	}
	return ""
}

func formatFileSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
