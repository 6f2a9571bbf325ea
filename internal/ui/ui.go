package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskpad/internal/config"
	"taskpad/internal/list"
	"taskpad/internal/store"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmDelete
	confirmClear
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	faintStyle    = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	pillOnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	pillOffStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type Model struct {
	store  *store.Store
	cfg    config.Config
	tasks  []list.Task
	filter list.Filter
	cursor int
	mode   mode
	input  textinput.Model
	status string

	editID   string
	editOrig string

	confirm    confirmKind
	pendingDel *list.Task
}

func Run(st *store.Store, cfg config.Config) error {
	tasks := store.Load(st, store.SlotTasks, []list.Task(nil))
	m := newModel(st, cfg, tasks)
	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

func newModel(st *store.Store, cfg config.Config, tasks []list.Task) Model {
	ti := textinput.New()
	ti.Placeholder = "Task text"
	ti.CharLimit = 256
	ti.Width = 40

	return Model{
		store:  st,
		cfg:    cfg,
		tasks:  tasks,
		filter: list.ParseFilter(cfg.DefaultFilter),
		cursor: 0,
		mode:   modeList,
		input:  ti,
		status: "Press 'a' to add, space to toggle, 'd' to delete.",
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirm != confirmNone {
			return m.updateConfirm(msg.String())
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		w := msg.Width - 10
		if w < 10 {
			w = 10
		}
		m.input.Width = w
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch m.mode {
	case modeAdd:
		return m.updateAddMode(key, msg)
	case modeEdit:
		return m.updateEditMode(key, msg)
	default:
		return m.updateListMode(key)
	}
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		vis := m.visible()
		if len(vis) == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, len(vis))
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.visible()))
		}
	case m.cfg.Keys.Add:
		m.mode = modeAdd
		m.input.SetValue("")
		m.input.Placeholder = "Task text"
		m.input.Focus()
		m.status = "Add mode: type the task and press Enter"
	case m.cfg.Keys.Toggle:
		vis := m.visible()
		if len(vis) == 0 {
			return m, nil
		}
		t := vis[m.cursor]
		m.tasks = list.Toggle(m.tasks, t.ID)
		m.save()
		m.cursor = clampCursor(m.cursor, len(m.visible()))
		m.status = "Toggled task"
	case m.cfg.Keys.Edit:
		vis := m.visible()
		if len(vis) == 0 {
			m.status = "No tasks to edit"
			return m, nil
		}
		t := vis[m.cursor]
		m.mode = modeEdit
		m.editID = t.ID
		m.editOrig = t.Text
		m.input.SetValue(t.Text)
		m.input.Placeholder = "Task text"
		m.input.Focus()
		m.status = "Edit mode: Enter to save, Esc to cancel"
	case m.cfg.Keys.Delete:
		vis := m.visible()
		if len(vis) == 0 {
			return m, nil
		}
		t := vis[m.cursor]
		m.confirm = confirmDelete
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete %q? y/n", t.Text)
	case m.cfg.Keys.ClearDone:
		done := len(m.tasks) - list.Remaining(m.tasks)
		if done == 0 {
			m.status = "No completed tasks to clear"
			return m, nil
		}
		m.confirm = confirmClear
		m.status = fmt.Sprintf("Clear %d completed? y/n", done)
	case m.cfg.Keys.Filter:
		m.filter = m.filter.Next()
		m.cursor = 0
		m.status = "Filter: " + m.filter.String()
	}
	return m, nil
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			m.status = "Task text cannot be empty"
			return m, nil
		}
		m.tasks = list.Add(m.tasks, text)
		m.save()
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeList
		m.cursor = 0 // new tasks are prepended
		m.status = "Added task"
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateEditMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.mode = modeList
		m.editID = ""
		m.editOrig = ""
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Edit cancelled"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			m.status = "Task text cannot be empty"
			return m, nil
		}
		if text != m.editOrig {
			m.tasks = list.Edit(m.tasks, m.editID, text)
			m.save()
			m.status = "Updated task"
		} else {
			m.status = "No changes"
		}
		m.mode = modeList
		m.editID = ""
		m.editOrig = ""
		m.input.SetValue("")
		m.input.Blur()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel, "esc":
		m.confirm = confirmNone
		m.pendingDel = nil
		m.status = "Cancelled"
		return m, nil
	case "y", "Y":
		switch m.confirm {
		case confirmDelete:
			if m.pendingDel != nil {
				m.tasks = list.Delete(m.tasks, m.pendingDel.ID)
				m.save()
				m.status = "Deleted task"
			}
		case confirmClear:
			cleared := len(m.tasks) - list.Remaining(m.tasks)
			m.tasks = list.ClearCompleted(m.tasks)
			m.save()
			m.status = fmt.Sprintf("Cleared %d completed", cleared)
		}
		m.confirm = confirmNone
		m.pendingDel = nil
		m.cursor = clampCursor(m.cursor, len(m.visible()))
		return m, nil
	default:
		return m, nil
	}
}

// save mirrors the in-memory list to the store slot. Best-effort: a failed
// write leaves the session fully functional.
func (m Model) save() {
	store.Save(m.store, store.SlotTasks, m.tasks)
}

func (m Model) visible() []list.Task {
	return list.Visible(m.tasks, m.filter)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("taskpad"))
	b.WriteString("  ")
	b.WriteString(m.renderFilterPills())
	b.WriteString("\n\n")

	vis := m.visible()
	if len(vis) == 0 {
		switch {
		case len(m.tasks) == 0:
			b.WriteString(faintStyle.Render("No tasks yet. Press 'a' to add one."))
		default:
			b.WriteString(faintStyle.Render("No tasks match the current filter."))
		}
		b.WriteString("\n")
	} else {
		for i, t := range vis {
			cursor := " "
			if m.cursor == i && m.mode == modeList {
				cursor = ">"
			}

			checkbox := "[ ]"
			if t.Completed {
				checkbox = "[x]"
			}

			line := fmt.Sprintf("%s %s %s", cursor, checkbox, t.Text)
			switch {
			case m.cursor == i && m.mode == modeList:
				line = selectedStyle.Render(line)
			case t.Completed:
				line = faintStyle.Render(line)
			}

			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	switch m.mode {
	case modeAdd:
		b.WriteString("Add task: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modeEdit:
		b.WriteString("Edit task: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(itemsLeft(list.Remaining(m.tasks)))
	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(faintStyle.Render(renderHelp(m.cfg.Keys)))

	return b.String()
}

func (m Model) renderFilterPills() string {
	pills := make([]string, 0, 3)
	for _, f := range []list.Filter{list.FilterAll, list.FilterActive, list.FilterCompleted} {
		label := f.String()
		if f == m.filter {
			pills = append(pills, pillOnStyle.Render("["+label+"]"))
		} else {
			pills = append(pills, pillOffStyle.Render(" "+label+" "))
		}
	}
	return strings.Join(pills, " ")
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s toggle • %s edit • %s delete • %s clear done • %s filter • %s quit",
		k.Up, k.Down, k.Add, keyLabel(k.Toggle), k.Edit, k.Delete, k.ClearDone, k.Filter, k.Quit)
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func itemsLeft(n int) string {
	if n == 1 {
		return "1 item left"
	}
	return fmt.Sprintf("%d items left", n)
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
