package main

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hostkit/collection-bridge/collections"
	"github.com/hostkit/collection-bridge/registry"
	"github.com/hostkit/collection-bridge/value"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const inspectorHelp = `commands:
  map new                 create a hash map
  vec new                 create a vector
  set <h> <key> <val>     map set / vector set by index
  get <h> <key>           map get / vector get by index
  remove <h> <key>        map remove
  push <h> <val>          vector push
  view <h> <start> <end>  slice view over a vector
  len <h>                 element count
  drop <h>                destroy a container
  ls                      list live handles
  snap <h>                snapshot a container (base64 CBOR)
  quit                    exit

values: null, true, false, numbers, #N handles, anything else is a string`

type inspectorModel struct {
	store *collections.Store
	input textinput.Model
	lines []string
}

func newInspectorModel() *inspectorModel {
	ti := textinput.New()
	ti.Placeholder = "map new"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 64

	return &inspectorModel{
		store: collections.NewWithDefaults(),
		input: ti,
		lines: []string{helpStyle.Render("type 'help' for commands")},
	}
}

func (m *inspectorModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *inspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			if line == "quit" || line == "exit" {
				return m, tea.Quit
			}
			m.lines = append(m.lines, promptStyle.Render("> "+line))
			out, err := m.eval(line)
			if err != nil {
				m.lines = append(m.lines, errorStyle.Render(err.Error()))
			} else if out != "" {
				m.lines = append(m.lines, resultStyle.Render(out))
			}
			if len(m.lines) > 24 {
				m.lines = m.lines[len(m.lines)-24:]
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *inspectorModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("collbridge inspector"))
	b.WriteString("\n\n")
	for _, line := range m.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render("esc/ctrl+c to quit"))
	return b.String()
}

func (m *inspectorModel) eval(line string) (string, error) {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "help":
		return inspectorHelp, nil

	case "map":
		if len(args) == 1 && args[0] == "new" {
			return fmt.Sprintf("#%d", m.store.NewHashMap()), nil
		}

	case "vec":
		if len(args) == 1 && args[0] == "new" {
			return fmt.Sprintf("#%d", m.store.NewVector()), nil
		}

	case "set":
		if len(args) != 3 {
			return "", fmt.Errorf("usage: set <h> <key> <val>")
		}
		h, err := parseHandle(args[0])
		if err != nil {
			return "", err
		}
		val := parseValue(args[2])
		kind, ok := m.store.Table().KindID(h)
		if !ok {
			return "", fmt.Errorf("#%d is dead", h)
		}
		switch kind {
		case collections.KindHashMap:
			m.store.HashMapSet(h, parseValue(args[1]), val)
			return "ok", nil
		case collections.KindVector:
			i, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return "", fmt.Errorf("vector index: %w", err)
			}
			if !m.store.VectorSet(h, i, val) {
				return "absent", nil
			}
			return "ok", nil
		}
		return "", fmt.Errorf("#%d is not settable", h)

	case "get":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: get <h> <key>")
		}
		h, err := parseHandle(args[0])
		if err != nil {
			return "", err
		}
		kind, ok := m.store.Table().KindID(h)
		if !ok {
			return "", fmt.Errorf("#%d is dead", h)
		}
		var v value.Value
		var found bool
		switch kind {
		case collections.KindHashMap:
			v, found = m.store.HashMapGet(h, parseValue(args[1]))
		case collections.KindVector, collections.KindSlice:
			i, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return "", fmt.Errorf("index: %w", err)
			}
			if kind == collections.KindVector {
				v, found = m.store.VectorGet(h, i)
			} else {
				v, found = m.store.SliceGet(h, i)
			}
		}
		if !found {
			return "absent", nil
		}
		return v.String(), nil

	case "remove":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: remove <h> <key>")
		}
		h, err := parseHandle(args[0])
		if err != nil {
			return "", err
		}
		v, found := m.store.HashMapRemove(h, parseValue(args[1]))
		if !found {
			return "absent", nil
		}
		return v.String(), nil

	case "push":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: push <h> <val>")
		}
		h, err := parseHandle(args[0])
		if err != nil {
			return "", err
		}
		if !m.store.VectorPush(h, parseValue(args[1])) {
			return "", fmt.Errorf("#%d is not a live vector", h)
		}
		return "ok", nil

	case "view":
		if len(args) != 3 {
			return "", fmt.Errorf("usage: view <h> <start> <end>")
		}
		h, err := parseHandle(args[0])
		if err != nil {
			return "", err
		}
		start, err1 := strconv.ParseInt(args[1], 10, 64)
		end, err2 := strconv.ParseInt(args[2], 10, 64)
		if err1 != nil || err2 != nil {
			return "", fmt.Errorf("view bounds must be integers")
		}
		sl := m.store.NewSlice(h, start, end)
		if sl == 0 {
			return "", fmt.Errorf("#%d is not a live vector", h)
		}
		return fmt.Sprintf("#%d (len %d)", sl, m.store.SliceLen(sl)), nil

	case "len":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: len <h>")
		}
		h, err := parseHandle(args[0])
		if err != nil {
			return "", err
		}
		return strconv.Itoa(m.store.Len(h)), nil

	case "drop":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: drop <h>")
		}
		h, err := parseHandle(args[0])
		if err != nil {
			return "", err
		}
		if !m.store.Destroy(h) {
			return "", fmt.Errorf("#%d is already dead", h)
		}
		return "dropped", nil

	case "ls":
		var out []string
		m.store.Table().Each(func(h registry.Handle, kindID uint32, _ any) bool {
			out = append(out, fmt.Sprintf("#%d %s (len %d)", h, kindName(kindID), m.store.Len(h)))
			return true
		})
		if len(out) == 0 {
			return "no live handles", nil
		}
		return strings.Join(out, "\n"), nil

	case "snap":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: snap <h>")
		}
		h, err := parseHandle(args[0])
		if err != nil {
			return "", err
		}
		data, err := m.store.Snapshot(h)
		if err != nil {
			return "", err
		}
		return base64.StdEncoding.EncodeToString(data), nil
	}

	return "", fmt.Errorf("unknown command %q (try 'help')", line)
}

func kindName(kindID uint32) string {
	switch kindID {
	case collections.KindHashMap:
		return "map"
	case collections.KindVector:
		return "vec"
	case collections.KindSlice:
		return "slice"
	}
	return "?"
}

func parseHandle(s string) (registry.Handle, error) {
	s = strings.TrimPrefix(s, "#")
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("handle: %w", err)
	}
	return registry.Handle(n), nil
}

func parseValue(s string) value.Value {
	switch s {
	case "null":
		return value.Null()
	case "true":
		return value.Bool(true)
	case "false":
		return value.Bool(false)
	}
	if strings.HasPrefix(s, "#") {
		if n, err := strconv.ParseUint(s[1:], 10, 64); err == nil {
			return value.HandleRef(registry.Handle(n))
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return value.Number(f)
	}
	return value.String(strings.Trim(s, `"`))
}

func runInteractive() error {
	p := tea.NewProgram(newInspectorModel())
	_, err := p.Run()
	return err
}
