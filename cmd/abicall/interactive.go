package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/abi-codec/abi"
	"github.com/wippyai/abi-codec/pipeline"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	doc      *abi.Document
	filename string
	result   string
	funcs    []*abi.Function
	inputs   []textinput.Model
	selected int
	focusIdx int
	state    modelState
}

type modelState int

const (
	stateSelectFunc modelState = iota
	stateInputArgs
	stateShowPayload
)

func newInteractiveModel(filename string, doc *abi.Document) *interactiveModel {
	return &interactiveModel{
		filename: filename,
		doc:      doc,
		funcs:    doc.Functions(),
		state:    stateSelectFunc,
	}
}

type assembledMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state == stateSelectFunc || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectFunc && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectFunc && m.selected < len(m.funcs)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectFunc:
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.assemble
				}
				m.state = stateInputArgs

			case stateInputArgs:
				return m, m.assemble

			case stateShowPayload:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectFunc
				m.inputs = nil
			case stateShowPayload:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}
		}

	case assembledMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowPayload
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) prepareInputs() {
	fn := m.funcs[m.selected]
	m.inputs = make([]textinput.Model, len(fn.Params))
	for i, p := range fn.Params {
		ti := textinput.New()
		ti.Placeholder = p.Type.Signature()
		ti.Prompt = p.Name + ": "
		ti.Width = 48
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *interactiveModel) assemble() tea.Msg {
	fn := m.funcs[m.selected]

	literals := make([]string, len(m.inputs))
	for i, input := range m.inputs {
		literals[i] = input.Value()
	}

	call, err := pipeline.NewArgumentPipeline(fn).Assemble(literals)
	if err != nil {
		return assembledMsg{err: err}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Selector:  0x%s\n", hex.EncodeToString(call.Selector[:]))
	fmt.Fprintf(&b, "Payload:   0x%s\n", hex.EncodeToString(call.Payload))
	fmt.Fprintf(&b, "Size:      %d bytes", len(call.Payload))
	return assembledMsg{result: b.String()}
}

func (m *interactiveModel) View() string {
	if len(m.funcs) == 0 {
		return errorStyle.Render("ABI declares no functions.\n\nPress q to quit.")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("abicall"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectFunc:
		b.WriteString("Select a function:\n\n")
		for i, fn := range m.funcs {
			cursor := "  "
			if i == m.selected {
				cursor = "> "
				b.WriteString(selectedStyle.Render(cursor + m.formatFunc(fn)))
			} else {
				b.WriteString(cursor + m.formatFunc(fn))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter choose • q quit"))

	case stateInputArgs:
		fn := m.funcs[m.selected]
		b.WriteString(fmt.Sprintf("Arguments for %s\n\n", funcStyle.Render(fn.Name)))
		for i, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(typeStyle.Render(fn.Params[i].Type.Signature()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter assemble • esc back"))

	case stateShowPayload:
		fn := m.funcs[m.selected]
		b.WriteString(fmt.Sprintf("Payload for %s:\n\n", funcStyle.Render(fn.Name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatFunc(fn *abi.Function) string {
	var params []string
	for _, p := range fn.Params {
		params = append(params, p.Name+": "+typeStyle.Render(p.Type.Signature()))
	}
	result := " -> " + typeStyle.Render(fn.Output.Signature())
	return funcStyle.Render(fn.Name) + "(" + strings.Join(params, ", ") + ")" + result
}

func runInteractive(filename string, doc *abi.Document) error {
	p := tea.NewProgram(newInteractiveModel(filename, doc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
