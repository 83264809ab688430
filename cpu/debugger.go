package cpu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"ddp24/word"
)

// model is the bubbletea Elm-architecture model backing the interactive TUI
// debugger: a word-addressed memory window and register file view centered
// on PC.
type model struct {
	cpu *Cpu

	offset word.Word // start address of the memory window to render
	prevPC word.Word
	err    error
}

const wordsPerRow = 8

// Init performs no initial command; the Cpu that Debug is called on is
// assumed to already be loaded and positioned.
func (m model) Init() tea.Cmd { return nil }

// Update advances the Cpu by one Step on space or "j", and quits on "q" or
// after a fatal decode fault.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit

		case " ", "j":
			m.prevPC = m.cpu.PC
			if _, err := m.cpu.Step(); err != nil {
				m.err = err
				return m, tea.Quit
			}
			if m.cpu.Halted {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// renderRow renders one row of wordsPerRow words starting at start. The
// current PC is highlighted.
func (m model) renderRow(start word.Word) string {
	s := fmt.Sprintf("%05o | ", start)
	for i := word.Word(0); i < wordsPerRow; i++ {
		addr := start + i
		w := m.cpu.Read(addr)
		if addr == m.cpu.PC {
			s += fmt.Sprintf("[%06o] ", w)
		} else {
			s += fmt.Sprintf(" %06o  ", w)
		}
	}
	return s
}

func (m model) status() string {
	flags := fmt.Sprintf("OVF:%v HLT:%v INT:%v", m.cpu.Overflow, m.cpu.Halted, m.cpu.InterruptEnabled)
	return fmt.Sprintf(`
PC: %05o (%05o)
 A: %08o
 B: %08o
X1: %08o X2: %08o X3: %08o
%s
cycles: %d
`,
		m.cpu.PC, m.prevPC,
		m.cpu.A,
		m.cpu.B,
		m.cpu.X[1], m.cpu.X[2], m.cpu.X[3],
		flags,
		m.cpu.Cycles,
	)
}

func (m model) memoryWindow() string {
	var header strings.Builder
	header.WriteString("addr  | ")
	for i := 0; i < wordsPerRow; i++ {
		fmt.Fprintf(&header, " +%o    ", i)
	}
	rows := []string{header.String()}

	base := (m.cpu.PC / wordsPerRow) * wordsPerRow
	for r := -2; r <= 2; r++ {
		start := base + word.Word(r*wordsPerRow)
		rows = append(rows, m.renderRow(start&word.AddrMask))
	}
	return strings.Join(rows, "\n")
}

// View renders the memory window alongside register/flag status, followed by
// a structured dump of the instruction at PC.
func (m model) View() string {
	instr := m.cpu.Read(m.cpu.PC)
	d := decode(instr)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.memoryWindow(),
			m.status(),
		),
		"",
		spew.Sdump(struct {
			Opcode   string
			Indirect bool
			Index    byte
			Addr     word.Word
		}{OpcodeName(d.opcode), d.indirect, d.index, d.addr}),
	)
}

// Debug starts the interactive bubbletea TUI against an already-loaded Cpu.
func (c *Cpu) Debug() error {
	final, err := tea.NewProgram(model{cpu: c}).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(model); ok && m.err != nil {
		return m.err
	}
	return nil
}
