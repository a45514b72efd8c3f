package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/term"

	"github.com/wippyai/evm-inspector/codec"
	"github.com/wippyai/evm-inspector/session"
	"github.com/wippyai/evm-inspector/state"
	"github.com/wippyai/evm-inspector/value"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	ptrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	previewStyle = lipgloss.NewStyle().
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
	err       error
	cfg       runConfig
	snap      *state.Snapshot
	env       *environment
	sess      *session.Session
	info      *codec.ExecInfo
	closeFn   func()
	slots     []slotInfo
	typeInput textinput.Model
	result    string
	resultOf  string
	resultErr bool
	selected  int
	state     modelState
}

// slotInfo is one addressable piece of the snapshot shown in the list.
type slotInfo struct {
	ptr     state.Pointer
	preview string
}

type modelState int

const (
	stateSelectSlot modelState = iota
	stateInputType
	stateShowResult
)

func newInteractiveModel(cfg runConfig) *interactiveModel {
	return &interactiveModel{
		cfg:   cfg,
		state: stateSelectSlot,
	}
}

type loadedMsg struct {
	err     error
	snap    *state.Snapshot
	env     *environment
	sess    *session.Session
	info    *codec.ExecInfo
	closeFn func()
	slots   []slotInfo
}

type decodedMsg struct {
	result  string
	typedAs string
	isErr   bool
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.load
}

func (m *interactiveModel) load() tea.Msg {
	ctx := context.Background()

	snap, err := loadSnapshot(m.cfg.stateFile)
	if err != nil {
		return loadedMsg{err: err}
	}
	env, err := loadContexts(m.cfg.contextsFile)
	if err != nil {
		return loadedMsg{err: err}
	}
	info, err := buildInfo(snap, env, m.cfg.classID, m.cfg.constructor)
	if err != nil {
		return loadedMsg{err: err}
	}
	codes, closeFn, err := buildCodeSource(ctx, m.cfg.rpcURL, m.cfg.block)
	if err != nil {
		return loadedMsg{err: err}
	}

	return loadedMsg{
		snap:    snap,
		env:     env,
		sess:    session.New(snap, codes),
		info:    info,
		closeFn: closeFn,
		slots:   buildSlots(snap),
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state == stateInputType && msg.String() == "q" {
				break // the letter q belongs to the type being typed
			}
			if m.closeFn != nil {
				m.closeFn()
			}
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectSlot && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectSlot && m.selected < len(m.slots)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectSlot:
				if len(m.slots) == 0 {
					break
				}
				m.prepareTypeInput()
				m.state = stateInputType

			case stateInputType:
				return m, m.decode

			case stateShowResult:
				m.state = stateSelectSlot
				m.result = ""
			}

		case "esc":
			switch m.state {
			case stateInputType:
				m.state = stateSelectSlot
			case stateShowResult:
				m.state = stateSelectSlot
				m.result = ""
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.snap = msg.snap
		m.env = msg.env
		m.sess = msg.sess
		m.info = msg.info
		m.closeFn = msg.closeFn
		m.slots = msg.slots

	case decodedMsg:
		m.result = msg.result
		m.resultOf = msg.typedAs
		m.resultErr = msg.isErr
		m.state = stateShowResult
	}

	if m.state == stateInputType {
		var cmd tea.Cmd
		m.typeInput, cmd = m.typeInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) prepareTypeInput() {
	ti := textinput.New()
	ti.Placeholder = "uint256"
	ti.Prompt = "type: "
	ti.Width = 40
	if m.typeInput.Value() != "" {
		ti.SetValue(m.typeInput.Value())
	}
	ti.Focus()
	m.typeInput = ti
}

func (m *interactiveModel) decode() tea.Msg {
	name := m.typeInput.Value()
	if name == "" {
		name = "uint256"
	}
	typ, err := resolveType(name, m.env)
	if err != nil {
		return decodedMsg{result: err.Error(), isErr: true}
	}

	slot := m.slots[m.selected]
	res, err := m.sess.DecodeValue(context.Background(), typ, slot.ptr, m.info,
		codec.Options{StrictABI: m.cfg.strict, PermissivePadding: m.cfg.permissive})
	if err != nil {
		return decodedMsg{result: err.Error(), isErr: true}
	}
	return decodedMsg{
		result:  res.String(),
		typedAs: typ.String(),
		isErr:   value.IsError(res),
	}
}

// buildSlots lists every addressable region of the snapshot: stack words,
// memory and calldata word by word, and each populated storage slot.
func buildSlots(snap *state.Snapshot) []slotInfo {
	var slots []slotInfo

	for i, word := range snap.Stack {
		slots = append(slots, slotInfo{
			ptr:     state.StackPointer{From: uint64(i), To: uint64(i)},
			preview: previewHex(word),
		})
	}
	slots = append(slots, regionSlots(snap.Memory, func(off uint64) state.Pointer {
		return state.MemoryPointer{Start: off, Length: state.WordSize}
	})...)
	slots = append(slots, regionSlots(snap.Calldata, func(off uint64) state.Pointer {
		return state.CalldataPointer{Start: off, Length: state.WordSize}
	})...)

	keys := make([]common.Hash, 0, len(snap.Storage))
	for slot := range snap.Storage {
		keys = append(keys, slot)
	}
	sort.Slice(keys, func(i, j int) bool { return bytes.Compare(keys[i][:], keys[j][:]) < 0 })
	for _, key := range keys {
		word := snap.Storage[key]
		slots = append(slots, slotInfo{
			ptr:     state.StoragePointer{Slot: key},
			preview: previewHex(word[:]),
		})
	}

	return slots
}

func regionSlots(region []byte, ptr func(off uint64) state.Pointer) []slotInfo {
	var slots []slotInfo
	for off := uint64(0); off < uint64(len(region)); off += state.WordSize {
		end := off + state.WordSize
		if end > uint64(len(region)) {
			end = uint64(len(region))
		}
		slots = append(slots, slotInfo{ptr: ptr(off), preview: previewHex(region[off:end])})
	}
	return slots
}

func previewHex(b []byte) string {
	const head = 8
	if len(b) <= head {
		return hexutil.Encode(b)
	}
	return hexutil.Encode(b[:head]) + ".."
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.snap == nil {
		return "Loading snapshot..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("EVM Inspector"))
	b.WriteString(" ")
	b.WriteString(m.cfg.stateFile)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectSlot:
		if len(m.slots) == 0 {
			b.WriteString("The snapshot has no data regions.\n\n")
			b.WriteString(helpStyle.Render("q quit"))
			break
		}
		b.WriteString("Select a slot to decode:\n\n")
		for i, s := range m.slots {
			line := m.formatSlot(s)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter decode • q quit"))

	case stateInputType:
		slot := m.slots[m.selected]
		b.WriteString(fmt.Sprintf("Decoding %s\n\n", ptrStyle.Render(slot.ptr.String())))
		b.WriteString(m.typeInput.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter decode • esc back"))

	case stateShowResult:
		slot := m.slots[m.selected]
		b.WriteString(fmt.Sprintf("%s as %s:\n\n", ptrStyle.Render(slot.ptr.String()), m.resultOf))
		if m.resultErr {
			b.WriteString(errorStyle.Render(m.result))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • esc back • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatSlot(s slotInfo) string {
	return ptrStyle.Render(s.ptr.String()) + "  " + previewStyle.Render(s.preview)
}

func runInteractive(cfg runConfig) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive mode needs a terminal")
	}
	p := tea.NewProgram(newInteractiveModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
