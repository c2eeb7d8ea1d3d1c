package debugger

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TUI is the tview-based full-screen debugger view.
type TUI struct {
	Debugger *Debugger
	App      *tview.Application

	MainLayout *tview.Flex

	SourceView      *tview.TextView
	RegisterView    *tview.TextView
	MemoryView      *tview.TextView
	BreakpointsView *tview.TextView
	OutputView      *tview.TextView
	CommandInput    *tview.InputField

	MemoryAddress int
}

// NewTUI builds a TUI around dbg, ready to Run.
func NewTUI(dbg *Debugger) *TUI {
	t := &TUI{
		Debugger: dbg,
		App:      tview.NewApplication(),
	}
	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()
	return t
}

func (t *TUI) initializeViews() {
	t.SourceView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.SourceView.SetBorder(true).SetTitle(" Source ")

	t.RegisterView = tview.NewTextView().SetDynamicColors(true)
	t.RegisterView.SetBorder(true).SetTitle(" Registers ")

	t.MemoryView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.MemoryView.SetBorder(true).SetTitle(" Memory ")

	t.BreakpointsView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.BreakpointsView.SetBorder(true).SetTitle(" Breakpoints/Watchpoints ")

	t.OutputView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(true)
	t.OutputView.SetBorder(true).SetTitle(" Output ")

	t.CommandInput = tview.NewInputField().SetLabel("> ").SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" Command ")
	t.CommandInput.SetDoneFunc(t.handleCommand)
}

func (t *TUI) buildLayout() {
	rightPanel := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.RegisterView, 9, 0, false).
		AddItem(t.MemoryView, 0, 2, false).
		AddItem(t.BreakpointsView, 8, 0, false)

	mainContent := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(t.SourceView, 0, 2, false).
		AddItem(rightPanel, 0, 1, false)

	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(mainContent, 0, 4, false).
		AddItem(t.OutputView, 8, 0, false).
		AddItem(t.CommandInput, 3, 0, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF1:
			t.executeCommand("help")
			return nil
		case tcell.KeyF5:
			t.executeCommand("continue")
			return nil
		case tcell.KeyF9:
			t.executeCommand("break")
			return nil
		case tcell.KeyF11:
			t.executeCommand("step")
			return nil
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		case tcell.KeyCtrlL:
			t.RefreshAll()
			return nil
		}
		return event
	})
}

func (t *TUI) handleCommand(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	cmd := t.CommandInput.GetText()
	if cmd != "" {
		t.executeCommand(cmd)
		t.CommandInput.SetText("")
	}
}

func (t *TUI) executeCommand(cmd string) {
	t.Debugger.Output.Reset()
	err := t.Debugger.ExecuteCommand(cmd)
	output := t.Debugger.GetOutput()

	if err != nil {
		t.WriteOutput(fmt.Sprintf("[red]Error:[white] %v\n", err))
	}
	if output != "" {
		t.WriteOutput(output)
	}

	if t.Debugger.Running {
		runUntilStop(t.Debugger)
	}

	t.RefreshAll()
}

// WriteOutput appends text to the output panel.
func (t *TUI) WriteOutput(text string) {
	_, _ = t.OutputView.Write([]byte(text))
	t.OutputView.ScrollToEnd()
}

// RefreshAll redraws every panel from the current machine state.
func (t *TUI) RefreshAll() {
	t.updateSourceView()
	t.updateRegisterView()
	t.updateMemoryView()
	t.updateBreakpointsView()
	t.App.Draw()
}

func (t *TUI) updateSourceView() {
	if t.Debugger.SourceText == "" {
		t.SourceView.SetText("[yellow]No source loaded[white]")
		return
	}
	lines := strings.Split(t.Debugger.SourceText, "\n")
	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "%4d  %s\n", i+1, tview.Escape(line))
	}
	t.SourceView.SetText(b.String())
}

func (t *TUI) updateRegisterView() {
	t.RegisterView.SetText(tview.Escape(t.Debugger.Machine.CPU.Summary()))
}

func (t *TUI) updateMemoryView() {
	var b strings.Builder
	base := t.MemoryAddress
	for row := 0; row < 16; row++ {
		addr := base + row
		word, err := t.Debugger.Machine.Memory.Read(addr)
		if err != nil {
			break
		}
		marker := "  "
		if t.Debugger.Breakpoints.GetBreakpoint(addr) != nil {
			marker = "* "
		}
		fmt.Fprintf(&b, "%s%04d: %s%010d\n", marker, addr, word.Sign, word.Magnitude())
	}
	t.MemoryView.SetText(b.String())
}

func (t *TUI) updateBreakpointsView() {
	var b strings.Builder
	for _, bp := range t.Debugger.Breakpoints.GetAllBreakpoints() {
		fmt.Fprintf(&b, "bp %d: %04d enabled=%v hits=%d\n", bp.ID, bp.Address, bp.Enabled, bp.HitCount)
	}
	for _, wp := range t.Debugger.Watchpoints.GetAllWatchpoints() {
		fmt.Fprintf(&b, "wp %d: %s hits=%d\n", wp.ID, wp.Expression, wp.HitCount)
	}
	t.BreakpointsView.SetText(b.String())
}

// Run starts the tview event loop, rooted at MainLayout with focus on the
// command input.
func (t *TUI) Run() error {
	t.RefreshAll()
	return t.App.SetRoot(t.MainLayout, true).SetFocus(t.CommandInput).Run()
}
