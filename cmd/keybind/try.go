package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/input/tcellkey"
	"github.com/dshills/keybind/internal/input/teakey"
	"github.com/dshills/keybind/internal/shortcut"
	"github.com/dshills/keybind/internal/shortcut/decl"
)

// Terminal backends accepted by try --backend.
const (
	backendTea   = "tea"
	backendTcell = "tcell"
)

// quitKeystroke always ends a try session.
const quitKeystroke = "ctrl+c"

// newTcellScreen is replaced in tests with a simulation screen.
var newTcellScreen = tcell.NewScreen

func newTryCmd(e *env) *cobra.Command {
	var backend string
	var watch bool

	cmd := &cobra.Command{
		Use:   "try FILE",
		Short: "Press keys and see which declared actions they resolve to",
		Long: `Load a TOML binding declaration file and read key presses from the
terminal. Each press is shown with the actions bound to it. Ctrl+C quits
and prints a transcript of the session.

With --watch, edits to the --config file are applied while the session runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTry(cmd.Context(), e, cmd.InOrStdin(), args[0], backend, watch)
		},
	}
	cmd.Flags().StringVar(&backend, "backend", backendTea, "terminal backend (tea or tcell)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload --config while running")
	return cmd
}

func runTry(ctx context.Context, e *env, in io.Reader, path, backend string, watch bool) error {
	if backend != backendTea && backend != backendTcell {
		return fmt.Errorf("unknown backend %q", backend)
	}

	f, err := decl.Load(path)
	if err != nil {
		return err
	}

	m := e.newManager()
	defer m.Dispose()

	actions, err := f.Apply(m)
	if err != nil {
		return err
	}

	if watch {
		r, err := e.watchConfig(m)
		if err != nil {
			return err
		}
		defer r.Close()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	quit, err := m.RegisterFunc(quitKeystroke, "quit", cancel)
	if err != nil {
		return err
	}

	rec := &recorder{m: m, quit: quit}
	switch backend {
	case backendTcell:
		err = tryTcell(ctx, e, m, rec)
	default:
		err = tryTea(ctx, e, in, m, rec, actions)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(e.out, rec.table())
	return nil
}

// press is one key press seen during a session.
type press struct {
	keystroke string
	actions   []string
}

// recorder keeps the presses of a session.
type recorder struct {
	m    *shortcut.Manager
	quit shortcut.Handler

	mu      sync.Mutex
	presses []press
}

// record resolves ks and remembers it. It returns the line to display.
func (r *recorder) record(ks key.Keystroke) string {
	p := press{keystroke: ks.String()}
	for _, h := range r.m.HandlersForKeystroke(ks) {
		if h != r.quit {
			p.actions = append(p.actions, h.Name())
		}
	}

	r.mu.Lock()
	r.presses = append(r.presses, p)
	r.mu.Unlock()
	return p.line()
}

func (p press) line() string {
	if len(p.actions) == 0 {
		return p.keystroke + "  (unbound)"
	}
	return p.keystroke + "  " + strings.Join(p.actions, ", ")
}

// lines returns the display lines of the last n presses.
func (r *recorder) lines(n int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n < 0 {
		n = 0
	}
	start := max(len(r.presses)-n, 0)
	out := make([]string, 0, len(r.presses)-start)
	for _, p := range r.presses[start:] {
		out = append(out, p.line())
	}
	return out
}

// table renders the transcript. The quit press is left out.
func (r *recorder) table() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	quit := key.MustParse(quitKeystroke).String()
	data := make([][]string, 0, len(r.presses))
	flagged := make(map[int]bool)
	for _, p := range r.presses {
		if p.keystroke == quit && len(p.actions) == 0 {
			continue
		}
		actions := strings.Join(p.actions, ", ")
		if actions == "" {
			actions = "-"
		}
		if len(p.actions) > 1 {
			flagged[len(data)] = true
		}
		data = append(data, []string{p.keystroke, actions})
	}
	return newTable([]string{"PRESSED", "ACTIONS"}, data, flagged)
}

// tryTcell runs a session on a tcell screen. The screen is the manager's
// window while the session lasts.
func tryTcell(ctx context.Context, e *env, m *shortcut.Manager, rec *recorder) error {
	s, err := newTcellScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	d := tcellkey.NewDispatcher(m, e.logger)
	if err := d.Attach(s); err != nil {
		return err
	}
	defer func() { _ = d.Detach(s) }()

	stop := context.AfterFunc(ctx, func() {
		_ = s.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	drawLines(s, rec.lines(0))
	for {
		ev := s.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return nil
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ks, ok := tcellkey.FromEvent(ev); ok {
				rec.record(ks)
			}
			d.HandleEvent(ev)
		case *tcell.EventResize:
			s.Sync()
		}
		if ctx.Err() != nil {
			return nil
		}
		_, h := s.Size()
		drawLines(s, rec.lines(h-2))
	}
}

func drawLines(s tcell.Screen, lines []string) {
	s.Clear()
	style := tcell.StyleDefault
	put := func(y int, text string) {
		x := 0
		for _, r := range text {
			s.SetContent(x, y, r, nil, style)
			x++
		}
	}
	put(0, "Press keys to resolve them. Ctrl+C quits.")
	for i, l := range lines {
		put(i+1, l)
	}
	s.Show()
}

// tryModel is the bubbletea model of a session.
type tryModel struct {
	m    *shortcut.Manager
	rec  *recorder
	ctx  context.Context
	help []string
	last string
}

func newTryModel(ctx context.Context, m *shortcut.Manager, rec *recorder, actions []*decl.Action) *tryModel {
	model := &tryModel{m: m, rec: rec, ctx: ctx}
	for _, a := range actions {
		h := teakey.Binding(m, a).Help()
		model.help = append(model.help, h.Key+" "+h.Desc)
	}
	return model
}

func (t *tryModel) Init() tea.Cmd { return nil }

func (t *tryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if ks, ok := teakey.FromKeyMsg(kmsg); ok {
			t.last = t.rec.record(ks)
		}
	}
	teakey.Dispatch(t.m, msg)
	if t.ctx.Err() != nil {
		return t, tea.Quit
	}
	return t, nil
}

func (t *tryModel) View() string {
	var b strings.Builder
	b.WriteString("Press keys to resolve them. Ctrl+C quits.\n\n")
	if t.last != "" {
		b.WriteString(t.last)
		b.WriteString("\n\n")
	}
	b.WriteString(helpStyle.Render(strings.Join(t.help, " • ")))
	b.WriteString("\n")
	return b.String()
}

// tryTea runs a session as a bubbletea program reading from in. The
// program is the manager's window while it runs.
func tryTea(ctx context.Context, e *env, in io.Reader, m *shortcut.Manager, rec *recorder, actions []*decl.Action) error {
	model := newTryModel(ctx, m, rec, actions)
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(e.out),
	)
	if err := m.AddWindow(p); err != nil {
		return err
	}
	defer func() { _ = m.RemoveWindow(p) }()

	_, err := p.Run()
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
