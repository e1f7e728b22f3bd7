package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/bdtax/internal/calculation"
	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/rgehrsitz/bdtax/internal/store"
)

// Options configures a new Model
type Options struct {
	Engine   *calculation.CalculationEngine // defaults to the built-in rules
	Store    store.KV                       // defaults to an in-memory store
	Logger   calculation.Logger
	Debounce time.Duration // defaults to store.DefaultDebounce
}

// Model is the whole TUI state: the editable input, the form over it and the
// latest results for both fiscal years.
type Model struct {
	engine *calculation.CalculationEngine
	logger calculation.Logger
	kv     store.KV
	saver  *store.Debouncer[*domain.TaxInput]

	input  *domain.TaxInput
	result *domain.TaxComparison
	err    error

	fields []field
	focus  int

	keys   keyMap
	help   help.Model
	status string
	warn   bool

	width  int
	height int
}

// NewModel loads the saved state and computes the first results. A corrupt
// saved state is replaced by defaults and reported in the status line.
func NewModel(opts Options) Model {
	if opts.Engine == nil {
		opts.Engine = calculation.NewCalculationEngine()
	}
	if opts.Store == nil {
		opts.Store = store.NewMemoryKV()
	}
	if opts.Logger == nil {
		opts.Logger = calculation.NopLogger{}
	}
	if opts.Debounce <= 0 {
		opts.Debounce = store.DefaultDebounce
	}

	m := Model{
		engine: opts.Engine,
		logger: opts.Logger,
		kv:     opts.Store,
		keys:   defaultKeyMap(),
		help:   help.New(),
		width:  100,
		height: 30,
	}

	input, err := store.LoadState(opts.Store)
	if err != nil {
		m.logger.Warnf("%v", err)
		m.status, m.warn = err.Error(), true
	}
	m.input = input

	logger := m.logger
	m.saver = store.NewDebouncer(opts.Debounce, func(in *domain.TaxInput) error {
		return store.SaveState(opts.Store, in)
	})
	m.saver.OnError = func(err error) { logger.Errorf("failed to save state: %v", err) }

	m.fields = buildFields(m.input)
	m.fields[0].focus()
	m.recalculate()
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Input returns the state being edited
func (m Model) Input() *domain.TaxInput { return m.input }

// Result returns the latest comparison, nil if the last calculation failed
func (m Model) Result() *domain.TaxComparison { return m.result }

// Close writes any pending save. Call it after the program exits.
func (m Model) Close() error {
	return m.saver.Flush()
}

func (m *Model) recalculate() {
	m.result, m.err = m.engine.CalculateAll(m.input)
	if m.err != nil {
		m.logger.Errorf("calculation failed: %v", m.err)
	}
}

// changed pushes the focused field into the input, recalculates and
// schedules a save
func (m *Model) changed() {
	f := &m.fields[m.focus]
	f.apply(m.input, f)
	m.recalculate()
	m.saver.Trigger(m.input.Clone())
	if m.warn {
		return
	}
	m.status = ""
}

func (m *Model) setFocus(i int) {
	n := len(m.fields)
	m.fields[m.focus].blur()
	m.focus = ((i % n) + n) % n
	m.fields[m.focus].focus()
}
