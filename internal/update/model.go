package update

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/taskform/internal/editor"
	"github.com/sandeepkv93/taskform/internal/logging"
	"github.com/sandeepkv93/taskform/internal/model"
	"github.com/sandeepkv93/taskform/internal/views"
)

type FormField string

const (
	FieldTitle       FormField = "title"
	FieldDate        FormField = "date"
	FieldDescription FormField = "description"
)

var formFieldOrder = []FormField{FieldTitle, FieldDate, FieldDescription}

// touchedFields records which inputs received keystrokes since the form
// was last loaded. Untouched inputs never overwrite the editor's values.
type touchedFields struct {
	title       bool
	date        bool
	description bool
}

func (t *touchedFields) mark(f FormField) {
	switch f {
	case FieldTitle:
		t.title = true
	case FieldDate:
		t.date = true
	case FieldDescription:
		t.description = true
	}
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	New    string
	Edit   string
	Delete string
	Help   string
	Quit   string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Model is the bubbletea program state. The editor and board are shared
// by every copy of the model; bubbletea handles one message at a time.
type Model struct {
	Cursor      int
	Focused     FormField
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	editor        *editor.Editor
	board         *views.Board
	logger        *log.Logger
	markdownStyle string

	titleInput      textinput.Model
	dateInput       textinput.Model
	descriptionArea textarea.Model
	commandInput    textinput.Model
	helpModel       help.Model
	detailViewport  viewport.Model

	touched     touchedFields
	detailCache *markdownCache
}

type OpenFormMsg struct{}

type EditTaskMsg struct {
	ID string
}

type SubmitFormMsg struct{}

type RequestCloseMsg struct{}

type ConfirmDiscardMsg struct{}

type CancelCloseMsg struct{}

type DeleteTaskMsg struct {
	ID string
}

// SetFormFieldsMsg replaces the raw input values of the open form.
type SetFormFieldsMsg struct {
	Fields model.Fields
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

func NewModel(ed *editor.Editor, board *views.Board, cfg RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = logging.Discard()
	}
	m := Model{
		Focused: FieldTitle,
		Keys: GlobalKeyMap{
			New:    "n",
			Edit:   "e",
			Delete: "d",
			Help:   "?",
			Quit:   "q",
		},
		editor:        ed,
		board:         board,
		logger:        logger,
		markdownStyle: strings.TrimSpace(cfg.MarkdownStyle),
		detailCache:   &markdownCache{},
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.titleInput = textinput.New()
	m.titleInput.Prompt = "> "
	m.titleInput.Placeholder = "Title"
	m.titleInput.CharLimit = 0
	m.titleInput.Width = 48

	m.dateInput = textinput.New()
	m.dateInput.Prompt = "> "
	m.dateInput.Placeholder = "YYYY-MM-DD"
	m.dateInput.CharLimit = 0
	m.dateInput.Width = 48

	m.descriptionArea = textarea.New()
	m.descriptionArea.SetWidth(50)
	m.descriptionArea.SetHeight(6)
	m.descriptionArea.ShowLineNumbers = false
	m.descriptionArea.Placeholder = "Description (markdown)"
	m.descriptionArea.CharLimit = 0
	m.descriptionArea.MaxHeight = 0

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 0
	m.commandInput.Width = 48

	m.helpModel = help.New()
	m.detailViewport = viewport.New(54, 12)
}
