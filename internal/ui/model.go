package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/satchelapp/satchel/internal/portal"
	"github.com/satchelapp/satchel/internal/prefs"
	"github.com/satchelapp/satchel/internal/retry"
	"github.com/satchelapp/satchel/internal/state"
)

// View identifies the active screen.
type View int

const (
	viewLogin View = iota
	viewStudents
	viewSchedule
	viewHomework
	viewRecords
	viewCourses
)

// Options configure the UI runtime.
type Options struct {
	Context   context.Context
	Client    *portal.Client
	Auth      *state.AuthStore
	Students  *state.StudentStore
	Records   *state.RecordsStore
	Reads     retry.Policy
	ThemeName string
	PrefsPath string
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	if opts.Auth == nil || opts.Students == nil || opts.Records == nil {
		return fmt.Errorf("ui requires auth, student, and records stores")
	}
	if opts.Client == nil {
		return fmt.Errorf("ui requires a portal client")
	}
	program := tea.NewProgram(newModel(opts), tea.WithAltScreen(), tea.WithContext(opts.Context))
	_, err := program.Run()
	return err
}

// Model is the root Bubble Tea model.
type Model struct {
	opts   Options
	theme  Theme
	styles Styles
	view   View
	width  int
	height int
	spin   spinner.Model

	// login form
	emailInput    textinput.Model
	passwordInput textinput.Model
	loginFocus    int

	// student picker
	studentCursor int

	// schedule
	schedule     *portal.StudentSchedule
	scheduleErr  string
	scheduleBusy bool
	showAll      bool

	// homework
	homework       []portal.HomeworkAssignment
	homeworkErr    string
	homeworkBusy   bool
	homeworkFilter string
	homeworkCursor int
	searchInput    textinput.Model
	searching      bool

	// homework detail + submission form
	hwDetail     *portal.HomeworkAssignment
	hwDetailErr  string
	hwDetailBusy bool
	composing    bool
	composeFocus int
	contentInput textinput.Model
	filesInput   textinput.Model
	submitBusy   bool
	submitErr    string

	// courses
	courses      []portal.Course
	coursesErr   string
	coursesBusy  bool
	courseCursor int
	stories      []portal.Story
	storiesErr   string
	storyLevel   string
}

func newModel(opts Options) Model {
	theme := ThemeByName(opts.ThemeName)

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	search := textinput.New()
	search.Placeholder = "title or class"
	search.CharLimit = 60

	content := textinput.New()
	content.Placeholder = "what the student did"
	content.CharLimit = 2000

	files := textinput.New()
	files.Placeholder = "file paths, comma separated (optional)"
	files.CharLimit = 500

	m := Model{
		opts:           opts,
		theme:          theme,
		styles:         theme.Styles(),
		spin:           spin,
		emailInput:     email,
		passwordInput:  password,
		searchInput:    search,
		contentInput:   content,
		filesInput:     files,
		homeworkFilter: portal.HomeworkFilterAll,
		view:           viewLogin,
	}

	if opts.Auth.Snapshot().Authenticated {
		m.view = viewStudents
	}
	return m
}

// Init kicks off the spinner and, when a session was restored, the student
// list fetch.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	if m.view != viewLogin {
		cmds = append(cmds, m.fetchStudentsCmd())
	}
	return tea.Batch(cmds...)
}

// Update routes messages to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		// Ctrl+C always quits, even inside text inputs.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.updateKey(msg)

	case authDoneMsg:
		snap := m.opts.Auth.Snapshot()
		if !snap.Authenticated {
			return m, nil // error already in the store
		}
		m.view = viewStudents
		return m, m.fetchStudentsCmd()

	case studentsDoneMsg:
		if m.sessionGone() {
			return m.toLogin(), nil
		}
		if _, ok := m.opts.Students.Current(); ok {
			return m.openSchedule()
		}
		m.view = viewStudents
		return m, nil

	case recordsDoneMsg, loadMoreDoneMsg:
		if m.sessionGone() {
			return m.toLogin(), nil
		}
		return m, nil

	case scheduleMsg:
		m.scheduleBusy = false
		if msg.expired {
			return m.toLogin(), nil
		}
		m.scheduleErr = msg.errMsg
		if msg.data != nil {
			m.schedule = msg.data
		}
		return m, nil

	case homeworkMsg:
		m.homeworkBusy = false
		if msg.expired {
			return m.toLogin(), nil
		}
		m.homeworkErr = msg.errMsg
		if msg.errMsg == "" {
			m.homework = msg.list
			m.homeworkCursor = 0
		}
		return m, nil

	case homeworkDetailMsg:
		m.hwDetailBusy = false
		if msg.expired {
			return m.toLogin(), nil
		}
		m.hwDetailErr = msg.errMsg
		if msg.errMsg == "" {
			m.hwDetail = msg.detail
		}
		return m, nil

	case homeworkSubmitMsg:
		m.submitBusy = false
		if msg.expired {
			return m.toLogin(), nil
		}
		m.submitErr = msg.errMsg
		if msg.errMsg != "" {
			return m, nil
		}
		m.composing = false
		m.contentInput.SetValue("")
		m.filesInput.SetValue("")
		m.hwDetail = msg.detail
		// Refresh the list so its status badge and counts catch up.
		if current, ok := m.opts.Students.Current(); ok {
			return m, m.fetchHomeworkCmd(current.ID, m.homeworkFilter)
		}
		return m, nil

	case coursesMsg:
		m.coursesBusy = false
		if msg.expired {
			return m.toLogin(), nil
		}
		m.coursesErr = msg.errMsg
		if msg.errMsg == "" {
			m.courses = msg.levels
			m.courseCursor = 0
		}
		return m, nil

	case storiesMsg:
		if msg.expired {
			return m.toLogin(), nil
		}
		m.storiesErr = msg.errMsg
		if msg.errMsg == "" {
			m.stories = msg.stories
			m.storyLevel = msg.level
		}
		return m, nil
	}

	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.view {
	case viewLogin:
		return m.updateLogin(msg)
	case viewStudents:
		return m.updateStudents(msg)
	case viewSchedule:
		return m.updateSchedule(msg)
	case viewHomework:
		return m.updateHomework(msg)
	case viewRecords:
		return m.updateRecords(msg)
	case viewCourses:
		return m.updateCourses(msg)
	}
	return m, nil
}

// handleGlobalKey covers the bindings shared by every dashboard view.
// The bool result reports whether the key was consumed.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit, true
	case key.Matches(msg, keys.Schedule):
		next, cmd := m.openSchedule()
		return next, cmd, true
	case key.Matches(msg, keys.Homework):
		next, cmd := m.openHomework()
		return next, cmd, true
	case key.Matches(msg, keys.Records):
		next, cmd := m.openRecords()
		return next, cmd, true
	case key.Matches(msg, keys.Courses):
		next, cmd := m.openCourses()
		return next, cmd, true
	case key.Matches(msg, keys.Students):
		m.view = viewStudents
		return m, m.fetchStudentsCmd(), true
	case key.Matches(msg, keys.Theme):
		m.theme = NextTheme(m.theme.Name)
		m.styles = m.theme.Styles()
		_ = prefs.Save(m.opts.PrefsPath, prefs.Prefs{Theme: m.theme.Name})
		return m, nil, true
	case key.Matches(msg, keys.Logout):
		return m.logout()
	}
	return m, nil, false
}

func (m Model) logout() (Model, tea.Cmd, bool) {
	opts := m.opts
	cmd := func() tea.Msg {
		opts.Auth.Logout(opts.Context, opts.Client)
		opts.Students.Reset()
		opts.Records.Reset()
		return authDoneMsg{}
	}
	next := m.toLogin()
	return next, cmd, true
}

// sessionGone reports whether the token vanished underneath us (a 401 on a
// protected endpoint cleared it).
func (m Model) sessionGone() bool {
	return m.opts.Auth.Token() == ""
}

func (m Model) toLogin() Model {
	m.view = viewLogin
	m.loginFocus = 0
	m.emailInput.Focus()
	m.passwordInput.Blur()
	m.passwordInput.SetValue("")
	m.schedule = nil
	m.homework = nil
	m.courses = nil
	m.stories = nil
	m = m.closeHomeworkDetail()
	return m
}

func (m Model) closeHomeworkDetail() Model {
	m.hwDetail = nil
	m.hwDetailErr = ""
	m.hwDetailBusy = false
	m.composing = false
	m.composeFocus = 0
	m.submitBusy = false
	m.submitErr = ""
	m.contentInput.Blur()
	m.filesInput.Blur()
	m.contentInput.SetValue("")
	m.filesInput.SetValue("")
	return m
}

func (m Model) openSchedule() (Model, tea.Cmd) {
	m.view = viewSchedule
	current, ok := m.opts.Students.Current()
	if !ok {
		m.view = viewStudents
		return m, nil
	}
	m.scheduleBusy = true
	m.scheduleErr = ""
	return m, m.fetchScheduleCmd(current.ID)
}

func (m Model) openHomework() (Model, tea.Cmd) {
	m.view = viewHomework
	m = m.closeHomeworkDetail()
	current, ok := m.opts.Students.Current()
	if !ok {
		m.view = viewStudents
		return m, nil
	}
	m.homeworkBusy = true
	m.homeworkErr = ""
	return m, m.fetchHomeworkCmd(current.ID, m.homeworkFilter)
}

func (m Model) openRecords() (Model, tea.Cmd) {
	m.view = viewRecords
	current, ok := m.opts.Students.Current()
	if !ok {
		m.view = viewStudents
		return m, nil
	}
	m.opts.Records.Reset()
	return m, m.fetchRecordsCmd(current.ID)
}

func (m Model) openCourses() (Model, tea.Cmd) {
	m.view = viewCourses
	m.coursesBusy = true
	m.coursesErr = ""
	return m, m.fetchCoursesCmd()
}

// View renders the active screen under a shared header.
func (m Model) View() string {
	if m.view == viewLogin {
		return m.renderLogin()
	}

	var body string
	switch m.view {
	case viewStudents:
		body = m.renderStudents()
	case viewSchedule:
		body = m.renderSchedule()
	case viewHomework:
		body = m.renderHomework()
	case viewRecords:
		body = m.renderRecords()
	case viewCourses:
		body = m.renderCourses()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
}
