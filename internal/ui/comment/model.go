package comment

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/pankaj1920/shop/internal/keys"
	"github.com/pankaj1920/shop/internal/model"
	"github.com/pankaj1920/shop/internal/theme"
	"github.com/pankaj1920/shop/internal/ui"
)

type formBindings struct {
	comment string
	rate    int
}

// Model is the Bubble Tea model for the product comment screen. It only
// renders ViewModel state and turns key presses into events.
type Model struct {
	vm        *ViewModel
	productID int
	keys      *keys.KeyMap
	spinner   spinner.Model
	form      *huh.Form
	fb        *formBindings
	offset    int
	width     int
	height    int
}

// New creates the comment screen for productID.
func New(vm *ViewModel, productID int, k *keys.KeyMap, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorAccent)
	return Model{
		vm:        vm,
		productID: productID,
		keys:      k,
		spinner:   sp,
		fb:        &formBindings{rate: model.MaxRate},
		width:     width,
		height:    height,
	}
}

// Init selects the product and loads its comments.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.vm.OnTriggerEvent(UpdateProductID{ID: m.productID}),
		m.vm.OnTriggerEvent(GetComments{}),
		m.spinner.Tick,
	)
}

// ViewModel returns the screen's view-model.
func (m Model) ViewModel() *ViewModel {
	return m.vm
}

// Capturing reports whether the screen is consuming all key input.
func (m Model) Capturing() bool {
	st := m.vm.State()
	return st.AddCommentDialogState == model.Show || !st.ErrorQueue.IsEmpty()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if cmd := m.vm.Update(msg); cmd != nil {
		return m, cmd
	}
	return m.updateForm(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	st := m.vm.State()

	// Queued notifications take precedence over everything else.
	if !st.ErrorQueue.IsEmpty() {
		if key.Matches(msg, m.keys.Select) || key.Matches(msg, m.keys.Back) {
			return m, m.vm.OnTriggerEvent(RemoveHeadFromQueue{})
		}
		return m, nil
	}

	if st.AddCommentDialogState == model.Show {
		if key.Matches(msg, m.keys.Back) {
			m.form = nil
			return m, m.vm.OnTriggerEvent(UpdateAddCommentDialogState{Value: model.Hide})
		}
		return m.updateForm(msg)
	}

	switch {
	case key.Matches(msg, m.keys.AddComment):
		m.fb.comment = ""
		m.fb.rate = model.MaxRate
		m.form = m.buildForm()
		return m, tea.Batch(
			m.vm.OnTriggerEvent(UpdateAddCommentDialogState{Value: model.Show}),
			m.form.Init(),
		)

	case key.Matches(msg, m.keys.Retry):
		return m, m.vm.OnTriggerEvent(RetryNetwork{})

	case key.Matches(msg, m.keys.Down):
		if m.offset < len(st.Comments)-1 {
			m.offset++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.offset > 0 {
			m.offset--
		}
		return m, nil
	}
	return m, nil
}

func (m Model) buildForm() *huh.Form {
	options := make([]huh.Option[int], 0, model.MaxRate-model.MinRate+1)
	for r := int(model.MaxRate); r >= int(model.MinRate); r-- {
		options = append(options, huh.NewOption(stars(float64(r)), r))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Comment").
				Placeholder("What did you think of it?").
				CharLimit(500).
				Value(&m.fb.comment).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("comment is required")
					}
					return nil
				}),
			huh.NewSelect[int]().
				Title("Rating").
				Options(options...).
				Value(&m.fb.rate),
		),
	).WithWidth(m.formWidth()).WithShowHelp(true)
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil || m.vm.State().AddCommentDialogState != model.Show {
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		return m, tea.Batch(
			m.vm.OnTriggerEvent(UpdateAddCommentDialogState{Value: model.Hide}),
			m.vm.OnTriggerEvent(AddComment{
				Comment: strings.TrimSpace(m.fb.comment),
				Rate:    float64(m.fb.rate),
			}),
		)
	case huh.StateAborted:
		m.form = nil
		return m, m.vm.OnTriggerEvent(UpdateAddCommentDialogState{Value: model.Hide})
	}
	return m, cmd
}

func (m Model) formWidth() int {
	w := m.width - 10
	if w > 70 {
		w = 70
	}
	if w < 30 {
		w = 30
	}
	return w
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the screen.
func (m Model) View() string {
	st := m.vm.State()

	if head, ok := st.ErrorQueue.Peek(); ok {
		return ui.Overlay(m.width, m.height, ui.RenderNotification(head, m.width))
	}
	if st.AddCommentDialogState == model.Show && m.form != nil {
		dialog := lipgloss.JoinVertical(lipgloss.Left,
			theme.TitleStyle.Render("Add a comment"),
			m.form.View(),
		)
		return ui.Overlay(m.width, m.height, theme.DialogStyle.Render(dialog))
	}

	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render(fmt.Sprintf("Comments for product #%d", st.ProductID)))
	b.WriteString("\n")

	if st.NetworkState == model.NetworkFailed {
		b.WriteString(ui.RenderNetworkBanner())
		b.WriteString("\n\n")
	}

	switch {
	case st.ProgressBarState == model.ProgressLoading:
		b.WriteString(m.spinner.View() + " Loading comments...\n")
	case st.ProgressBarState == model.ProgressButtonLoading:
		b.WriteString(m.spinner.View() + " Sending comment...\n")
	}

	if len(st.Comments) == 0 && !st.ProgressBarState.IsLoading() {
		b.WriteString(theme.HelpStyle.Render("No comments yet. Press n to write the first one."))
		b.WriteString("\n")
	}

	avail := m.height - 6
	if avail < 3 {
		avail = 3
	}
	used := 0
	for i := m.offset; i < len(st.Comments) && used < avail; i++ {
		entry := renderComment(st.Comments[i], m.width-4)
		b.WriteString(entry)
		b.WriteString("\n")
		used += lipgloss.Height(entry) + 1
	}

	return theme.PanelStyle.Render(b.String())
}

func renderComment(c model.Comment, width int) string {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Bold(true).Render(c.User),
		"  ",
		theme.RatingStyle(c.Rate).Render(stars(c.Rate)),
		"  ",
		theme.DimmedStyle.Render(c.CreatedAt.Local().Format("2006-01-02")),
	)
	body := lipgloss.NewStyle().Width(width).Render(c.Comment)
	return theme.ListItemStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, body))
}

// stars renders a rating as five filled or empty stars.
func stars(rate float64) string {
	n := int(rate + 0.5)
	if n < 0 {
		n = 0
	}
	if n > model.MaxRate {
		n = model.MaxRate
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", model.MaxRate-n)
}
