package catalog

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/trivia-proxy/internal/domain"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	categories []domain.Category
	questions  []domain.DeliveredQuestion
	styles     styles
	output     string
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		if m.categories != nil {
			m.output = renderCategoriesView(m.categories, m.styles)
		} else {
			m.output = renderQuestionsView(m.questions, m.styles)
		}
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// RenderCategories draws the category table without taking over the
// terminal: the bubbletea program renders once and quits.
func RenderCategories(categories []domain.Category) (string, error) {
	if categories == nil {
		categories = []domain.Category{}
	}
	return run(model{categories: categories, styles: newStyles()})
}

func RenderQuestions(questions []domain.DeliveredQuestion) (string, error) {
	return run(model{questions: questions, styles: newStyles()})
}

func run(m model) (string, error) {
	p := tea.NewProgram(
		m,
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
