// Package catalog renders category lists and fetched questions for
// the terminal.
package catalog

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/trivia-proxy/internal/domain"
)

func renderCategoriesView(categories []domain.Category, s styles) string {
	lines := []string{
		s.title.Render("Trivia Categories"),
		s.header.Render(fmt.Sprintf("categories: %d", len(categories))),
	}

	if len(categories) == 0 {
		lines = append(lines, s.empty.Render("No categories available."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, category := range categories {
		row := lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.id.Render(fmt.Sprintf("%d", category.ID)),
			"  ",
			s.name.Render(category.Name),
		)
		lines = append(lines, row)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderQuestionsView(questions []domain.DeliveredQuestion, s styles) string {
	lines := []string{
		s.title.Render("Trivia Questions"),
		s.header.Render(fmt.Sprintf("questions: %d", len(questions))),
	}

	if len(questions) == 0 {
		lines = append(lines, s.empty.Render("No questions available."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for i, question := range questions {
		parts := []string{
			s.question.Render(fmt.Sprintf("%d. %s", i+1, question.Text)),
			s.meta.Render(fmt.Sprintf("%s | %s | %s", question.Category, question.Difficulty, question.Type)),
		}
		for j, answer := range question.Answers {
			parts = append(parts, s.answer.Render(fmt.Sprintf("  %c) %s", 'a'+j, answer)))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, parts...)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
