package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/trivia-proxy/internal/adapters/render/catalog"
	"github.com/bnema/trivia-proxy/internal/domain"
)

type questionsOutput struct {
	Session   string                     `json:"session"`
	Questions []domain.DeliveredQuestion `json:"questions"`
}

func newQuestionsCmd(app *app) *cobra.Command {
	var (
		amount   int
		category int
		session  string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Fetch trivia questions for a session",
		Long:  "Fetch questions from the question bank. Without --session a fresh session id is generated; reuse it to keep drawing from the same token and to answer against the same ledger.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if session == "" {
				session = app.newSessionID()
			}

			var questions []domain.DeliveredQuestion
			err := runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), "Fetching questions...", func(ctx context.Context) error {
				var fetchErr error
				questions, fetchErr = app.service.GetQuestions(ctx, amount, category, domain.SessionID(session))
				return fetchErr
			})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(questionsOutput{Session: session, Questions: questions})
			}

			rendered, err := catalog.RenderQuestions(questions)
			if err != nil {
				return fmt.Errorf("render questions: %w", err)
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), rendered); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "session: %s\n", session)
			return err
		},
	}

	cmd.Flags().IntVar(&amount, "amount", 10, "number of questions to request")
	cmd.Flags().IntVar(&category, "category", 0, "category id (0 means any category)")
	cmd.Flags().StringVar(&session, "session", "", "session id (generated when empty)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON instead of the list")

	return cmd
}
