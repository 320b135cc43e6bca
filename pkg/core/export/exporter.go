// Package export writes learner progress reports as Excel workbooks, for
// instructors who track a cohort in spreadsheets.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"fintutor/pkg/core/store"
)

const (
	summarySheet  = "Summary"
	attemptsSheet = "Quiz Attempts"
)

// WriteProgressWorkbook renders one or more progress summaries into an
// .xlsx file at path.
func WriteProgressWorkbook(path string, summaries []*store.ProgressSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	// Summary sheet: one row per learner.
	index, err := f.NewSheet(summarySheet)
	if err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []interface{}{"User", "Quizzes Taken", "Average %", "Best %"}
	if err := f.SetSheetRow(summarySheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}
	for i, s := range summaries {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{displayUser(s.UserID), s.QuizzesTaken, s.AveragePercent, s.BestPercent}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	// Attempts sheet: every recorded attempt.
	if _, err := f.NewSheet(attemptsSheet); err != nil {
		return fmt.Errorf("failed to create attempts sheet: %w", err)
	}
	attemptHeaders := []interface{}{"User", "Topic", "Score", "Total", "Percent", "Taken At"}
	if err := f.SetSheetRow(attemptsSheet, "A1", &attemptHeaders); err != nil {
		return fmt.Errorf("failed to write attempts header: %w", err)
	}
	rowIdx := 2
	for _, s := range summaries {
		for _, rec := range s.Records {
			cell, _ := excelize.CoordinatesToCellName(1, rowIdx)
			row := []interface{}{
				displayUser(s.UserID), rec.Topic, rec.Score, rec.Total, rec.Percent,
				rec.TakenAt.Format("2006-01-02 15:04"),
			}
			if err := f.SetSheetRow(attemptsSheet, cell, &row); err != nil {
				return fmt.Errorf("failed to write attempt row: %w", err)
			}
			rowIdx++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func displayUser(userID string) string {
	if userID == "" {
		return "anonymous"
	}
	return userID
}
