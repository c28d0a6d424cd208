package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/at-ishikawa/studydash/internal/assets"
	"github.com/at-ishikawa/studydash/internal/grade"
	"github.com/at-ishikawa/studydash/internal/pdf"
	"github.com/at-ishikawa/studydash/internal/planner"
)

// ReportWriter exports the seeded grades and tasks as Markdown, and optionally PDF.
type ReportWriter struct {
	OutputDirectory string
	TemplatePath    string
	GeneratePDF     bool
	Theme           pdf.Theme
	Stdout          io.Writer
	now             func() time.Time
}

func (writer ReportWriter) clock() time.Time {
	if writer.now != nil {
		return writer.now()
	}
	return time.Now()
}

func (writer ReportWriter) stdout() io.Writer {
	if writer.Stdout != nil {
		return writer.Stdout
	}
	return os.Stdout
}

// OutputGradeReport writes grades.md and returns its path.
func (writer ReportWriter) OutputGradeReport(entries []grade.Entry) (string, error) {
	summary := grade.Summarize(entries)
	data := assets.GradeReport{
		GeneratedAt: writer.clock(),
		Overall:     summary.Overall,
		Letter:      summary.Letter,
	}
	for _, subject := range summary.Subjects {
		data.Subjects = append(data.Subjects, assets.GradeReportSubject{
			Subject: subject.Subject,
			Average: subject.Average,
			Letter:  subject.Letter,
		})
	}
	for _, entry := range entries {
		data.Entries = append(data.Entries, assets.GradeReportEntry{
			Subject:    entry.Subject,
			Assignment: entry.Assignment,
			Score:      entry.Score,
			Weight:     entry.Weight,
		})
	}

	return writer.output("grades", func(output io.Writer) error {
		return assets.WriteGradeReport(output, writer.TemplatePath, data)
	})
}

// OutputPlannerReport writes the tasks due on selected, or every task when
// selected is nil, and returns the Markdown path.
func (writer ReportWriter) OutputPlannerReport(tasks []planner.Task, selected *planner.Date) (string, error) {
	name := "planner"
	data := assets.PlannerReport{
		GeneratedAt: writer.clock(),
		Selection:   "all dates",
	}
	if selected != nil {
		name = "planner-" + selected.String()
		data.Selection = selected.String()
	}
	for _, task := range planner.FilterByDate(tasks, selected) {
		data.Tasks = append(data.Tasks, assets.PlannerReportTask{
			Title:       task.Title,
			Description: task.Description,
			DueDate:     task.DueDate.String(),
			Priority:    string(task.Priority),
			Completed:   task.Completed,
		})
	}

	return writer.output(name, func(output io.Writer) error {
		return assets.WritePlannerReport(output, writer.TemplatePath, data)
	})
}

func (writer ReportWriter) output(name string, write func(io.Writer) error) (string, error) {
	// Create output directory if it doesn't exist
	if err := os.MkdirAll(writer.OutputDirectory, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", writer.OutputDirectory, err)
	}

	outputFilename := filepath.Join(writer.OutputDirectory, name+".md")
	output, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("os.Create(%s) > %w", outputFilename, err)
	}
	if err := write(output); err != nil {
		_ = output.Close()
		return "", fmt.Errorf("write(%s) > %w", outputFilename, err)
	}
	if err := output.Close(); err != nil {
		return "", fmt.Errorf("output.Close() > %w", err)
	}

	_, _ = fmt.Fprintf(writer.stdout(), "Report written to: %s\n", outputFilename)

	if writer.GeneratePDF {
		pdfPath, err := pdf.ConvertMarkdownToPDF(outputFilename, writer.Theme)
		if err != nil {
			return "", fmt.Errorf("ConvertMarkdownToPDF(%s) > %w", outputFilename, err)
		}
		_, _ = fmt.Fprintf(writer.stdout(), "PDF generated at: %s\n", pdfPath)
	}
	return outputFilename, nil
}
