package assets

import (
	_ "embed"
	"fmt"
	"io"
	"time"
)

const (
	gradeReportTemplateName   = "grade-report.md.go.tmpl"
	plannerReportTemplateName = "planner-report.md.go.tmpl"
)

//go:embed templates/grade-report.md.go.tmpl
var fallbackGradeReportTemplate string

//go:embed templates/planner-report.md.go.tmpl
var fallbackPlannerReportTemplate string

// GradeReport is the data passed to the grade report template
type GradeReport struct {
	GeneratedAt time.Time
	Overall     float64
	Letter      string
	Subjects    []GradeReportSubject
	Entries     []GradeReportEntry
}

type GradeReportSubject struct {
	Subject string
	Average float64
	Letter  string
}

type GradeReportEntry struct {
	Subject    string
	Assignment string
	Score      float64
	Weight     float64
}

// PlannerReport is the data passed to the planner report template.
// Selection is a YYYY-MM-DD date or "all dates".
type PlannerReport struct {
	GeneratedAt time.Time
	Selection   string
	Tasks       []PlannerReportTask
}

type PlannerReportTask struct {
	Title       string
	Description string
	DueDate     string
	Priority    string
	Completed   bool
}

func WriteGradeReport(output io.Writer, templatePath string, templateData GradeReport) error {
	tmpl, err := parseTemplateWithFallback(templatePath, gradeReportTemplateName, fallbackGradeReportTemplate)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, templateData); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

func WritePlannerReport(output io.Writer, templatePath string, templateData PlannerReport) error {
	tmpl, err := parseTemplateWithFallback(templatePath, plannerReportTemplateName, fallbackPlannerReportTemplate)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, templateData); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
