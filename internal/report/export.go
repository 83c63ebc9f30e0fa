package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"task-tracker/internal/models"
	"task-tracker/internal/registry"

	"github.com/jung-kurt/gofpdf"
)

// Source is the read side of the registry that a report needs.
type Source interface {
	ViewTasks() []registry.ProjectGroup
	AllTasks() []models.Task
}

// Formats lists the supported export formats.
var Formats = []string{"json", "csv", "pdf"}

// ProjectReport is one project and the full records of its tasks.
type ProjectReport struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Tasks       []models.Task `json:"tasks"`
}

// Build groups full task records by project, in the same order as ViewTasks.
func Build(src Source) []ProjectReport {
	byID := make(map[int]models.Task)
	for _, task := range src.AllTasks() {
		byID[task.ID] = task
	}
	groups := src.ViewTasks()
	out := make([]ProjectReport, 0, len(groups))
	for _, g := range groups {
		pr := ProjectReport{Name: g.Project.Name, Description: g.Project.Description, Tasks: []models.Task{}}
		for _, ref := range g.Tasks {
			if task, ok := byID[ref.ID]; ok {
				pr.Tasks = append(pr.Tasks, task)
			}
		}
		out = append(out, pr)
	}
	return out
}

// Export renders the grouped tasks as json, csv or pdf.
func Export(src Source, format string) ([]byte, error) {
	projects := Build(src)
	switch strings.ToLower(format) {
	case "json":
		return json.MarshalIndent(projects, "", "  ")
	case "csv":
		return exportCSV(projects)
	case "pdf":
		return exportPDF(projects)
	default:
		return nil, fmt.Errorf("unknown format %q (want %s)", format, strings.Join(Formats, "|"))
	}
}

func exportCSV(projects []ProjectReport) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"project", "id", "priority", "name", "description", "assignees", "deadline"})
	for _, p := range projects {
		for _, t := range p.Tasks {
			_ = w.Write([]string{p.Name, fmt.Sprint(t.ID), fmt.Sprint(t.Priority), t.Name, t.Description, strings.Join(t.Assignees, ";"), t.Deadline})
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return b.Bytes(), nil
}

func exportPDF(projects []ProjectReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task Report")
	pdf.Ln(12)
	for _, p := range projects {
		pdf.SetFont("Arial", "B", 12)
		pdf.MultiCell(0, 7, fmt.Sprintf("%s: %s", p.Name, p.Description), "0", "L", false)
		pdf.SetFont("Arial", "", 10)
		if len(p.Tasks) == 0 {
			pdf.MultiCell(0, 6, "  (no tasks)", "0", "L", false)
		}
		for _, t := range p.Tasks {
			line := fmt.Sprintf("  - %d: %s [priority %d, due %s] %s", t.ID, t.Name, t.Priority, t.Deadline, strings.Join(t.Assignees, ", "))
			pdf.MultiCell(0, 6, line, "0", "L", false)
		}
		pdf.Ln(3)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
