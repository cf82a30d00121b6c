package cli

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/iudanet/caresync/internal/models"
)

const headerTemplate = `
ID:       {{.ID}}
Version:  {{.UUID}}
Created:  {{.CreatedDate.Format "2006-01-02 15:04"}}
Updated:  {{.UpdatedDate.Format "2006-01-02 15:04"}}
{{- if .Tags }}
Tags:     {{join .Tags ", "}}
{{- end}}
`

const patientTemplate = `
=== Patient ===
Name:      {{.Name}}
{{- if .Birthday }}
Birthday:  {{.Birthday.Format "2006-01-02"}}
{{- end}}
{{- if .Sex }}
Sex:       {{.Sex}}
{{- end}}
{{- if .Allergies }}
Allergies: {{join .Allergies ", "}}
{{- end}}
`

const carePlanTemplate = `
=== Care Plan ===
Title:    {{.Title}}
{{- if .PatientUUID }}
Patient:  {{.PatientUUID}}
{{- end}}
`

const contactTemplate = `
=== Contact ===
Name:         {{.Name}}
{{- if .Role }}
Role:         {{.Role}}
{{- end}}
{{- if .Organization }}
Organization: {{.Organization}}
{{- end}}
{{- if .PhoneNumbers }}
Phone:        {{join .PhoneNumbers ", "}}
{{- end}}
{{- if .EmailAddresses }}
Email:        {{join .EmailAddresses ", "}}
{{- end}}
`

const taskTemplate = `
=== Task ===
Title:        {{.Title}}
{{- if .Instructions }}
Instructions: {{.Instructions}}
{{- end}}
{{- range .Schedule.Elements }}
Schedule:     from {{.Start.Format "2006-01-02"}}{{if .IntervalDays}} every {{.IntervalDays}} day(s){{end}}
{{- end}}
`

const outcomeTemplate = `
=== Outcome ===
Task:       {{.TaskUUID}}
Occurrence: {{.TaskOccurrenceIndex}}
{{- range .Values }}
Value:      {{.Value}}{{if .Units}} {{.Units}}{{end}}
{{- end}}
`

var templates = map[models.EntityType]*template.Template{
	models.EntityTypePatient:  mustTemplate("patient", patientTemplate),
	models.EntityTypeCarePlan: mustTemplate("carePlan", carePlanTemplate),
	models.EntityTypeContact:  mustTemplate("contact", contactTemplate),
	models.EntityTypeTask:     mustTemplate("task", taskTemplate),
	models.EntityTypeOutcome:  mustTemplate("outcome", outcomeTemplate),
}

var header = mustTemplate("header", headerTemplate)

func mustTemplate(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(template.FuncMap{
		"join": strings.Join,
	}).Parse(text))
}

// show выводит текущую версию записи
func (c *Cli) show(e models.Entity) error {
	tmpl, ok := templates[e.Type]
	if !ok {
		return fmt.Errorf("%w: unknown type %q", models.ErrInvalidEntity, e.Type)
	}

	var payload any
	switch e.Type {
	case models.EntityTypePatient:
		payload = e.Patient
	case models.EntityTypeCarePlan:
		payload = e.CarePlan
	case models.EntityTypeContact:
		payload = e.Contact
	case models.EntityTypeTask:
		payload = e.Task
	default:
		payload = e.Outcome
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, payload); err != nil {
		return fmt.Errorf("failed to render %s: %w", e.Type, err)
	}
	if err := header.Execute(&buf, e.Header()); err != nil {
		return fmt.Errorf("failed to render %s: %w", e.Type, err)
	}

	if _, err := c.io.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
