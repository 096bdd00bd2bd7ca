package validation

import "github.com/taskcore/task-tracker-api/internal/model"

// ValidateTaskCreate checks a creation payload. Violations come back in
// declaration order: title, description, status, dueDate.
func ValidateTaskCreate(d model.TaskDraft) []Violation {
	var vs []Violation
	vs = append(vs, titleViolations(d.Title, true)...)
	if d.Description != nil {
		vs = append(vs, descriptionViolations(*d.Description)...)
	}
	if d.Status != nil {
		vs = append(vs, statusViolations(*d.Status, model.ValidStatus)...)
	}
	if d.DueDate != nil {
		vs = append(vs, dueDateViolations(*d.DueDate)...)
	}
	return vs
}

// ValidateTaskUpdate checks only the fields present in the patch. An explicit
// null clears description/dueDate and is always legal; title and status are
// not clearable, so null there is a violation.
func ValidateTaskUpdate(p model.TaskPatch) []Violation {
	var vs []Violation
	if p.Title != nil {
		vs = append(vs, titleViolations(*p.Title, false)...)
	} else if p.TitleSet {
		vs = append(vs, Violation{Field: "title", Code: "INVALID_TITLE", Message: "title cannot be null"})
	}
	if p.DescriptionSet && p.Description != nil {
		vs = append(vs, descriptionViolations(*p.Description)...)
	}
	if p.Status != nil {
		vs = append(vs, statusViolations(*p.Status, model.ValidStatus)...)
	} else if p.StatusSet {
		vs = append(vs, Violation{Field: "status", Code: "INVALID_STATUS", Message: "status cannot be null"})
	}
	if p.DueDateSet && p.DueDate != nil {
		vs = append(vs, dueDateViolations(*p.DueDate)...)
	}
	return vs
}
