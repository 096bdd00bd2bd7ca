package validation

import (
	"strings"

	"github.com/taskcore/task-tracker-api/internal/model"
)

func ValidateProjectCreate(d model.ProjectDraft) []Violation {
	var vs []Violation
	if strings.TrimSpace(d.Name) == "" {
		vs = append(vs, Violation{Field: "name", Code: "INVALID_NAME", Message: "project name is required"})
	}
	return vs
}

func ValidateProjectUpdate(p model.ProjectPatch) []Violation {
	var vs []Violation
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			vs = append(vs, Violation{Field: "name", Code: "INVALID_NAME", Message: "project name cannot be empty"})
		}
	} else if p.NameSet {
		vs = append(vs, Violation{Field: "name", Code: "INVALID_NAME", Message: "project name cannot be null"})
	}
	return vs
}
