package model

import "time"

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ProjectDraft struct {
	Name        string
	Description *string
}

type ProjectPatch struct {
	Name           *string
	NameSet        bool
	Description    *string
	DescriptionSet bool
}

func (p ProjectPatch) Empty() bool {
	return p.Name == nil && !p.NameSet && !p.DescriptionSet
}
