package models

import "time"

// Drug is an immutable catalog record. DrugName is unique ignoring case.
type Drug struct {
	ID               string    `json:"id"`
	DrugName         string    `json:"drugName"`
	Description      string    `json:"description"`
	Uses             []string  `json:"uses"`
	Indications      []string  `json:"indications"`
	SideEffects      []string  `json:"sideEffects"`
	Warnings         []string  `json:"warnings"`
	Photo            []byte    `json:"-"`
	PhotoContentType string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
}

// Normalize replaces nil list fields with empty slices.
func (d *Drug) Normalize() {
	for _, list := range []*[]string{&d.Uses, &d.Indications, &d.SideEffects, &d.Warnings} {
		if *list == nil {
			*list = []string{}
		}
	}
}
