package eventfiles

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/starford/harmoni/internal/models"
)

// File is the document layout of a calendar file:
//
//	events:
//	  - date: 2026-03-19
//	    title: Idul Fitri 1447 H
//	    location: Masjid Istiqlal
//	    agama: Islam
type File struct {
	Events []models.Event `yaml:"events"`
}

func religionValues() []any {
	out := make([]any, len(models.Religions))
	for i, r := range models.Religions {
		out[i] = r
	}
	return out
}

func validateEvent(e *models.Event) error {
	return validation.ValidateStruct(e,
		validation.Field(&e.Date, validation.Required, validation.Date(models.DateLayout)),
		validation.Field(&e.Title, validation.Required),
		validation.Field(&e.Religion, validation.Required, validation.In(religionValues()...)),
	)
}

// Parse decodes a calendar file. The whole file is rejected when any event
// is invalid.
func Parse(data []byte) ([]models.Event, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("eventfiles: decode: %w", err)
	}
	for i := range f.Events {
		if err := validateEvent(&f.Events[i]); err != nil {
			return nil, fmt.Errorf("eventfiles: event %d: %w", i+1, err)
		}
	}
	if f.Events == nil {
		f.Events = []models.Event{}
	}
	return f.Events, nil
}
