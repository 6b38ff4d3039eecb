package service

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"taskboard/internal/common"
	"taskboard/internal/domain/model"
)

const (
	msgRequired = "This field is required."
	msgBlank    = "This field may not be blank."
	msgReadOnly = "This field is read-only."
)

// TaskInput is the client-writable view of a task. Nil fields were not
// supplied. The timestamps are captured only to reject them.
type TaskInput struct {
	Code        *string         `json:"code"`
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	CreatedAt   json.RawMessage `json:"created_at,omitempty"`
	UpdatedAt   json.RawMessage `json:"updated_at,omitempty"`
}

// normalize trims surrounding whitespace from every supplied string.
func (in TaskInput) normalize() TaskInput {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.TrimSpace(*s)
		return &v
	}
	in.Code = trim(in.Code)
	in.Name = trim(in.Name)
	in.Description = trim(in.Description)
	return in
}

func (in TaskInput) validateCreate() error {
	verr := &common.ValidationError{}

	switch {
	case in.Code == nil:
		verr.Add("code", msgRequired)
	case utf8.RuneCountInString(*in.Code) != model.TaskCodeLength:
		verr.Add("code", "Ensure this field has exactly 6 characters.")
	}

	if in.Name == nil {
		verr.Add("name", msgRequired)
	} else {
		validateName(verr, *in.Name)
	}

	in.validateReadOnly(verr)
	return verr.OrNil()
}

// validateUpdate ignores code. A full update (partial == false) requires name.
func (in TaskInput) validateUpdate(partial bool) error {
	verr := &common.ValidationError{}

	if in.Name != nil {
		validateName(verr, *in.Name)
	} else if !partial {
		verr.Add("name", msgRequired)
	}

	in.validateReadOnly(verr)
	return verr.OrNil()
}

func (in TaskInput) validateReadOnly(verr *common.ValidationError) {
	if len(in.CreatedAt) > 0 {
		verr.Add("created_at", msgReadOnly)
	}
	if len(in.UpdatedAt) > 0 {
		verr.Add("updated_at", msgReadOnly)
	}
}

func validateName(verr *common.ValidationError, name string) {
	if name == "" {
		verr.Add("name", msgBlank)
		return
	}
	if utf8.RuneCountInString(name) > model.TaskNameMaxLength {
		verr.Add("name", "Ensure this field has no more than 50 characters.")
	}
}
