package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"

	"registration/domain"
)

// State is the form's lifecycle as a tagged value, so that illegal
// combinations such as "submitting while checking a duplicate" cannot be
// represented.
type State int

const (
	StateEditing State = iota
	StateCheckingDuplicate
	StateValidating
	StateSubmitting
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateCheckingDuplicate:
		return "checking-duplicate"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// FormSession drives one registration form: field edits, the
// blur-triggered duplicate check, validation, and submission. Confirm is
// consulted when the user submits over an active duplicate warning; the
// default declines, so a flagged duplicate is never submitted silently.
type FormSession struct {
	api *Client

	state State

	Fields           domain.Registration
	FieldErrors      map[string]string
	DuplicateWarning string
	Existing         *domain.ExistingMember
	SubmitError      string

	Confirm func(existing *domain.ExistingMember) bool
}

func NewFormSession(api *Client) *FormSession {
	return &FormSession{
		api:         api,
		state:       StateEditing,
		FieldErrors: map[string]string{},
		Confirm: func(*domain.ExistingMember) bool {
			return false
		},
	}
}

func (f *FormSession) State() State {
	return f.state
}

// SetField updates one field, clears that field's error and, when the
// phone changes, drops any duplicate warning tied to the old value.
func (f *FormSession) SetField(field, value string) {
	if f.state != StateEditing {
		return
	}

	switch field {
	case "fullName":
		f.Fields.FullName = value
	case "email":
		f.Fields.Email = value
	case "phone":
		f.Fields.Phone = value
	case "homeAddress":
		f.Fields.HomeAddress = value
	case "gender":
		f.Fields.Gender = value
	case "dateOfBirth":
		f.Fields.DateOfBirth = value
	case "maritalStatus":
		f.Fields.MaritalStatus = value
	case "society":
		f.Fields.Society = value
	}

	delete(f.FieldErrors, field)

	if field == "phone" && f.DuplicateWarning != "" {
		f.DuplicateWarning = ""
		f.Existing = nil
	}
}

// PhoneBlur runs one duplicate check when the phone is well-formed. The
// warning it may raise gates submission only through the Confirm prompt;
// the check itself never blocks anything.
func (f *FormSession) PhoneBlur(ctx context.Context) {
	if f.state != StateEditing {
		return
	}
	if f.Fields.Phone == "" || !domain.ValidPhone(f.Fields.Phone) {
		return
	}

	f.state = StateCheckingDuplicate
	f.DuplicateWarning = ""
	f.Existing = nil

	result := f.api.CheckDuplicate(ctx, f.Fields.Phone)
	if result.IsDuplicate && result.ExistingMember != nil {
		f.Existing = result.ExistingMember
		f.DuplicateWarning = fmt.Sprintf(
			"This phone number is already registered for %s. Please contact the church office if you need to update your information.",
			result.ExistingMember.Name,
		)
	}

	f.state = StateEditing
}

// Submit validates every field, honors an active duplicate warning via
// Confirm, and posts the registration. It reports whether the session
// reached Submitted; on any failure the session returns to Editing with
// the field values preserved.
func (f *FormSession) Submit(ctx context.Context) bool {
	if f.state != StateEditing {
		return false
	}

	f.SubmitError = ""
	f.state = StateValidating

	if errs := f.validate(); len(errs) > 0 {
		f.FieldErrors = errs
		f.state = StateEditing
		return false
	}

	if f.DuplicateWarning != "" && !f.Confirm(f.Existing) {
		f.state = StateEditing
		return false
	}

	f.state = StateSubmitting

	result := f.api.Submit(ctx, &f.Fields)
	if !result.Success {
		f.SubmitError = result.Message
		f.state = StateEditing
		return false
	}

	f.state = StateSubmitted
	return true
}

// Reset leaves the terminal Submitted state and clears the form.
func (f *FormSession) Reset() {
	f.Fields = domain.Registration{}
	f.FieldErrors = map[string]string{}
	f.DuplicateWarning = ""
	f.Existing = nil
	f.SubmitError = ""
	f.state = StateEditing
}

// validate collects every violation before rejecting, one message per
// field.
func (f *FormSession) validate() map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(f.Fields.FullName) == "" {
		errs["fullName"] = "Full name is required"
	}

	if strings.TrimSpace(f.Fields.Phone) == "" {
		errs["phone"] = "Phone number is required"
	} else if !domain.ValidPhone(f.Fields.Phone) {
		errs["phone"] = "Please enter a valid 11-digit phone number or 13-digit number with +234"
	}

	if strings.TrimSpace(f.Fields.HomeAddress) == "" {
		errs["homeAddress"] = "Home address is required"
	}

	if f.Fields.Email != "" && !govalidator.IsEmail(f.Fields.Email) {
		errs["email"] = "Please enter a valid email address"
	}

	if f.Fields.DateOfBirth == "" {
		errs["dateOfBirth"] = "Date of birth is required"
	}

	if f.Fields.Society == "" {
		errs["society"] = "Please select a society interest"
	}

	return errs
}
