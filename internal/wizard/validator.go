package wizard

import (
	"strings"

	"github.com/vivario/reservation-service/internal/normalize"
)

// Message keys for per-field issues. Translation happens at the edge; the
// core only ever emits keys.
const (
	IssueNameRequired       = "participant.name.required"
	IssueNameInvalid        = "participant.name.invalid"
	IssuePhoneRequired      = "participant.phone.required"
	IssuePhoneInvalid       = "participant.phone.invalid"
	IssueBirthDateRequired  = "participant.birth_date.required"
	IssueBirthDateInvalid   = "participant.birth_date.invalid"
	IssueNationalIDRequired = "participant.national_id.required"
	IssueNationalIDInvalid  = "participant.national_id.invalid"
	IssueGenderRequired     = "participant.gender.required"
	IssueGenderInvalid      = "participant.gender.invalid"
)

const minPhoneDigits = 10

// Validator checks participant rows. The national-ID checksum is an external
// collaborator and is injected so tests can substitute it.
type Validator struct {
	CheckNationalID func(digits string) bool
}

// PersonStarted reports whether the user touched any field of the row.
func (v Validator) PersonStarted(p ParticipantDraft) bool {
	return strings.TrimSpace(p.Name) != "" ||
		strings.TrimSpace(p.Phone) != "" ||
		strings.TrimSpace(p.BirthDate) != "" ||
		strings.TrimSpace(p.NationalID) != "" ||
		strings.TrimSpace(p.Gender) != ""
}

// PersonValid reports whether every field of the row passes its rule.
func (v Validator) PersonValid(p ParticipantDraft) bool {
	if len(strings.TrimSpace(p.Name)) <= 1 {
		return false
	}
	if len(normalize.DigitsOnly(p.Phone)) < minPhoneDigits {
		return false
	}
	if normalize.ToISOIfPossible(p.BirthDate) == "" {
		return false
	}
	if !v.CheckNationalID(normalize.DigitsOnly(p.NationalID)) {
		return false
	}
	return Gender(strings.TrimSpace(p.Gender)).Known()
}

// PersonPartial is the "started but not submittable" state that blocks the
// post-confirmation toggle.
func (v Validator) PersonPartial(p ParticipantDraft) bool {
	return v.PersonStarted(p) && !v.PersonValid(p)
}

// PersonIssues lists the row's problems in presentation order: name, phone,
// birth date, national ID, gender. Each category contributes at most one
// key: "required" when empty, otherwise the field-specific "invalid".
func (v Validator) PersonIssues(p ParticipantDraft) []string {
	var issues []string

	name := strings.TrimSpace(p.Name)
	switch {
	case name == "":
		issues = append(issues, IssueNameRequired)
	case len(name) <= 1:
		issues = append(issues, IssueNameInvalid)
	}

	switch phone := normalize.DigitsOnly(p.Phone); {
	case strings.TrimSpace(p.Phone) == "":
		issues = append(issues, IssuePhoneRequired)
	case len(phone) < minPhoneDigits:
		issues = append(issues, IssuePhoneInvalid)
	}

	switch {
	case strings.TrimSpace(p.BirthDate) == "":
		issues = append(issues, IssueBirthDateRequired)
	case normalize.ToISOIfPossible(p.BirthDate) == "":
		issues = append(issues, IssueBirthDateInvalid)
	}

	switch {
	case strings.TrimSpace(p.NationalID) == "":
		issues = append(issues, IssueNationalIDRequired)
	case !v.CheckNationalID(normalize.DigitsOnly(p.NationalID)):
		issues = append(issues, IssueNationalIDInvalid)
	}

	switch gender := strings.TrimSpace(p.Gender); {
	case gender == "":
		issues = append(issues, IssueGenderRequired)
	case !Gender(gender).Known():
		issues = append(issues, IssueGenderInvalid)
	}

	return issues
}

// firstInvalid returns the 1-based index and first issue of the first row
// failing PersonValid. ok is false when every row is valid.
func (v Validator) firstInvalid(participants []ParticipantDraft) (index int, issue string, ok bool) {
	for i, p := range participants {
		if !v.PersonValid(p) {
			issues := v.PersonIssues(p)
			if len(issues) == 0 {
				// valid-by-issues but invalid-by-rule cannot happen; guard anyway
				return i + 1, IssueNameRequired, true
			}
			return i + 1, issues[0], true
		}
	}
	return 0, "", false
}

// firstPartial is firstInvalid restricted to rows the user has started.
func (v Validator) firstPartial(participants []ParticipantDraft) (index int, issue string, ok bool) {
	for i, p := range participants {
		if v.PersonPartial(p) {
			issues := v.PersonIssues(p)
			if len(issues) == 0 {
				return i + 1, IssueNameRequired, true
			}
			return i + 1, issues[0], true
		}
	}
	return 0, "", false
}
