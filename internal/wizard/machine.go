package wizard

import "fmt"

// Gate-level message keys.
const (
	KeyParticipantInvalid = "wizard.participant_invalid"
	KeyFillRequired       = "wizard.fill_required_fields"
	KeyCapacityShort      = "wizard.experience_capacity_short"
	KeyMissingDates       = "wizard.experience_missing_dates"
)

// GateError is a refused transition or toggle. It names the step the user
// should be routed to and carries the structured params the translation
// layer needs. Exactly one GateError is produced per refused action.
type GateError struct {
	Step       Step   // deficient step
	Key        string // gate message key
	Index      int    // 1-based participant index, 0 when not participant-related
	IssueKey   string // first field issue of that participant, "" otherwise
	Experience string // offending experience name, "" otherwise
}

func (e *GateError) Error() string {
	switch {
	case e.Index > 0:
		return fmt.Sprintf("%s: participant %d: %s", e.Key, e.Index, e.IssueKey)
	case e.Experience != "":
		return fmt.Sprintf("%s: %s", e.Key, e.Experience)
	default:
		return e.Key
	}
}

// Machine drives the two-step wizard flow over a ReservationDraft.
type Machine struct {
	Validator Validator
}

// participantsGate is the shared guard for Next, Finish and the deferral
// check: deferral bypasses it entirely, otherwise the list must be non-empty
// and every row valid.
func (m Machine) participantsGate(d *ReservationDraft) *GateError {
	if d.AllowPostConfirmation {
		return nil
	}
	if idx, issue, found := m.Validator.firstInvalid(d.Participants); found {
		return &GateError{Step: StepPeople, Key: KeyParticipantInvalid, Index: idx, IssueKey: issue}
	}
	if len(d.Participants) == 0 {
		return &GateError{Step: StepPeople, Key: KeyFillRequired}
	}
	return nil
}

// Next moves from People to Experiences when the participant gate passes.
func (m Machine) Next(d *ReservationDraft) error {
	if d.Step != StepPeople {
		return nil
	}
	if gateErr := m.participantsGate(d); gateErr != nil {
		return gateErr
	}
	d.Step = StepExperiences
	return nil
}

// Back returns to the People step unconditionally.
func (m Machine) Back(d *ReservationDraft) {
	d.Step = StepPeople
}

// ToggleDeferral switches post-confirmation mode. Turning it on is refused
// while any row is partially filled, so input the user has started is never
// silently discarded.
func (m Machine) ToggleDeferral(d *ReservationDraft, on bool) error {
	if on {
		if idx, issue, found := m.Validator.firstPartial(d.Participants); found {
			return &GateError{Step: StepPeople, Key: KeyParticipantInvalid, Index: idx, IssueKey: issue}
		}
	}
	d.AllowPostConfirmation = on
	return nil
}

// FinishGate re-checks everything before submission: the participant gate
// (step 1's result is not trusted to still hold) and the capacity
// reconciliation against the current cart.
func (m Machine) FinishGate(d *ReservationDraft, cart []CartItem) error {
	if gateErr := m.participantsGate(d); gateErr != nil {
		return gateErr
	}
	stats := m.Stats(d)
	if name, met := requirementsMet(cart, d, stats); !met {
		return &GateError{Step: StepExperiences, Key: KeyCapacityShort, Experience: name}
	}
	return nil
}
