package wizard

// ParticipantStats buckets valid participants for capacity reconciliation.
// The stored enum is richer than the capacity model: FEMALE counts toward
// the female bucket, everything else (MALE, OTHER, NOT_INFORMED) toward the
// male bucket.
type ParticipantStats struct {
	Male   int
	Female int
	Total  int
}

// Stats classifies every valid participant. Unfinished or invalid rows are
// excluded. Under post-confirmation deferral no reconciliation is required,
// so the stats are forced to zero.
func (m Machine) Stats(d *ReservationDraft) ParticipantStats {
	if d.AllowPostConfirmation {
		return ParticipantStats{}
	}
	var stats ParticipantStats
	for _, p := range d.Participants {
		if !m.Validator.PersonValid(p) {
			continue
		}
		if Gender(p.Gender) == GenderFemale {
			stats.Female++
		} else {
			stats.Male++
		}
		stats.Total++
	}
	return stats
}

// RequirementsMet reports whether every cart experience has a sufficient
// capacity adjustment. Partial satisfaction is not allowed: one failing item
// fails the whole check.
func (m Machine) RequirementsMet(cart []CartItem, d *ReservationDraft) bool {
	_, met := requirementsMet(cart, d, m.Stats(d))
	return met
}

// requirementsMet returns the name of the first deficient experience, or
// met=true when all pass. An item passes when an adjustment exists, books at
// least one person, and covers both gender buckets whenever participants
// are declared.
func requirementsMet(cart []CartItem, d *ReservationDraft, stats ParticipantStats) (failing string, met bool) {
	for _, item := range cart {
		adj, ok := d.AdjustmentFor(item.ExperienceID)
		if !ok {
			return item.Name, false
		}
		if adj.Men+adj.Women < 1 {
			return item.Name, false
		}
		if stats.Total > 0 && (adj.Men < stats.Male || adj.Women < stats.Female) {
			return item.Name, false
		}
	}
	return "", true
}
