package experience

import "github.com/google/uuid"

// Batch is a validated submission ready to be persisted as a unit.
type Batch struct {
	Experiences []WorkExperience
	topLevel    []slot
}

// slot locates a top-level accomplishment inside the batch.
type slot struct {
	ref ExperienceRef
	pos int
}

// AssignIDs stamps the owner on every record and gives a fresh id to every
// record submitted without one.
func (b *Batch) AssignIDs(userID uuid.UUID, newID func() uuid.UUID) {
	for i := range b.Experiences {
		exp := &b.Experiences[i]
		exp.UserID = userID
		if exp.ID == uuid.Nil {
			exp.ID = newID()
		}
		for j := range exp.Accomplishments {
			acc := &exp.Accomplishments[j]
			if acc.ID == uuid.Nil {
				acc.ID = newID()
			}
			acc.WorkExperienceID = exp.ID
		}
	}
}

func (b *Batch) PersistedIDs() PersistedIDs {
	out := PersistedIDs{
		WorkExperiences: make([]PersistedExperience, len(b.Experiences)),
		Accomplishments: make([]uuid.UUID, len(b.topLevel)),
	}
	for i, exp := range b.Experiences {
		ids := make([]uuid.UUID, len(exp.Accomplishments))
		for j, acc := range exp.Accomplishments {
			ids[j] = acc.ID
		}
		out.WorkExperiences[i] = PersistedExperience{ID: exp.ID, AccomplishmentIDs: ids}
	}
	for k, s := range b.topLevel {
		out.Accomplishments[k] = b.Experiences[s.ref.Index()].Accomplishments[s.pos].ID
	}
	return out
}
