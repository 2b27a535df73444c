package experience

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ExperienceUpdateData is the payload of a profile edit: the full list of the
// user's work experiences plus accomplishments that point at one of them by
// position through TempWorkExperienceIndex.
type ExperienceUpdateData struct {
	WorkExperiences []WorkExperienceData `json:"work_experiences" validate:"dive"`
	Accomplishments []AccomplishmentData `json:"accomplishments" validate:"dive"`
}

type WorkExperienceData struct {
	ID              *uuid.UUID           `json:"id"`
	Title           string               `json:"title" validate:"notblank,max=255"`
	Company         string               `json:"company" validate:"notblank,max=255"`
	EmploymentType  string               `json:"employment_type" validate:"notblank,max=64"`
	IsCurrent       bool                 `json:"is_current"`
	StartDate       *string              `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate         *string              `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Location        *string              `json:"location" validate:"omitempty,max=255"`
	Description     *string              `json:"description"`
	JobSource       *string              `json:"job_source" validate:"omitempty,max=255"`
	SkillIDs        []uuid.UUID          `json:"skill_ids"`
	MediaURL        *string              `json:"media_url" validate:"omitempty,url"`
	Accomplishments []AccomplishmentData `json:"accomplishments" validate:"dive"`
}

type AccomplishmentData struct {
	ID                      *uuid.UUID `json:"id"`
	Title                   string     `json:"title" validate:"notblank,max=255"`
	Description             *string    `json:"description"`
	TempWorkExperienceIndex *int       `json:"temp_work_experience_index"`
}

// ValidationError names the first offending field of a submission using its
// JSON path, e.g. "accomplishments[2].temp_work_experience_index".
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ExperienceRef points at a work experience of the same submission by
// position. The zero value is not valid; use NewExperienceRef.
type ExperienceRef struct {
	index int
	valid bool
}

func NewExperienceRef(index, count int) (ExperienceRef, error) {
	if index < 0 || index >= count {
		return ExperienceRef{}, fmt.Errorf("index %d out of range [0, %d)", index, count)
	}
	return ExperienceRef{index: index, valid: true}, nil
}

func (r ExperienceRef) Index() int { return r.index }

func (r ExperienceRef) Valid() bool { return r.valid }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Validate checks the submission without producing a batch.
func (u *ExperienceUpdateData) Validate() error {
	_, err := u.Bind()
	return err
}

// Bind validates the submission and resolves it into a Batch: one record per
// work experience, each carrying its nested accomplishments followed by the
// top-level accomplishments that reference it.
func (u *ExperienceUpdateData) Bind() (*Batch, error) {
	if err := validate.Struct(u); err != nil {
		return nil, fromValidatorError(err)
	}

	count := len(u.WorkExperiences)
	batch := &Batch{Experiences: make([]WorkExperience, count)}
	seenExperience := make(map[uuid.UUID]struct{}, count)
	seenAccomplishment := make(map[uuid.UUID]struct{})

	for i, in := range u.WorkExperiences {
		path := fmt.Sprintf("work_experiences[%d]", i)

		rec, err := in.toRecord(path)
		if err != nil {
			return nil, err
		}
		rec.Position = i
		if in.ID != nil {
			if _, dup := seenExperience[*in.ID]; dup {
				return nil, &ValidationError{Field: path + ".id", Reason: "duplicate id in submission"}
			}
			seenExperience[*in.ID] = struct{}{}
		}

		for j, a := range in.Accomplishments {
			apath := fmt.Sprintf("%s.accomplishments[%d]", path, j)
			if a.TempWorkExperienceIndex != nil && *a.TempWorkExperienceIndex != i {
				return nil, &ValidationError{Field: apath + ".temp_work_experience_index", Reason: fmt.Sprintf("must be %d or omitted for a nested accomplishment", i)}
			}
			if err := checkDuplicate(seenAccomplishment, a.ID, apath); err != nil {
				return nil, err
			}
			rec.Accomplishments = append(rec.Accomplishments, a.toRecord(len(rec.Accomplishments)))
		}
		batch.Experiences[i] = rec
	}

	batch.topLevel = make([]slot, len(u.Accomplishments))
	for k, a := range u.Accomplishments {
		path := fmt.Sprintf("accomplishments[%d]", k)
		if a.TempWorkExperienceIndex == nil {
			return nil, &ValidationError{Field: path + ".temp_work_experience_index", Reason: "is required for a top-level accomplishment"}
		}
		ref, err := NewExperienceRef(*a.TempWorkExperienceIndex, count)
		if err != nil {
			return nil, &ValidationError{Field: path + ".temp_work_experience_index", Reason: err.Error()}
		}
		if err := checkDuplicate(seenAccomplishment, a.ID, path); err != nil {
			return nil, err
		}
		parent := &batch.Experiences[ref.Index()]
		pos := len(parent.Accomplishments)
		parent.Accomplishments = append(parent.Accomplishments, a.toRecord(pos))
		batch.topLevel[k] = slot{ref: ref, pos: pos}
	}

	return batch, nil
}

func (in WorkExperienceData) toRecord(path string) (WorkExperience, error) {
	start, err := parseDate(in.StartDate)
	if err != nil {
		return WorkExperience{}, &ValidationError{Field: path + ".start_date", Reason: err.Error()}
	}
	end, err := parseDate(in.EndDate)
	if err != nil {
		return WorkExperience{}, &ValidationError{Field: path + ".end_date", Reason: err.Error()}
	}
	if in.IsCurrent && end != nil {
		return WorkExperience{}, &ValidationError{Field: path + ".end_date", Reason: "must be null when is_current is true"}
	}
	if start != nil && end != nil && end.Before(*start) {
		return WorkExperience{}, &ValidationError{Field: path + ".end_date", Reason: "must not be before start_date"}
	}

	rec := WorkExperience{
		Title:           strings.TrimSpace(in.Title),
		Company:         strings.TrimSpace(in.Company),
		EmploymentType:  strings.TrimSpace(in.EmploymentType),
		IsCurrent:       in.IsCurrent,
		StartDate:       start,
		EndDate:         end,
		Location:        in.Location,
		Description:     in.Description,
		JobSource:       in.JobSource,
		MediaURL:        in.MediaURL,
		SkillIDs:        dedupe(in.SkillIDs),
		Accomplishments: []Accomplishment{},
	}
	if in.ID != nil {
		rec.ID = *in.ID
	}
	return rec, nil
}

func (a AccomplishmentData) toRecord(position int) Accomplishment {
	rec := Accomplishment{
		Position:    position,
		Title:       strings.TrimSpace(a.Title),
		Description: a.Description,
	}
	if a.ID != nil {
		rec.ID = *a.ID
	}
	return rec
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, *s)
	if err != nil {
		return nil, errors.New("must be a date in YYYY-MM-DD format")
	}
	return &t, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func checkDuplicate(seen map[uuid.UUID]struct{}, id *uuid.UUID, path string) error {
	if id == nil {
		return nil
	}
	if _, dup := seen[*id]; dup {
		return &ValidationError{Field: path + ".id", Reason: "duplicate id in submission"}
	}
	seen[*id] = struct{}{}
	return nil
}

func fromValidatorError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Field: "body", Reason: err.Error()}
	}
	fe := verrs[0]
	field := fe.Namespace()
	// drop the root type name
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	return &ValidationError{Field: field, Reason: reasonFor(fe)}
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank", "required":
		return "is required"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed '%s' validation", fe.Tag())
	}
}
