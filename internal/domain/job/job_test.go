package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJob_Validate(t *testing.T) {
	low, high := 50000, 90000

	j := &Job{Title: "Go Engineer", EmploymentType: EmploymentFullTime, SalaryMin: &low, SalaryMax: &high}
	assert.NoError(t, j.Validate())

	j.SalaryMin, j.SalaryMax = &high, &low
	assert.ErrorIs(t, j.Validate(), ErrInvalidSalaryBounds)

	j.SalaryMin, j.SalaryMax = nil, nil
	j.EmploymentType = "gig"
	assert.ErrorIs(t, j.Validate(), ErrInvalidEmployment)

	j.EmploymentType = EmploymentContract
	j.Title = " "
	assert.ErrorIs(t, j.Validate(), ErrTitleRequired)
}
