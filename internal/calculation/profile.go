package calculation

import (
	"fmt"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
)

// RetirementAgePolicy supplies the statutory retirement age per gender
type RetirementAgePolicy interface {
	RetireAge(gender domain.Gender) (int, error)
}

// RetirementAgeTable is a RetirementAgePolicy backed by a fixed map
type RetirementAgeTable map[domain.Gender]int

// RetireAge looks up gender in the table
func (t RetirementAgeTable) RetireAge(gender domain.Gender) (int, error) {
	age, ok := t[gender]
	if !ok {
		return 0, fmt.Errorf("no retirement age configured for %q", gender)
	}
	return age, nil
}

// RetirementProfileResolver maps gender and age onto a RetirementProfile
type RetirementProfileResolver struct {
	ages RetirementAgePolicy
}

// NewRetirementProfileResolver creates a resolver over the given age policy
func NewRetirementProfileResolver(ages RetirementAgePolicy) *RetirementProfileResolver {
	return &RetirementProfileResolver{ages: ages}
}

// Resolve derives the profile. A worker already at or past retirement age
// gets YearsToRetire 0; rejecting that is the caller's decision.
func (r *RetirementProfileResolver) Resolve(gender domain.Gender, currentAge, currentYear int) (domain.RetirementProfile, error) {
	retireAge, err := r.ages.RetireAge(gender)
	if err != nil {
		return domain.RetirementProfile{}, err
	}
	yearsToRetire := retireAge - currentAge
	if yearsToRetire < 0 {
		yearsToRetire = 0
	}
	return domain.RetirementProfile{
		RetireAge:          retireAge,
		YearsToRetire:      yearsToRetire,
		RetireCalendarYear: currentYear + yearsToRetire,
	}, nil
}
