package model

import "fmt"

// Gender is one of a closed set of values.
type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
	Other  Gender = "Other"
)

// Genders lists the accepted values.
var Genders = []Gender{Male, Female, Other}

const (
	MinAge = 1
	MaxAge = 120
)

// PatientContext is the input for a single report. It is never persisted.
type PatientContext struct {
	Age    int
	Gender Gender
	Query  string
}

// Validate checks age bounds and gender membership.
func (p PatientContext) Validate() error {
	if p.Age < MinAge || p.Age > MaxAge {
		return fmt.Errorf("age must be between %d and %d, got %d", MinAge, MaxAge, p.Age)
	}
	for _, g := range Genders {
		if p.Gender == g {
			return nil
		}
	}
	return fmt.Errorf("unknown gender %q", p.Gender)
}
