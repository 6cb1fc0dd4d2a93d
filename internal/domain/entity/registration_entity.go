package entity

import "strings"

// Registration is the writable record captured by the update form.
// Every field is required; Email must look like an address.
type Registration struct {
	FirstName        string `json:"firstName" form:"firstName" binding:"notblank"`
	PaternalLastName string `json:"paternalLastName" form:"paternalLastName" binding:"notblank"`
	MaternalLastName string `json:"maternalLastName" form:"maternalLastName" binding:"notblank"`
	Email            string `json:"email" form:"email" binding:"notblank,looseemail"`
	CI               string `json:"ci" form:"ci" binding:"notblank"`
}

// Normalize trims surrounding whitespace from every field.
func (r Registration) Normalize() Registration {
	return Registration{
		FirstName:        strings.TrimSpace(r.FirstName),
		PaternalLastName: strings.TrimSpace(r.PaternalLastName),
		MaternalLastName: strings.TrimSpace(r.MaternalLastName),
		Email:            strings.TrimSpace(r.Email),
		CI:               strings.TrimSpace(r.CI),
	}
}

// Fields returns the record as ordered name/value pairs using the wire names.
func (r Registration) Fields() [][2]string {
	return [][2]string{
		{"firstName", r.FirstName},
		{"paternalLastName", r.PaternalLastName},
		{"maternalLastName", r.MaternalLastName},
		{"email", r.Email},
		{"ci", r.CI},
	}
}

// FullName joins first name and both surnames.
func (r Registration) FullName() string {
	return strings.Join(strings.Fields(r.FirstName+" "+r.PaternalLastName+" "+r.MaternalLastName), " ")
}
