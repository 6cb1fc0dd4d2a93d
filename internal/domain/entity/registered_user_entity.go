package entity

// RegisteredUser is a registration as stored in the sheet, with its row identifier.
type RegisteredUser struct {
	ID string `json:"id"`
	Registration
}
