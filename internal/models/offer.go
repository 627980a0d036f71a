package models

import "time"

// OfferStatus is the student's response state on an offer letter.
type OfferStatus string

const (
	OfferPending  OfferStatus = "Pending"
	OfferAccepted OfferStatus = "Accepted"
	OfferDeclined OfferStatus = "Declined"
)

// Response reports whether the status is a valid student response.
func (s OfferStatus) Response() bool {
	return s == OfferAccepted || s == OfferDeclined
}

// OfferLetter records an offer extended to a student for an application.
type OfferLetter struct {
	ID                string      `db:"id" json:"id"`
	ApplicationID     string      `db:"application_id" json:"application_id"`
	StudentID         string      `db:"student_id" json:"student_id"`
	Position          string      `db:"position" json:"position"`
	CTC               string      `db:"ctc" json:"ctc"`
	OfferStatus       OfferStatus `db:"offer_status" json:"offer_status"`
	StudentResponseAt *time.Time  `db:"student_response_at" json:"student_response_at,omitempty"`
	IssuedAt          time.Time   `db:"issued_at" json:"issued_at"`
}

// OfferLetterDetail joins the offer with the data printed on the letter.
type OfferLetterDetail struct {
	OfferLetter
	StudentName string `db:"student_name" json:"student_name"`
	RollNumber  string `db:"roll_number" json:"roll_number"`
	CompanyName string `db:"company_name" json:"company_name"`
}
