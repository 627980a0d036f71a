package models

import "time"

// Faculty links a profile to its department and roll-number ranges.
type Faculty struct {
	ID         string    `db:"id" json:"id"`
	ProfileID  string    `db:"profile_id" json:"profile_id"`
	Department string    `db:"department" json:"department"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// FacultyStudentRange is an inclusive roll-number interval owned by a faculty
// member. Ranges may overlap; membership is a lexicographic comparison on the
// stored roll number.
type FacultyStudentRange struct {
	ID              string `db:"id" json:"id"`
	FacultyID       string `db:"faculty_id" json:"faculty_id"`
	StartRollNumber string `db:"start_roll_number" json:"start_roll_number"`
	EndRollNumber   string `db:"end_roll_number" json:"end_roll_number"`
}

// Contains reports whether the roll number falls inside the range, both ends
// inclusive.
func (r FacultyStudentRange) Contains(rollNumber string) bool {
	return rollNumber >= r.StartRollNumber && rollNumber <= r.EndRollNumber
}
