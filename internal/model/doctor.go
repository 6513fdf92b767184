package model

import "time"

// Doctor describes a physician attached to a clinic. Catalog doctors
// and operator-added roster entries share this shape; roster rows are
// stored in the `clinic_doctors` table with a "doc_" id prefix.
//
// Fields:
//  ID          - opaque identifier.
//  ClinicID    - clinic the doctor works at.
//  Name        - physician name.
//  Title       - position such as 院長 or 医師.
//  Dept        - primary department.
//  Exp         - years of experience.
//  Edu         - alma mater, may be empty for roster entries.
//  Certs       - board certifications.
//  Specialties - specialty areas.
//  Bio         - short biography.
//  Photo       - single character used as the portrait placeholder.
//  Female      - used by the female-doctor search filter.
//  Rating      - catalog doctor rating; roster doctors start at 0.
//  RatingCnt   - number of ratings backing Rating.
//  CreatedAt   - roster registration time, zero for catalog doctors.
type Doctor struct {
	ID          string    `json:"id"`
	ClinicID    string    `json:"clinic_id"`
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Dept        string    `json:"dept"`
	Exp         int       `json:"exp"`
	Edu         string    `json:"edu,omitempty"`
	Certs       []string  `json:"certs,omitempty"`
	Specialties []string  `json:"specialties"`
	Bio         string    `json:"bio"`
	Photo       string    `json:"photo"`
	Female      bool      `json:"female"`
	Rating      float64   `json:"rating"`
	RatingCnt   int       `json:"rating_cnt"`
	CreatedAt   time.Time `json:"-"`
}
