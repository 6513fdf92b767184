package model

import "time"

// Review is a patient-submitted clinic review as stored in the
// `reviews` table. A writer may submit anonymously, in which case
// Author and Avatar hold fixed placeholder values; either way the
// account is only traceable through UserID, which is never exposed
// by the public endpoints.
//
// Fields:
//  ID        - opaque identifier ("rv_" prefix for submitted reviews).
//  ClinicID  - clinic the review belongs to.
//  UserID    - author account, empty for catalog reviews.
//  Author    - display name, or the anonymous placeholder.
//  Avatar    - single character avatar placeholder.
//  Age       - age bracket label, "非公開" for submissions.
//  Date      - visit date label (e.g. "2025-08-31").
//  Rating    - overall rating, 1..5.
//  Dept      - department visited.
//  DoctorID  - attending doctor, empty when not specified.
//  Title     - review headline.
//  Body      - review text.
//  Tags      - impression tags chosen by the writer.
//  Helpful   - number of distinct users who marked the review helpful.
//  DrRating  - doctor sub-rating, 0 when not given.
//  FacRating - facility sub-rating, 0 when not given.
//  WaitRate  - waiting-time sub-rating, 0 when not given.
//  Reply     - single official clinic reply, empty until answered.
type Review struct {
	ID        string    `json:"id"`
	ClinicID  string    `json:"clinic_id"`
	UserID    string    `json:"-"`
	Author    string    `json:"author"`
	Avatar    string    `json:"avatar"`
	Age       string    `json:"age"`
	Date      string    `json:"date"`
	Rating    int       `json:"rating"`
	Dept      string    `json:"dept"`
	DoctorID  string    `json:"doctor_id,omitempty"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Tags      []string  `json:"tags"`
	Helpful   int       `json:"helpful"`
	DrRating  int       `json:"dr_rating,omitempty"`
	FacRating int       `json:"fac_rating,omitempty"`
	WaitRate  int       `json:"wait_rating,omitempty"`
	Reply     string    `json:"reply,omitempty"`
	CreatedAt time.Time `json:"-"`
}

// ReviewReport is a moderation flag raised against a review. Reports
// are append-only; nothing resolves them yet, they
// only surface on the clinic dashboard.
type ReviewReport struct {
	ID             string    `json:"id"`
	ReviewID       string    `json:"review_id"`
	ClinicID       string    `json:"clinic_id"`
	ReporterUserID string    `json:"-"`
	Reason         string    `json:"reason"`
	CreatedAt      time.Time `json:"created_at"`
}
