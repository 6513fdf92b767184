package model

import "time"

// Clinic is the unified directory view of a medical facility. Both
// catalog clinics and operator-registered clinics are projected into
// this shape before being returned to browse and search endpoints,
// so patients never see two different kinds of clinic. Rating and
// ReviewCount are always recomputed from the current review set and
// are never stored.
//
// Fields:
//  ID           - opaque identifier ("clinic_" prefix for registered facilities).
//  Name         - full facility name.
//  Short        - short display name used in compact listings.
//  Address      - street address.
//  Lat, Lng     - map coordinates; zero when the operator never set them.
//  Tel          - contact phone number.
//  Hours        - free-form opening hours text.
//  Depts        - department names offered by the facility.
//  Rating       - mean review rating rounded to one decimal, 0 when unreviewed.
//  ReviewCount  - number of reviews backing Rating.
//  Wait         - typical waiting time label.
//  Parking      - parking available on site.
//  NightService - offers evening or night consultations.
//  FemaleDoctor - at least one female doctor on staff.
//  Online       - supports online consultations.
//  Verified     - identity verified by the platform (catalog clinics only).
//  Today        - accepting same-day visits.
//  LogoURL      - facility logo, may be empty.
//  Desc         - long description.
//  Access       - transit access notes.
//  Beds         - bed count, 0 for clinics without wards.
//  Founded      - founding year.
type Clinic struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Short        string   `json:"short"`
	Address      string   `json:"address"`
	Lat          float64  `json:"lat"`
	Lng          float64  `json:"lng"`
	Tel          string   `json:"tel"`
	Hours        string   `json:"hours"`
	Depts        []string `json:"depts"`
	Rating       float64  `json:"rating"`
	ReviewCount  int      `json:"review_count"`
	Wait         string   `json:"wait"`
	Parking      bool     `json:"parking"`
	NightService bool     `json:"night_service"`
	FemaleDoctor bool     `json:"female_doctor"`
	Online       bool     `json:"online"`
	Verified     bool     `json:"verified"`
	Today        bool     `json:"today"`
	LogoURL      string   `json:"logo_url,omitempty"`
	Desc         string   `json:"desc,omitempty"`
	Access       string   `json:"access,omitempty"`
	Beds         int      `json:"beds,omitempty"`
	Founded      int      `json:"founded,omitempty"`
}

// ClinicProfile is the operator-owned editable record backing a
// registered clinic, as stored in the `clinic_profiles` table. A
// clinic account owns at most one profile; saving again overwrites
// the existing row instead of creating a second facility.
type ClinicProfile struct {
	ID           string    // clinic_profiles.id
	OwnerUserID  string    // clinic_profiles.owner_user_id (unique)
	Name         string    // clinic_profiles.name
	Short        string    // clinic_profiles.short
	Address      string    // clinic_profiles.address
	Lat          float64   // clinic_profiles.lat
	Lng          float64   // clinic_profiles.lng
	Tel          string    // clinic_profiles.tel
	Hours        string    // clinic_profiles.hours
	Access       string    // clinic_profiles.access
	Desc         string    // clinic_profiles.description
	Depts        []string  // clinic_profiles.depts (JSON array column)
	Beds         int       // clinic_profiles.beds
	Founded      int       // clinic_profiles.founded
	Parking      bool      // clinic_profiles.parking
	NightService bool      // clinic_profiles.night_service
	FemaleDoctor bool      // clinic_profiles.female_doctor
	Online       bool      // clinic_profiles.online
	LogoURL      string    // clinic_profiles.logo_url
	UpdatedAt    time.Time // clinic_profiles.updated_at
}
