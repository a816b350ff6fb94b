package doctor

import "encoding/json"

// Profile is the canonical doctor identity. It is always derived from
// the server payload through the allow-list mapping below, never
// hand-constructed; unknown server fields are dropped and missing
// optional fields stay at their zero values.
type Profile struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	ProfileImage     string  `json:"profile_image"`
	SpecializationID int     `json:"specialization_id"`
	ExperienceYears  int     `json:"experience_years"`
	Qualification    string  `json:"qualification"`
	Rating           float64 `json:"rating"`
	Gender           string  `json:"gender"`
	BloodGroup       string  `json:"blood_group"`
	Address          string  `json:"address"`
	DOB              string  `json:"dob"`
	ClinicID         int     `json:"clinic_id"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

// flexID accepts an id sent as either a JSON number or a string.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// profilePayload mirrors the server's doctor-edit shape. The id may
// arrive as a number or a string.
type profilePayload struct {
	ID               flexID      `json:"id"`
	Name             string      `json:"name"`
	Email            string      `json:"email"`
	Phone            string      `json:"phone"`
	ProfileImage     string      `json:"profile_image"`
	SpecializationID int         `json:"specialization_id"`
	ExperienceYears  int         `json:"experience_years"`
	Qualification    string      `json:"qualification"`
	Rating           float64     `json:"rating"`
	Gender           string      `json:"gender"`
	BloodGroup       string      `json:"blood_group"`
	Address          string      `json:"address"`
	DOB              string      `json:"dob"`
	ClinicID         int         `json:"clinic_id"`
	CreatedAt        string      `json:"created_at"`
	UpdatedAt        string      `json:"updated_at"`
}

func (p profilePayload) toProfile() *Profile {
	return &Profile{
		ID:               string(p.ID),
		Name:             p.Name,
		Email:            p.Email,
		Phone:            p.Phone,
		ProfileImage:     p.ProfileImage,
		SpecializationID: p.SpecializationID,
		ExperienceYears:  p.ExperienceYears,
		Qualification:    p.Qualification,
		Rating:           p.Rating,
		Gender:           p.Gender,
		BloodGroup:       p.BloodGroup,
		Address:          p.Address,
		DOB:              p.DOB,
		ClinicID:         p.ClinicID,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// UpdateRequest carries editable profile fields. Empty fields are sent
// as-is; the server treats blanks as "no change". ImagePath switches
// the submission to multipart.
type UpdateRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Gender          string `json:"gender"`
	BloodGroup      string `json:"blood_group"`
	Address         string `json:"address"`
	DOB             string `json:"dob"`
	Qualification   string `json:"qualification"`
	ExperienceYears string `json:"experience_years"`
	ImagePath       string `json:"-"`
}
