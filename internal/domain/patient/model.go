package patient

import "time"

// Patient is a registered patient row.
type Patient struct {
	ID               int64     `json:"patientID"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Age              int       `json:"age"`
	Gender           string    `json:"gender"`
	ContactNo        string    `json:"contact_no"`
	Email            string    `json:"email"`
	EmergencyContact string    `json:"emergency_contact"`
	MedicalHistory   string    `json:"medical_history"`
	InsuranceDetails string    `json:"insurance_details"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Request carries the intake form fields for create and update. Age is a
// pointer so an explicit 0 counts as present while a missing key does not.
type Request struct {
	FirstName        string `json:"first_name" validate:"required" label:"First Name"`
	LastName         string `json:"last_name" validate:"required" label:"Last Name"`
	Age              *int   `json:"age" validate:"required,agerange" label:"Age"`
	Gender           string `json:"gender" validate:"required,oneof=Male Female Other" label:"Gender"`
	ContactNo        string `json:"contact_no" validate:"required,phone" label:"Contact Number"`
	Email            string `json:"email" validate:"required,emailshape" label:"Email"`
	EmergencyContact string `json:"emergency_contact" validate:"required,phone" label:"Emergency Contact"`
	MedicalHistory   string `json:"medical_history" validate:"required" label:"Medical History"`
	InsuranceDetails string `json:"insurance_details" validate:"required" label:"Insurance Details"`
}

func (r *Request) toPatient() *Patient {
	p := &Patient{
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Gender:           r.Gender,
		ContactNo:        r.ContactNo,
		Email:            r.Email,
		EmergencyContact: r.EmergencyContact,
		MedicalHistory:   r.MedicalHistory,
		InsuranceDetails: r.InsuranceDetails,
	}
	if r.Age != nil {
		p.Age = *r.Age
	}
	return p
}
