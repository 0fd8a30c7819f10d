package doctor

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Doctor is a staff doctor row.
type Doctor struct {
	ID             int64          `json:"doctorID"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	Specialization string         `json:"specialization"`
	Department     string         `json:"department"`
	PhoneNo        string         `json:"phone_no"`
	Email          string         `json:"email"`
	Qualifications Qualifications `json:"qualifications"`
	Status         string         `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Qualifications is a tagged variant: it always marshals as
// {"structured": {...}} but decodes the legacy shapes too, a flat object or
// a plain string (which becomes additional_notes).
type Qualifications struct {
	Structured QualificationDetails `json:"structured"`
}

type QualificationDetails struct {
	EducationLevel  string        `json:"education_level"`
	GraduationYear  string        `json:"graduation_year"`
	Certificates    []Certificate `json:"certificates"`
	AdditionalNotes string        `json:"additional_notes"`
}

type Certificate struct {
	Name        string `json:"name"`
	Institution string `json:"institution"`
}

// legacyQualifications is the flat shape older clients submit, with the
// notes under "additional".
type legacyQualifications struct {
	EducationLevel string        `json:"education_level"`
	GraduationYear string        `json:"graduation_year"`
	Certificates   []Certificate `json:"certificates"`
	Additional     string        `json:"additional"`
}

func (l legacyQualifications) details() QualificationDetails {
	return QualificationDetails{
		EducationLevel:  l.EducationLevel,
		GraduationYear:  l.GraduationYear,
		Certificates:    l.Certificates,
		AdditionalNotes: l.Additional,
	}
}

func (q *Qualifications) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*q = Qualifications{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		q.fromLegacyString(s)
		return nil
	}

	var probe struct {
		Structured *QualificationDetails `json:"structured"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.Structured != nil {
		q.Structured = *probe.Structured
		return nil
	}

	var legacy legacyQualifications
	if err := json.Unmarshal(data, &legacy); err != nil {
		return err
	}
	q.Structured = legacy.details()
	return nil
}

func (q *Qualifications) fromLegacyString(s string) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") {
		var legacy legacyQualifications
		if err := json.Unmarshal([]byte(s), &legacy); err == nil {
			q.Structured = legacy.details()
			return
		}
	}
	q.Structured = QualificationDetails{AdditionalNotes: s}
}

// CreateRequest carries the doctor registration fields. Status is not
// accepted on create; new doctors always start Active.
type CreateRequest struct {
	FirstName      string         `json:"first_name" validate:"required" label:"First Name"`
	LastName       string         `json:"last_name" validate:"required" label:"Last Name"`
	Specialization string         `json:"specialization" validate:"required" label:"Specialization"`
	Department     string         `json:"department" validate:"required" label:"Department"`
	PhoneNo        string         `json:"phone_no" validate:"required,phone" label:"Phone Number"`
	Email          string         `json:"email" validate:"required,emailshape" label:"Email"`
	Qualifications Qualifications `json:"qualifications"`
}

// UpdateRequest adds the optional status change on top of the create fields.
type UpdateRequest struct {
	CreateRequest
	Status string `json:"status" validate:"omitempty,oneof='Active' 'Inactive' 'On Leave'" label:"status"`
}

func (r *CreateRequest) toDoctor() *Doctor {
	return &Doctor{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Specialization: r.Specialization,
		Department:     r.Department,
		PhoneNo:        r.PhoneNo,
		Email:          r.Email,
		Qualifications: r.Qualifications,
	}
}
