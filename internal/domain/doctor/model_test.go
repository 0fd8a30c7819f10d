package doctor

import (
	"encoding/json"
	"testing"
)

func TestQualifications_DecodeStructured(t *testing.T) {
	data := `{"structured":{"education_level":"MD","graduation_year":"2010",
		"certificates":[{"name":"Cardiology Board","institution":"ABIM"}],
		"additional_notes":"fellowship"}}`
	var q Qualifications
	if err := json.Unmarshal([]byte(data), &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if q.Structured.EducationLevel != "MD" {
		t.Errorf("education_level = %q", q.Structured.EducationLevel)
	}
	if len(q.Structured.Certificates) != 1 || q.Structured.Certificates[0].Institution != "ABIM" {
		t.Errorf("certificates = %+v", q.Structured.Certificates)
	}
	if q.Structured.AdditionalNotes != "fellowship" {
		t.Errorf("additional_notes = %q", q.Structured.AdditionalNotes)
	}
}

func TestQualifications_DecodeLegacyFlat(t *testing.T) {
	data := `{"education_level":"MBBS","graduation_year":"2015",
		"certificates":[],"additional":"rural medicine"}`
	var q Qualifications
	if err := json.Unmarshal([]byte(data), &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if q.Structured.EducationLevel != "MBBS" {
		t.Errorf("education_level = %q", q.Structured.EducationLevel)
	}
	if q.Structured.AdditionalNotes != "rural medicine" {
		t.Errorf("additional list lost: %q", q.Structured.AdditionalNotes)
	}
}

func TestQualifications_DecodeLegacyStringJSON(t *testing.T) {
	// Older clients submit the flat object serialized inside a string.
	data := `"{\"education_level\":\"MD\",\"graduation_year\":\"2000\",\"certificates\":[],\"additional\":\"notes\"}"`
	var q Qualifications
	if err := json.Unmarshal([]byte(data), &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if q.Structured.EducationLevel != "MD" || q.Structured.AdditionalNotes != "notes" {
		t.Errorf("unexpected decode: %+v", q.Structured)
	}
}

func TestQualifications_DecodePlainString(t *testing.T) {
	var q Qualifications
	if err := json.Unmarshal([]byte(`"20 years of practice"`), &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if q.Structured.AdditionalNotes != "20 years of practice" {
		t.Errorf("plain string must land in additional_notes, got %q", q.Structured.AdditionalNotes)
	}
}

func TestQualifications_DecodeNull(t *testing.T) {
	var q Qualifications
	if err := json.Unmarshal([]byte(`null`), &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if q.Structured.AdditionalNotes != "" || q.Structured.EducationLevel != "" {
		t.Errorf("expected zero value, got %+v", q.Structured)
	}
}

func TestQualifications_MarshalAlwaysStructured(t *testing.T) {
	var q Qualifications
	if err := json.Unmarshal([]byte(`"legacy text"`), &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var round map[string]interface{}
	if err := json.Unmarshal(out, &round); err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if _, ok := round["structured"]; !ok {
		t.Errorf("expected structured wrapper, got %s", out)
	}
}
