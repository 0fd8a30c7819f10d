package validate

import (
	"testing"
)

type patientForm struct {
	FirstName string `json:"first_name" validate:"required" label:"First Name"`
	Age       *int   `json:"age" validate:"required,agerange" label:"Age"`
	Gender    string `json:"gender" validate:"required,oneof=Male Female Other" label:"Gender"`
	ContactNo string `json:"contact_no" validate:"required,phone" label:"Contact Number"`
	Email     string `json:"email" validate:"required,emailshape" label:"Email"`
}

func intPtr(n int) *int { return &n }

func validForm() patientForm {
	return patientForm{
		FirstName: "A",
		Age:       intPtr(30),
		Gender:    "Male",
		ContactNo: "1234567890",
		Email:     "a@b.com",
	}
}

func TestStruct_Valid(t *testing.T) {
	if errs := Struct(validForm()); errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestStruct_MissingFields(t *testing.T) {
	f := validForm()
	f.FirstName = ""
	f.Age = nil
	errs := Struct(f)
	if errs == nil {
		t.Fatal("expected errors")
	}
	missing := errs.Missing()
	if len(missing) != 2 {
		t.Fatalf("expected 2 missing fields, got %v", missing)
	}
	if missing[0] != "first_name" || missing[1] != "age" {
		t.Errorf("expected [first_name age], got %v", missing)
	}
}

func TestStruct_ZeroAgeIsPresent(t *testing.T) {
	f := validForm()
	f.Age = intPtr(0)
	if errs := Struct(f); errs != nil {
		t.Errorf("expected age 0 to pass, got %v", errs)
	}
}

func TestStruct_AgeRange(t *testing.T) {
	cases := []struct {
		age  int
		want bool // valid
	}{
		{-1, false},
		{0, true},
		{150, true},
		{151, false},
	}
	for _, tc := range cases {
		f := validForm()
		f.Age = intPtr(tc.age)
		errs := Struct(f)
		if tc.want && errs != nil {
			t.Errorf("age %d: expected valid, got %v", tc.age, errs)
		}
		if !tc.want {
			if errs == nil {
				t.Errorf("age %d: expected invalid", tc.age)
				continue
			}
			fe, ok := errs.First()
			if !ok || fe.Message() != "Age must be a valid number between 0 and 150" {
				t.Errorf("age %d: unexpected message %q", tc.age, fe.Message())
			}
		}
	}
}

func TestStruct_PhoneRule(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"123456789", false},        // 9 digits
		{"1234567890", true},        // exactly 10
		{"+1 (555) 123-4567", true}, // separators allowed
		{"12345abcde", false},       // letters rejected
		{"   1234567890   ", true},  // surrounding whitespace stripped
	}
	for _, tc := range cases {
		f := validForm()
		f.ContactNo = tc.phone
		errs := Struct(f)
		if tc.want && errs != nil {
			t.Errorf("phone %q: expected valid, got %v", tc.phone, errs)
		}
		if !tc.want && errs == nil {
			t.Errorf("phone %q: expected invalid", tc.phone)
		}
	}
}

func TestStruct_PhoneMessage(t *testing.T) {
	f := validForm()
	f.ContactNo = "123"
	errs := Struct(f)
	if errs == nil {
		t.Fatal("expected errors")
	}
	fe, ok := errs.First()
	if !ok {
		t.Fatal("expected a non-required failure")
	}
	if fe.Message() != "Contact Number must be at least 10 digits" {
		t.Errorf("unexpected message: %q", fe.Message())
	}
}

func TestStruct_EmailShape(t *testing.T) {
	bad := []string{"nope", "a@b", "a b@c.com", "@c.com"}
	for _, e := range bad {
		f := validForm()
		f.Email = e
		errs := Struct(f)
		if errs == nil {
			t.Errorf("email %q: expected invalid", e)
			continue
		}
		fe, _ := errs.First()
		if fe.Message() != "Invalid email format" {
			t.Errorf("email %q: unexpected message %q", e, fe.Message())
		}
	}
}

func TestStruct_GenderOneOf(t *testing.T) {
	f := validForm()
	f.Gender = "Unknown"
	errs := Struct(f)
	if errs == nil {
		t.Fatal("expected errors")
	}
	fe, _ := errs.First()
	if fe.Message() != "Invalid Gender value. Must be one of: Male, Female, Other" {
		t.Errorf("unexpected message: %q", fe.Message())
	}
}

type doctorStatusForm struct {
	Status string `json:"status" validate:"omitempty,oneof='Active' 'Inactive' 'On Leave'" label:"status"`
}

func TestStruct_QuotedOneOf(t *testing.T) {
	if errs := Struct(doctorStatusForm{Status: "On Leave"}); errs != nil {
		t.Errorf("expected On Leave to pass, got %v", errs)
	}
	errs := Struct(doctorStatusForm{Status: "Retired"})
	if errs == nil {
		t.Fatal("expected errors")
	}
	fe, _ := errs.First()
	if fe.Message() != "Invalid status value. Must be one of: Active, Inactive, On Leave" {
		t.Errorf("unexpected message: %q", fe.Message())
	}
}
