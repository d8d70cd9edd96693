package validator

import (
	"errors"
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"123e4567-e89b-12d3-a456-426614174000",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"{0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b}",
		"my-product-slug",
		"",
	}
	for _, id := range valid {
		if !IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = true, want false", id)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidURL(t *testing.T) {
	valid := []string{"https://example.com", "http://demo.example.com/path?x=1"}
	invalid := []string{"example.com", "ftp://example.com", "https://", ""}
	for _, s := range valid {
		if !IsValidURL(s) {
			t.Errorf("IsValidURL(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidURL(s) {
			t.Errorf("IsValidURL(%q) = true, want false", s)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	if _, ok := IsValidDateTime("2024-01-15T10:30:00Z"); !ok {
		t.Errorf("IsValidDateTime(RFC3339) = false, want true")
	}
	if _, ok := IsValidDateTime("2024-01-15T10:30:00.123456+05:00"); !ok {
		t.Errorf("IsValidDateTime(RFC3339Nano) = false, want true")
	}
	if _, ok := IsValidDateTime("2024-01-15 10:30"); ok {
		t.Errorf("IsValidDateTime(space separated) = true, want false")
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.Error()
	want := "email: invalid; phone: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"email": "invalid", "phone": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

type structSample struct {
	Name     string  `json:"name" validate:"required,max=5"`
	Email    string  `json:"email" validate:"omitempty,email"`
	Category string  `json:"category" validate:"oneof=a b"`
	Rating   int     `json:"rating" validate:"gte=1,lte=5"`
	Website  *string `json:"website,omitempty" validate:"omitempty,url"`
	Internal string  `json:"-"`
}

func TestStruct_Valid(t *testing.T) {
	s := structSample{Name: "ok", Category: "a", Rating: 3}
	if err := Struct(s); err != nil {
		t.Fatalf("Struct() = %v, want nil", err)
	}
}

func TestStruct_MapsFieldErrorsToJSONNames(t *testing.T) {
	bad := "not a url"
	s := structSample{Name: "too long name", Email: "nope", Category: "c", Rating: 9, Website: &bad}

	err := Struct(s)
	var errs ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("Struct() error = %T, want ValidationErrors", err)
	}

	got := errs.ToMap()
	want := map[string]string{
		"name":     "name must not exceed 5 characters",
		"email":    "invalid email format",
		"category": "category must be one of: a, b",
		"rating":   "rating must be less than or equal to 5",
		"website":  "website must be a valid URL",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("Struct()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestStruct_Required(t *testing.T) {
	err := Struct(structSample{Category: "a", Rating: 1})
	var errs ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("Struct() error = %T, want ValidationErrors", err)
	}
	if errs.ToMap()["name"] != "name is required" {
		t.Errorf("Struct()[name] = %q", errs.ToMap()["name"])
	}
}

func TestStructErrors(t *testing.T) {
	if errs := StructErrors(structSample{Name: "ok", Category: "b", Rating: 5}); errs != nil {
		t.Errorf("StructErrors() = %v, want nil", errs)
	}

	errs := StructErrors(structSample{Name: "ok", Category: "b", Rating: 0})
	if len(errs) != 1 || errs[0].Field != "rating" {
		t.Errorf("StructErrors() = %v, want single rating error", errs)
	}

	errs = StructErrors("not a struct")
	if len(errs) != 1 || errs[0].Field != "request" {
		t.Errorf("StructErrors(non-struct) = %v, want request error", errs)
	}
}
