package domain

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxImageBytes is the largest photo the upload forms accept.
const MaxImageBytes = 5 * 1024 * 1024

var ErrValidation = errors.New("validation failed")

var (
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern      = regexp.MustCompile(`^[\d\s\-\+\(\)]{10,}$`)
	usernamePattern   = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	namePattern       = regexp.MustCompile(`^[a-zA-Z\s\-]{2,50}$`)
	roomNumberPattern = regexp.MustCompile(`(?i)^[A-Z0-9\-]{1,10}$`)
	letterPattern     = regexp.MustCompile(`[a-zA-Z]`)
	digitPattern      = regexp.MustCompile(`\d`)
)

// FieldErrors maps a form field to the message shown next to it.
type FieldErrors map[string]string

// Add keeps the first message recorded for a field.
func (f FieldErrors) Add(field, message string) {
	if _, exists := f[field]; exists {
		return
	}
	f[field] = message
}

func (f FieldErrors) Fields() []string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Err returns nil when there are no field errors.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(e.Fields.Fields(), ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// FileMeta describes an uploaded file without its contents.
type FileMeta struct {
	Name        string
	ContentType string
	Size        int64
}

// Validator accumulates per-field errors over a form body.
type Validator struct {
	body map[string]any
	errs FieldErrors
}

func NewValidator(body map[string]any) *Validator {
	if body == nil {
		body = map[string]any{}
	}
	return &Validator{body: body, errs: FieldErrors{}}
}

func (v *Validator) Errors() FieldErrors { return v.errs }

// Text returns the trimmed string at field, or "" when absent or not a string.
func (v *Validator) Text(field string) string {
	switch typed := v.body[field].(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return ""
	}
}

func (v *Validator) present(field string) bool {
	switch typed := v.body[field].(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(typed) != ""
	default:
		return true
	}
}

// Required records "<label> is required" when the field is blank.
func (v *Validator) Required(field, label string) bool {
	if v.present(field) {
		return true
	}
	v.errs.Add(field, label+" is required")
	return false
}

func (v *Validator) Email(field string) {
	if !v.Required(field, "Email") {
		return
	}
	if !emailPattern.MatchString(v.Text(field)) {
		v.errs.Add(field, "Please enter a valid email address")
	}
}

// Phone is optional; only a non-blank value is checked.
func (v *Validator) Phone(field string) {
	if !v.present(field) {
		return
	}
	if !phonePattern.MatchString(v.Text(field)) {
		v.errs.Add(field, "Please enter a valid phone number (at least 10 digits)")
	}
}

func (v *Validator) Username(field string) {
	if !v.Required(field, "Username") {
		return
	}
	if !usernamePattern.MatchString(v.Text(field)) {
		v.errs.Add(field, "Username must be 3-20 characters (letters, numbers, underscore only)")
	}
}

// Password checks strength; when required is false a blank value is accepted.
func (v *Validator) Password(field string, required bool) {
	if !v.present(field) {
		if required {
			v.errs.Add(field, "Password is required")
		}
		return
	}
	if !IsStrongPassword(v.Text(field)) {
		v.errs.Add(field, "Password must be at least 8 characters with at least one letter and one number")
	}
}

func (v *Validator) Name(field, label string) {
	if !v.Required(field, label) {
		return
	}
	if !namePattern.MatchString(v.Text(field)) {
		v.errs.Add(field, label+" must contain only letters, spaces, and hyphens (2-50 characters)")
	}
}

func (v *Validator) RoomNumber(field string) {
	if !v.Required(field, "Room number") {
		return
	}
	if !roomNumberPattern.MatchString(v.Text(field)) {
		v.errs.Add(field, "Room number must be alphanumeric (1-10 characters)")
	}
}

// Length checks the character count of a required text field.
func (v *Validator) Length(field, label string, min, max int) {
	if !v.Required(field, label) {
		return
	}
	if n := utf8.RuneCountInString(v.Text(field)); n < min || n > max {
		v.errs.Add(field, fmt.Sprintf("%s must be between %d and %d characters", label, min, max))
	}
}

// PositiveNumber parses a required number greater than zero and at most max (max <= 0 means unbounded).
func (v *Validator) PositiveNumber(field, label string, max float64) (float64, bool) {
	if !v.Required(field, label) {
		return 0, false
	}
	n, ok := numberValue(v.body[field])
	if !ok || n <= 0 {
		v.errs.Add(field, label+" must be a positive number")
		return 0, false
	}
	if max > 0 && n > max {
		v.errs.Add(field, fmt.Sprintf("%s cannot exceed %s", label, strconv.FormatFloat(max, 'f', -1, 64)))
		return 0, false
	}
	return n, true
}

// PositiveInt parses a required whole number greater than zero and at most max (max <= 0 means unbounded).
func (v *Validator) PositiveInt(field, label string, max int) (int, bool) {
	if !v.Required(field, label) {
		return 0, false
	}
	n, ok := numberValue(v.body[field])
	if !ok || n <= 0 || n != math.Trunc(n) {
		v.errs.Add(field, label+" must be a positive integer")
		return 0, false
	}
	if max > 0 && n > float64(max) {
		v.errs.Add(field, fmt.Sprintf("%s cannot exceed %d", label, max))
		return 0, false
	}
	return int(n), true
}

// OneOf checks a required value against an allowed set.
func (v *Validator) OneOf(field, message string, allowed ...string) {
	value := strings.ToUpper(v.Text(field))
	for _, candidate := range allowed {
		if value == candidate {
			return
		}
	}
	v.errs.Add(field, message)
}

// Image checks type and size of one uploaded file.
func (v *Validator) Image(field string, file FileMeta) {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(file.ContentType)), "image/") {
		v.errs.Add(field, "Please select a valid image file")
		return
	}
	if file.Size > MaxImageBytes {
		v.errs.Add(field, "Image size must be less than 5MB")
	}
}

// IsStrongPassword requires 8 characters with at least one letter and one digit.
func IsStrongPassword(password string) bool {
	if utf8.RuneCountInString(password) < 8 {
		return false
	}
	return letterPattern.MatchString(password) && digitPattern.MatchString(password)
}

// numberValue accepts JSON numbers and numeric strings. Anything else is not coerced.
func numberValue(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case int:
		return float64(typed), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
