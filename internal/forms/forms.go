// ABOUTME: Form models and validation for login, sign-up and new movie input
// ABOUTME: Wraps go-playground/validator and turns its errors into user-facing messages

package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/johnys190/movierama/internal/client"
)

// ErrInvalid matches every *ValidationError with errors.Is.
var ErrInvalid = errors.New("invalid input")

// SignIn is the login form
type SignIn struct {
	UsernameOrEmail string `label:"Username or Email" validate:"required"`
	Password        string `label:"Password" validate:"required"`
}

func (f SignIn) normalized() SignIn {
	f.UsernameOrEmail = strings.TrimSpace(f.UsernameOrEmail)
	return f
}

// Request converts the form into the API body.
func (f SignIn) Request() client.SignInRequest {
	f = f.normalized()
	return client.SignInRequest{UsernameOrEmail: f.UsernameOrEmail, Password: f.Password}
}

// SignUp is the registration form. Limits follow the backend's constraints.
type SignUp struct {
	Name     string `label:"Name" validate:"required,min=4,max=40"`
	Username string `label:"Username" validate:"required,min=3,max=15"`
	Email    string `label:"Email" validate:"required,email,max=40"`
	Password string `label:"Password" validate:"required,min=6,max=20"`
}

func (f SignUp) normalized() SignUp {
	f.Name = strings.TrimSpace(f.Name)
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
	return f
}

// Request converts the form into the API body.
func (f SignUp) Request() client.SignUpRequest {
	f = f.normalized()
	return client.SignUpRequest{Name: f.Name, Username: f.Username, Email: f.Email, Password: f.Password}
}

// NewMovie is the movie submission form
type NewMovie struct {
	Title       string `label:"Title" validate:"required,max=100"`
	Description string `label:"Description" validate:"required,max=400"`
}

func (f NewMovie) normalized() NewMovie {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	return f
}

// Request converts the form into the API body.
func (f NewMovie) Request() client.NewMovie {
	f = f.normalized()
	return client.NewMovie{Title: f.Title, Description: f.Description}
}

// normalize returns the form with the same trimming Request applies, so
// whitespace-only input fails "required".
func normalize(form any) any {
	if rv := reflect.ValueOf(form); rv.Kind() == reflect.Pointer && !rv.IsNil() {
		form = rv.Elem().Interface()
	}
	switch f := form.(type) {
	case SignIn:
		return f.normalized()
	case SignUp:
		return f.normalized()
	case NewMovie:
		return f.normalized()
	}
	return form
}

// FieldError is one failed constraint.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every failed field in declaration order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }

// Message returns the message for one field, or "".
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func v() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Validate checks a form struct (or pointer to one). It returns nil or a
// *ValidationError.
func Validate(form any) error {
	err := v().Struct(normalize(form))
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate form: %w", err)
	}

	t := structType(form)
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.StructField(),
			Message: message(label(t, fe.StructField()), fe.Tag(), fe.Param()),
		})
	}
	return out
}

// ValidateField checks a single value against the named field's rules, for
// inline validation while the user types.
func ValidateField(form any, field, value string) error {
	t := structType(form)
	sf, ok := t.FieldByName(field)
	if !ok {
		return fmt.Errorf("unknown field %s", field)
	}

	if sf.Type.Kind() == reflect.String {
		scratch := reflect.New(t)
		scratch.Elem().FieldByName(field).SetString(value)
		value = reflect.ValueOf(normalize(scratch.Interface())).FieldByName(field).String()
	}

	err := v().Var(value, sf.Tag.Get("validate"))
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate %s: %w", field, err)
	}
	fe := verrs[0]
	return &ValidationError{Fields: []FieldError{{
		Field:   field,
		Message: message(label(t, field), fe.Tag(), fe.Param()),
	}}}
}

// FieldValidator adapts ValidateField to the func(string) error shape used by
// form widgets.
func FieldValidator(form any, field string) func(string) error {
	return func(value string) error {
		return ValidateField(form, field, value)
	}
}

func structType(form any) reflect.Type {
	t := reflect.TypeOf(form)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func label(t reflect.Type, field string) string {
	if sf, ok := t.FieldByName(field); ok {
		if l := sf.Tag.Get("label"); l != "" {
			return l
		}
	}
	return field
}

func message(label, tag, param string) string {
	switch tag {
	case "required":
		return label + " may not be empty"
	case "min":
		return fmt.Sprintf("%s is too short (Minimum %s characters needed.)", label, param)
	case "max":
		return fmt.Sprintf("%s is too long (Maximum %s characters allowed.)", label, param)
	case "email":
		return label + " not valid"
	default:
		return fmt.Sprintf("%s is invalid (%s)", label, tag)
	}
}
