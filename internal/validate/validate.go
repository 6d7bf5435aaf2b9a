// Package validate is the gate every submitted or edited record must pass
// before it is persisted. It wraps go-playground/validator and always
// reports the complete set of violated fields, not just the first one.
package validate

import (
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"awc/internal/models"
)

// NominationInput is the raw form payload for submitting or editing a
// record. Name and Reason are trimmed before the rules run.
type NominationInput struct {
	Name      string `form:"name" validate:"required,min=1,max=100"`
	From      string `form:"from" validate:"required,province"`
	Expertise string `form:"expertise" validate:"required,expertise"`
	Link      string `form:"link" validate:"required,url,max=200"`
	Reason    string `form:"reason" validate:"required,min=70,max=300"`
}

// LoginInput is the login form payload.
type LoginInput struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// FieldErrors maps a form field name to its human-readable messages.
type FieldErrors map[string][]string

func (fe FieldErrors) Error() string {
	var parts []string
	for field, msgs := range fe {
		parts = append(parts, field+": "+strings.Join(msgs, "; "))
	}
	return strings.Join(parts, ", ")
}

// Messages returns the errors for a single field, nil when the field is ok.
func (fe FieldErrors) Messages(field string) []string {
	if fe == nil {
		return nil
	}
	return fe[field]
}

// messages keyed by "field.tag". Fallback is a generic invalid-value text.
var messages = map[string]string{
	"name.required":       "Please provide the nominee's name",
	"name.min":            "Name should have at least 1 (one) character",
	"name.max":            "Name should have at most 100 (hundred) characters",
	"from.required":       "Please select a province where the nominee is from",
	"from.province":       "Please select a province where the nominee is from",
	"expertise.required":  "Please select an area of expertise",
	"expertise.expertise": "Please select an area of expertise",
	"link.required":       "Please provide a link to their work",
	"link.url":            "Invalid URL",
	"link.max":            "Link should have at most 200 (two hundred) characters",
	"reason.required":     "Please take a moment to explain why you are nominating this person",
	"reason.min":          "Your explanation should have at least 70 (seventy) characters",
	"reason.max":          "Your explanation should have at most 300 (three hundred) characters",
	"email.required":      "Email is required",
	"email.email":         "Incorrect mail format",
	"password.required":   "Password is required",
}

// Gate validates submitted payloads.
type Gate struct {
	v *validator.Validate
}

// New builds a Gate with the province and expertise rules registered.
func New() *Gate {
	v := validator.New()

	// Report fields under their form names, not the Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("province", func(fl validator.FieldLevel) bool {
		return models.ValidProvince(fl.Field().String())
	})
	_ = v.RegisterValidation("expertise", func(fl validator.FieldLevel) bool {
		return models.ValidExpertise(fl.Field().String())
	})

	return &Gate{v: v}
}

// Nomination normalizes and validates a nomination payload. On failure the
// returned FieldErrors holds a message for every violated field.
func (g *Gate) Nomination(in NominationInput) (NominationInput, FieldErrors) {
	in.Name = strings.TrimSpace(in.Name)
	in.Reason = strings.TrimSpace(in.Reason)
	return in, g.check(in)
}

// Login normalizes and validates a login payload.
func (g *Gate) Login(in LoginInput) (LoginInput, FieldErrors) {
	in.Email = strings.TrimSpace(in.Email)
	return in, g.check(in)
}

func (g *Gate) check(in any) FieldErrors {
	err := g.v.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"": {"invalid submission"}}
	}
	fe := FieldErrors{}
	for _, e := range verrs {
		msg, ok := messages[e.Field()+"."+e.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		fe[e.Field()] = append(fe[e.Field()], msg)
	}
	return fe
}

// NominationFromForm picks the nomination fields out of a parsed form.
func NominationFromForm(form url.Values) NominationInput {
	return NominationInput{
		Name:      form.Get("name"),
		From:      form.Get("from"),
		Expertise: form.Get("expertise"),
		Link:      form.Get("link"),
		Reason:    form.Get("reason"),
	}
}

// LoginFromForm picks the login fields out of a parsed form.
func LoginFromForm(form url.Values) LoginInput {
	return LoginInput{
		Email:    form.Get("email"),
		Password: form.Get("password"),
	}
}
