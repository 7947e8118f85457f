// Package validation holds the custom field rules shared by request binding
// and service-level checks.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	TagPhone      = "phone_cc"
	TagHexColor   = "hexcolor6"
	TagTenantSlug = "tenant_slug"
)

var (
	phonePattern = regexp.MustCompile(`^\+[1-9][0-9]{6,14}$`)
	colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	slugPattern  = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{1,61}[a-z0-9])$`)

	std = newValidate()
)

func newValidate() *validator.Validate {
	v := validator.New()
	if err := register(v); err != nil {
		panic(err)
	}
	return v
}

func register(v *validator.Validate) error {
	rules := map[string]validator.Func{
		TagPhone:      func(fl validator.FieldLevel) bool { return Phone(fl.Field().String()) },
		TagHexColor:   func(fl validator.FieldLevel) bool { return HexColor(fl.Field().String()) },
		TagTenantSlug: func(fl validator.FieldLevel) bool { return TenantSlug(fl.Field().String()) },
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("registering %s: %w", tag, err)
		}
	}
	return nil
}

// RegisterGinValidators installs the custom rules on gin's binding validator
// so request DTOs can use them in `binding` tags.
func RegisterGinValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	return register(v)
}

// NormalizePhone strips the spaces and dashes users type between digit groups.
func NormalizePhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(phone))
}

// Phone reports whether phone is "+", a country code and at least 6 more
// digits. E.164 caps the whole number at 15 digits.
func Phone(phone string) bool {
	return phonePattern.MatchString(NormalizePhone(phone))
}

// HexColor reports whether c is a #RRGGBB color.
func HexColor(c string) bool {
	return colorPattern.MatchString(c)
}

// TenantSlug reports whether s is a lowercase slug of 3 to 63 characters.
func TenantSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// Email reports whether addr is a syntactically valid email address.
func Email(addr string) bool {
	return std.Var(addr, "required,email") == nil
}
