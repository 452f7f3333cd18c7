package helper

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	translator ut.Translator

	pageSlug = regexp.MustCompile(`^[a-zA-Z0-9]+(-[a-zA-Z0-9]+)*$`)
)

func init() {
	Validate = validator.New()
	// pakai nama tag json sebagai nama field
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enLocale := en.New()
	translator, _ = ut.New(enLocale, enLocale).GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(Validate, translator)

	// page_slug: "home", "admissions-2026"
	_ = Validate.RegisterValidation("page_slug", func(fl validator.FieldLevel) bool {
		return pageSlug.MatchString(fl.Field().String())
	})
	_ = Validate.RegisterTranslation("page_slug", translator,
		func(ut ut.Translator) error {
			return ut.Add("page_slug", "{0} must contain letters, digits and single dashes only", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("page_slug", fe.Field())
			return msg
		},
	)
}

// IsPageSlug dipakai untuk validasi path param.
func IsPageSlug(s string) bool {
	return pageSlug.MatchString(s)
}

// ValidationErrors mengubah error validator → map field → pesan.
// ok=false jika err bukan validator.ValidationErrors.
func ValidationErrors(err error) (map[string][]string, bool) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil, false
	}
	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		field := fe.Field()
		if field == "" {
			field = fe.StructField()
		}
		out[field] = append(out[field], fe.Translate(translator))
	}
	return out, true
}
