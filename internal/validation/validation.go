package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// StoredTextTag rejects strings Postgres cannot store in a text column:
// invalid UTF-8 and the NUL character.
const StoredTextTag = "storedtext"

// New returns a validator with the custom tags registered.
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation(StoredTextTag, storedTextValidation)
	return v
}

func storedTextValidation(fl validator.FieldLevel) bool {
	return IsStoredText(fl.Field().String())
}

func IsStoredText(s string) bool {
	return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
}
