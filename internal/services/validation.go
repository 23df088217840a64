package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/eventhub/eventhub/internal/domain"
)

// draftMessages maps "<field>.<tag>" to the message shown for a failed rule.
var draftMessages = map[string]string{
	"name.required":        "Event name must be at least 3 characters",
	"name.min":             "Event name must be at least 3 characters",
	"type.required":        "Please select an event type",
	"description.required": "Description must be at least 10 characters",
	"description.min":      "Description must be at least 10 characters",
	"datetime.required":    "Please select a date and time",
	"datetime.future":      "Event date must be in the future",
}

// newDraftValidator returns a validator that knows the "future" rule, judged against now.
func newDraftValidator(now func() time.Time) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	err := v.RegisterValidation("future", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && t.After(now())
	})
	if err != nil {
		panic(fmt.Sprintf("register future validation: %v", err))
	}
	return v
}

// invalidInput converts validator output into an ErrInvalidInput carrying one message per field.
func invalidInput(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if msg, ok := draftMessages[fe.Field()+"."+fe.Tag()]; ok {
			msgs = append(msgs, msg)
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}
