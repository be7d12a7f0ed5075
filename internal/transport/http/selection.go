package http

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "indicadores/internal/errors"
	api "indicadores/pkg/contracts/api/v1"
)

// parseSelection reads the developer selection from the query string.
// Repeated developer parameters and a comma separated developers
// parameter are merged.
func parseSelection(r *http.Request) []string {
	q := r.URL.Query()
	selection := append([]string(nil), q["developer"]...)
	for _, list := range q["developers"] {
		selection = append(selection, strings.Split(list, ",")...)
	}
	return selection
}

// selectionFromRequest parses and validates the selection, returning a
// validation APIError when it is rejected.
func selectionFromRequest(v *validator.Validate, r *http.Request) ([]string, error) {
	req := api.SelectionRequest{Developers: parseSelection(r)}
	if err := v.Struct(req); err != nil {
		return nil, toValidationError(err)
	}
	return req.Developers, nil
}

func toValidationError(err error) *apierrors.APIError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apierrors.InvalidRequestWithError(err)
	}

	fields := make([]apierrors.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apierrors.ValidationError{
			Field:   fe.Namespace(),
			Message: validationMessage(fe),
		})
	}
	return apierrors.NewValidationErrors(fields)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("at most %s developers may be selected", fe.Param())
		}
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
