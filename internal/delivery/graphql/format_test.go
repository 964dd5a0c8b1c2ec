package graphql

import (
	"testing"

	"telehealth-api/config"

	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/graphql-go/graphql/language/location"
)

func TestFormatErrorMasksInternalInProduction(t *testing.T) {
	err := gqlerrors.FormattedError{
		Message:   "pq: connection refused on db-primary-1",
		Locations: []location.SourceLocation{{Line: 3, Column: 5}},
		Path:      []interface{}{"myLabOrders", 0, "status"},
		Extensions: map[string]interface{}{
			"code":       "INTERNAL_SERVER_ERROR",
			"stacktrace": []string{"at repo.FindByPatientID", "at usecase.GetMyOrders"},
		},
	}

	got := FormatError(err, config.EnvProduction)

	if got.Message != "Internal server error" {
		t.Errorf("message = %q, want masked message", got.Message)
	}
	if got.Extensions["code"] != "INTERNAL_SERVER_ERROR" {
		t.Errorf("code = %v, want INTERNAL_SERVER_ERROR", got.Extensions["code"])
	}
	if _, ok := got.Extensions["stacktrace"]; ok {
		t.Error("stacktrace leaked through production formatting")
	}
	if len(got.Extensions) != 1 {
		t.Errorf("extensions has %d keys, want only code", len(got.Extensions))
	}
	if len(got.Locations) != 1 || got.Locations[0].Line != 3 {
		t.Errorf("locations not preserved: %+v", got.Locations)
	}
	if len(got.Path) != 3 {
		t.Errorf("path not preserved: %+v", got.Path)
	}
}

func TestFormatErrorMasksUnknownCodeInProduction(t *testing.T) {
	err := gqlerrors.FormattedError{
		Message: "duplicate key value violates unique constraint",
		Extensions: map[string]interface{}{
			"code":   "DB_CONSTRAINT",
			"detail": "constraint booked_slots_lab_order_id_key",
		},
	}

	got := FormatError(err, config.EnvProduction)

	if got.Message != "Internal server error" {
		t.Errorf("message = %q, want masked message", got.Message)
	}
	if got.Extensions["code"] != "DB_CONSTRAINT" {
		t.Errorf("code = %v, the original code must survive masking", got.Extensions["code"])
	}
	if len(got.Extensions) != 1 {
		t.Errorf("extensions has %d keys, want only code", len(got.Extensions))
	}
}

func TestFormatErrorMissingExtensionsInProduction(t *testing.T) {
	err := gqlerrors.FormattedError{Message: "runtime error: nil pointer dereference"}

	got := FormatError(err, config.EnvProduction)

	if got.Message != "Internal server error" {
		t.Errorf("message = %q, want masked message", got.Message)
	}
	if got.Extensions["code"] != "INTERNAL_SERVER_ERROR" {
		t.Errorf("code = %v, want INTERNAL_SERVER_ERROR", got.Extensions["code"])
	}
}

func TestFormatErrorClientSafeCodesPassThrough(t *testing.T) {
	for _, code := range []string{
		"BAD_USER_INPUT",
		"UNAUTHENTICATED",
		"FORBIDDEN",
		"GRAPHQL_VALIDATION_FAILED",
	} {
		err := gqlerrors.FormattedError{
			Message: "something the client needs to read",
			Extensions: map[string]interface{}{
				"code":   code,
				"detail": "extra payload",
			},
		}

		got := FormatError(err, config.EnvProduction)

		if got.Message != err.Message {
			t.Errorf("code %s: message = %q, want original", code, got.Message)
		}
		if got.Extensions["code"] != code {
			t.Errorf("code %s: got %v", code, got.Extensions["code"])
		}
		if _, ok := got.Extensions["detail"]; ok {
			t.Errorf("code %s: extra extension keys must be stripped in production", code)
		}
	}
}

func TestFormatErrorDevelopmentPassthrough(t *testing.T) {
	err := gqlerrors.FormattedError{
		Message: "pq: connection refused on db-primary-1",
		Extensions: map[string]interface{}{
			"code":       "INTERNAL_SERVER_ERROR",
			"stacktrace": []string{"at repo.FindByPatientID"},
		},
	}

	got := FormatError(err, config.EnvDevelopment)

	if got.Message != err.Message {
		t.Errorf("message = %q, development must not mask", got.Message)
	}
	if _, ok := got.Extensions["stacktrace"]; !ok {
		t.Error("stacktrace must survive in development")
	}
}

func TestFormatErrorsEmpty(t *testing.T) {
	if got := FormatErrors(nil, config.EnvProduction); got != nil {
		t.Errorf("FormatErrors(nil) = %v, want nil", got)
	}
}
