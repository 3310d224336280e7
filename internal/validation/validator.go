// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package validation provides struct validation using go-playground/validator v10.
// It provides a thread-safe singleton validator instance with custom validators
// for request parameters of the recommendation and cache APIs.
//
// Field names in messages come from the json (or query) struct tag, so errors
// name the parameter the client actually sent.
//
// Custom tags:
//   - media: provider media segment, "movie" or "tv"
//   - cachekey: printable text without whitespace, as used in cache keys
//
// Example usage:
//
//	type similarQuery struct {
//	    ContentID string `query:"content_id" validate:"required,max=128"`
//	    Count     int    `query:"count" validate:"min=1,max=100"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    ...
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is one failed constraint. Field is the query or json name.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Value   any
	Message string
}

func (e FieldError) Error() string { return e.Message }

// RequestValidationError collects the failed constraints of one request.
type RequestValidationError struct {
	Fields []FieldError
}

func (ve *RequestValidationError) Error() string {
	if len(ve.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve.Fields))
	for i, fe := range ve.Fields {
		messages[i] = fe.Message
	}
	return strings.Join(messages, "; ")
}

// APIError is the validation failure in the API error envelope's shape.
type APIError struct {
	Code    string
	Message string
	Details map[string]any
}

// ToAPIError converts validation errors to the VALIDATION_ERROR envelope.
// A single failure carries field, tag and value details; several failures
// are listed under "fields".
func (ve *RequestValidationError) ToAPIError() *APIError {
	apiErr := &APIError{Code: "VALIDATION_ERROR", Message: "Validation failed"}
	switch len(ve.Fields) {
	case 0:
	case 1:
		fe := ve.Fields[0]
		apiErr.Message = fe.Message
		apiErr.Details = map[string]any{"field": fe.Field, "tag": fe.Tag, "value": fe.Value}
	default:
		fields := make([]map[string]interface{}, len(ve.Fields))
		messages := make([]string, len(ve.Fields))
		for i, fe := range ve.Fields {
			fields[i] = map[string]interface{}{"field": fe.Field, "tag": fe.Tag, "message": fe.Message}
			messages[i] = fe.Field + ": " + fe.Message
		}
		apiErr.Message = strings.Join(messages, "; ")
		apiErr.Details = map[string]any{"fields": fields}
	}
	return apiErr
}

// GetValidator returns the singleton validator instance.
// The validator is initialized once with custom validators and options.
// This function is thread-safe.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(tagName)

		// Registration only fails for empty tags or nil funcs.
		_ = validate.RegisterValidation("media", validateMedia)
		_ = validate.RegisterValidation("cachekey", validateCacheKey)
	})

	return validate
}

// tagName reports the query or json name of a field.
func tagName(f reflect.StructField) string {
	for _, key := range []string{"query", "json"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

func validateMedia(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "movie", "tv":
		return true
	}
	return false
}

func validateCacheKey(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if !unicode.IsPrint(r) || unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// ValidateStruct validates s with the shared validator. It returns nil when
// every constraint holds.
func ValidateStruct(s any) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestValidationError{Fields: []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}}}
	}

	out := make([]FieldError, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: message(fe),
		}
	}
	return &RequestValidationError{Fields: out}
}

func message(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "media":
		return field + " must be movie or tv"
	case "cachekey":
		return field + " must not contain whitespace or control characters"
	case "numeric":
		return field + " must be numeric"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s%s", field, param, unit)
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s%s", field, param, unit)
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
