package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"hotel/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("validation failed")), code: http.StatusBadRequest, message: "validation failed"},
		{name: "bad request from string", err: failure.BadRequestFromString("custom bad request"), code: http.StatusBadRequest, message: "custom bad request"},
		{name: "unauthorized", err: failure.Unauthorized("token expired"), code: http.StatusUnauthorized, message: "token expired"},
		{name: "internal", err: failure.InternalError(errors.New("database connection failed")), code: http.StatusInternalServerError, message: "database connection failed"},
		{name: "unimplemented", err: failure.Unimplemented("GetStaffByID"), code: http.StatusNotImplemented, message: "GetStaffByID"},
		{name: "not found", err: failure.NotFound("room not found"), code: http.StatusNotFound, message: "room not found"},
		{name: "conflict", err: failure.Conflict("room is already booked"), code: http.StatusConflict, message: "room is already booked"},
		{name: "forbidden", err: failure.Forbidden("Access denied"), code: http.StatusForbidden, message: "Access denied"},
		{name: "invalid range", err: failure.ErrInvalidRange, code: http.StatusBadRequest, message: "check-in date must be before check-out date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *failure.Failure
			assert.ErrorAs(t, tt.err, &f)
			assert.Equal(t, tt.code, f.Code)
			assert.Equal(t, tt.message, f.Error())
		})
	}
}

func TestNilInputs(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestStoreUnavailable(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("failed to get available rooms: %w", failure.StoreUnavailable("booking", cause))

	assert.True(t, failure.IsStoreUnavailable(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
	assert.Contains(t, err.Error(), "booking store unavailable")

	assert.False(t, failure.IsStoreUnavailable(failure.NotFound("room not found")))
}

func TestInvalidRangeIsComparable(t *testing.T) {
	err := fmt.Errorf("failed to create booking: %w", failure.ErrInvalidRange)

	assert.ErrorIs(t, err, failure.ErrInvalidRange)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{name: "failure error", input: &failure.Failure{Code: http.StatusBadRequest, Message: "test"}, expected: http.StatusBadRequest},
		{name: "wrapped failure error", input: fmt.Errorf("outer: %w", failure.NotFound("missing")), expected: http.StatusNotFound},
		{name: "regular error", input: errors.New("regular error"), expected: http.StatusInternalServerError},
		{name: "nil error", input: nil, expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, failure.GetCode(tt.input))
		})
	}
}
