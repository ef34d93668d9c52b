package base64_test

import (
	"testing"

	"hotel/shared/base64"

	"github.com/stretchr/testify/assert"
)

func TestGetContentType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "room photo png", input: "data:image/png;base64,iVBORw0KGgo=", expected: "image/png"},
		{name: "room photo jpeg", input: "data:image/jpeg;base64,/9j/4AAQSkZJRg==", expected: "image/jpeg"},
		{name: "floor plan svg with charset", input: "data:image/svg+xml;charset=utf-8;base64,PHN2Zz4=", expected: "image/svg+xml;charset=utf-8"},
		{name: "raw base64 without header", input: "iVBORw0KGgo=", expected: ""},
		{name: "data uri without base64 marker", input: "data:image/png,iVBORw0KGgo=", expected: ""},
		{name: "empty media type", input: "data:;base64,", expected: ""},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base64.GetContentType(tt.input))
		})
	}
}
