package validator_test

import (
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"

	"hotel/shared/failure"
	"hotel/shared/validator"

	"github.com/stretchr/testify/assert"
)

type guestRequest struct {
	Name     string `json:"name"      validate:"required,max=100"`
	Email    string `json:"email"     validate:"omitempty,email"`
	RoomID   string `json:"room_id"   validate:"required,uuid"`
	CheckIn  string `json:"check_in"  validate:"required,datetime=2006-01-02"`
	Guests   int    `json:"guests"    validate:"gte=1,lte=4"`
	RoomType string `json:"room_type" validate:"omitempty,oneof=Single Double Suite"`
}

type passwordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,nefield=CurrentPassword"`
}

type roomImage struct {
	Image *multipart.FileHeader `validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
}

type roomImageData struct {
	Image string `validate:"mimetypes=image/png image/jpeg"`
}

const roomID = "1f0c7a4e-8a44-4a1f-9d7b-3c1e2f6a9b10"

func validGuest() guestRequest {
	return guestRequest{
		Name:     "Ann Lee",
		Email:    "ann@guest.test",
		RoomID:   roomID,
		CheckIn:  "2024-01-10",
		Guests:   2,
		RoomType: "Double",
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(req *guestRequest)
		expectedMsg string
	}{
		{name: "valid", mutate: func(_ *guestRequest) {}},
		{name: "missing name", mutate: func(req *guestRequest) { req.Name = "" }, expectedMsg: "Name is required"},
		{name: "invalid email", mutate: func(req *guestRequest) { req.Email = "ann" }, expectedMsg: "Email must be a valid email address"},
		{name: "room id not a uuid", mutate: func(req *guestRequest) { req.RoomID = "101" }, expectedMsg: "RoomID must be a valid id"},
		{name: "check-in not a date", mutate: func(req *guestRequest) { req.CheckIn = "10/01/2024" }, expectedMsg: "CheckIn must use the format 2006-01-02"},
		{name: "too many guests", mutate: func(req *guestRequest) { req.Guests = 5 }, expectedMsg: "Guests must be less than or equal to 4"},
		{name: "no guests", mutate: func(req *guestRequest) { req.Guests = 0 }, expectedMsg: "Guests must be greater than or equal to 1"},
		{name: "unknown room type", mutate: func(req *guestRequest) { req.RoomType = "Penthouse" }, expectedMsg: "RoomType must be one of Single Double Suite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validGuest()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.expectedMsg == "" {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.EqualError(t, err, tt.expectedMsg)
		})
	}
}

func TestValidateStruct_PasswordChange(t *testing.T) {
	err := validator.ValidateStruct(&passwordRequest{CurrentPassword: "frontdesk1", NewPassword: "frontdesk1"})
	assert.EqualError(t, err, "NewPassword must differ from CurrentPassword")

	err = validator.ValidateStruct(&passwordRequest{CurrentPassword: "frontdesk1", NewPassword: "short"})
	assert.EqualError(t, err, "NewPassword must be greater than or equal to 8")

	assert.NoError(t, validator.ValidateStruct(&passwordRequest{CurrentPassword: "frontdesk1", NewPassword: "frontdesk2"}))
}

func fileHeader(contentType string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "room.img",
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
		Size:     size,
	}
}

func TestValidateStruct_RoomImage(t *testing.T) {
	tests := []struct {
		name        string
		image       *multipart.FileHeader
		expectedMsg string
	}{
		{name: "no image", image: nil},
		{name: "png", image: fileHeader("image/png", 512*1024)},
		{name: "jpeg", image: fileHeader("image/jpeg", 1024*1024)},
		{name: "pdf", image: fileHeader("application/pdf", 1024), expectedMsg: "Image must be one of image/png image/jpg image/jpeg"},
		{name: "too large", image: fileHeader("image/png", 2*1024*1024), expectedMsg: "Image must not exceed 1 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&roomImage{Image: tt.image})

			if tt.expectedMsg == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.expectedMsg)
		})
	}
}

func TestValidateStruct_RoomImageData(t *testing.T) {
	assert.NoError(t, validator.ValidateStruct(&roomImageData{Image: "data:image/png;base64,iVBORw0KGgo="}))
	assert.Error(t, validator.ValidateStruct(&roomImageData{Image: "data:image/gif;base64,R0lGODlh"}))
	assert.Error(t, validator.ValidateStruct(&roomImageData{Image: "iVBORw0KGgo="}))
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name    string
		field   any
		tag     string
		wantErr bool
	}{
		{name: "booking status", field: "Confirmed", tag: "oneof=Pending Confirmed Cancelled"},
		{name: "unknown booking status", field: "Lost", tag: "oneof=Pending Confirmed Cancelled", wantErr: true},
		{name: "room id", field: roomID, tag: "uuid"},
		{name: "empty room id", field: "", tag: "required,uuid", wantErr: true},
		{name: "stay date", field: "2024-02-29", tag: "datetime=2006-01-02"},
		{name: "impossible stay date", field: "2023-02-29", tag: "datetime=2006-01-02", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.wantErr {
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{
			name: "valid booking body",
			body: `{"name":"Ann Lee","room_id":"` + roomID + `","check_in":"2024-01-10","guests":1}`,
		},
		{
			name:     "missing fields",
			body:     `{"guests":1}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed json",
			body:     `{"name":`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "wrong type",
			body:     `{"name":"Ann Lee","guests":"two"}`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req guestRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "Ann Lee", req.Name)
		})
	}
}
