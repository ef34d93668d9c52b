package dto_test

import (
	"net/http"
	"testing"

	"hotel/internal/domains/availability/model/dto"
	refModel "hotel/internal/domains/reference/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestAvailabilityRequest_Dates(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.AvailabilityRequest
		wantDays int
		wantErr  bool
	}{
		{name: "valid stay", req: dto.AvailabilityRequest{CheckIn: "2024-01-15", CheckOut: "2024-01-20"}, wantDays: 5},
		{name: "bad check-in", req: dto.AvailabilityRequest{CheckIn: "15/01/2024", CheckOut: "2024-01-20"}, wantErr: true},
		{name: "bad check-out", req: dto.AvailabilityRequest{CheckIn: "2024-01-15", CheckOut: "tomorrow"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkIn, checkOut, err := tt.req.Dates()

			if tt.wantErr {
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantDays, int(checkOut.Sub(checkIn).Hours()/24))
		})
	}
}

func TestAvailabilityResponse_FromModels(t *testing.T) {
	catalog := refModel.NewCatalog(nil, nil, []refModel.RoomType{{ID: 1, Name: "Standard"}})

	var res dto.AvailabilityResponse
	res.FromModels(
		dto.AvailabilityRequest{CheckIn: "2024-01-15", CheckOut: "2024-01-20"},
		[]roomModel.Room{{ID: "a", Number: "101", TypeID: 1}, {ID: "b", Number: "202", TypeID: 1}},
		catalog,
	)

	assert.Equal(t, 2, res.Total)
	assert.Equal(t, "2024-01-15", res.CheckIn)
	assert.Equal(t, "101", res.Rooms[0].Number)
	assert.Equal(t, "Standard", res.Rooms[1].TypeName)
}
