package service_test

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"testing"

	"hotel/config"
	"hotel/infras/otel/mocks"
	s3Mocks "hotel/infras/s3/mocks"
	refMocks "hotel/internal/domains/reference/mocks"
	refModel "hotel/internal/domains/reference/model"
	roomMocks "hotel/internal/domains/room/mocks"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	"hotel/shared/cache"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type roomDeps struct {
	repo      *roomMocks.MockRoom
	reference *refMocks.MockReference
	cache     *cacheMocks.MockRedisCache
	s3        *s3Mocks.MockS3
	svc       service.Room
}

func newRoomDeps(t *testing.T) roomDeps {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "rooms"

	d := roomDeps{
		repo:      roomMocks.NewMockRoom(ctrl),
		reference: refMocks.NewMockReference(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		s3:        s3Mocks.NewMockS3(ctrl),
	}

	d.svc = service.New(d.repo, d.reference, cfg, d.cache, mocks.NewOtel(), d.s3)

	d.reference.EXPECT().Catalog(gomock.Any()).Return(roomCatalog(), nil).AnyTimes()
	d.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	d.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	d.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	d.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return d
}

func roomCatalog() refModel.Catalog {
	return refModel.NewCatalog(nil,
		[]refModel.RoomStatus{
			{ID: 1, Name: refModel.RoomStatusAvailable},
			{ID: 2, Name: refModel.RoomStatusOccupied},
			{ID: 3, Name: refModel.RoomStatusMaintenance},
		},
		[]refModel.RoomType{
			{ID: 1, Name: "Standard", MaxGuests: 2},
			{ID: 2, Name: "Deluxe", MaxGuests: 3},
		},
	)
}

func staffCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
}

func TestRoomService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateRoomRequest
		setupMock func(d roomDeps)
		wantCode  int
	}{
		{
			name: "status defaults to available",
			req:  dto.CreateRoomRequest{Number: "101", TypeID: 1, Price: 450000},
			setupMock: func(d roomDeps) {
				d.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				d.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, room model.Room) error {
					assert.Equal(t, 1, room.StatusID)
					assert.Equal(t, "101", room.Number)
					assert.True(t, room.Active)
					assert.Equal(t, "staff-1", room.CreatedBy)

					return nil
				})
			},
		},
		{
			name:      "unknown room type",
			req:       dto.CreateRoomRequest{Number: "101", TypeID: 9},
			setupMock: func(d roomDeps) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "unknown room status",
			req:       dto.CreateRoomRequest{Number: "101", TypeID: 1, StatusID: 9},
			setupMock: func(d roomDeps) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "number already taken",
			req:  dto.CreateRoomRequest{Number: "101", TypeID: 1},
			setupMock: func(d roomDeps) {
				d.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "unique violation from the store",
			req:  dto.CreateRoomRequest{Number: "101", TypeID: 1},
			setupMock: func(d roomDeps) {
				d.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				d.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("failed to insert data (room): %w", &pq.Error{Code: constant.PqErrorCodeUniqueViolation}))
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "uploaded image is removed when insert fails",
			req:  dto.CreateRoomRequest{Number: "101", TypeID: 2, Image: &multipart.FileHeader{Filename: "room.png"}},
			setupMock: func(d roomDeps) {
				d.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				d.s3.EXPECT().UploadFile(gomock.Any(), "rooms", model.EntityName, gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn/room/x.png", nil)
				d.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
				d.s3.EXPECT().DeleteFile(gomock.Any(), "rooms", model.EntityName, gomock.Any()).Return(nil)
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newRoomDeps(t)
			tt.setupMock(d)

			err := d.svc.Create(staffCtx(), tt.req)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	t.Run("resolves catalog names", func(t *testing.T) {
		d := newRoomDeps(t)
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(model.Room{ID: "r1", Number: "101", TypeID: 2, StatusID: 3, Active: true}, nil)

		res, err := d.svc.Get(context.Background(), "r1")

		assert.NoError(t, err)
		assert.Equal(t, "Deluxe", res.TypeName)
		assert.Equal(t, refModel.RoomStatusMaintenance, res.StatusName)
	})

	t.Run("missing room", func(t *testing.T) {
		d := newRoomDeps(t)
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := d.svc.Get(context.Background(), "r1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_GetAll(t *testing.T) {
	d := newRoomDeps(t)
	d.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	d.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Room{
		{ID: "r1", Number: "101", TypeID: 1, StatusID: 1},
		{ID: "r2", Number: "102", TypeID: 2, StatusID: 1},
	}, nil)

	res, err := d.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 2}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Rooms, 2)
	assert.Equal(t, "Standard", res.Rooms[0].TypeName)
}

func TestRoomService_Update(t *testing.T) {
	current := model.Room{ID: "r1", Number: "101", TypeID: 1, StatusID: 1, Image: "https://cdn/room/old.png"}

	t.Run("replaces image and removes the old one", func(t *testing.T) {
		d := newRoomDeps(t)
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		d.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn/room/new.png", nil)
		d.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "https://cdn/room/new.png", fields[model.FieldImage])

				return nil
			})
		d.s3.EXPECT().GetObjectNameFromURL("rooms", current.Image).Return("old.png")
		d.s3.EXPECT().DeleteFile(gomock.Any(), "rooms", model.EntityName, "old.png").Return(nil)

		err := d.svc.Update(staffCtx(), dto.UpdateRoomRequest{Image: &multipart.FileHeader{Filename: "new.png"}}, "r1")
		assert.NoError(t, err)
	})

	t.Run("missing room", func(t *testing.T) {
		d := newRoomDeps(t)
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		err := d.svc.Update(staffCtx(), dto.UpdateRoomRequest{Number: "201"}, "r1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("unknown status", func(t *testing.T) {
		d := newRoomDeps(t)
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)

		err := d.svc.Update(staffCtx(), dto.UpdateRoomRequest{StatusID: 7}, "r1")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("renumber onto a taken number", func(t *testing.T) {
		d := newRoomDeps(t)
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		d.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := d.svc.Update(staffCtx(), dto.UpdateRoomRequest{Number: "102"}, "r1")
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestRoomService_Delete(t *testing.T) {
	t.Run("retires the room", func(t *testing.T) {
		d := newRoomDeps(t)
		d.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		d.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, false, fields[model.FieldActive])
				assert.Equal(t, "staff-1", fields[constant.FieldModifiedBy])

				return nil
			})

		assert.NoError(t, d.svc.Delete(staffCtx(), "r1"))
	})

	t.Run("missing room", func(t *testing.T) {
		d := newRoomDeps(t)
		d.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := d.svc.Delete(staffCtx(), "r1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
