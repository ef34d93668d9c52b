package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel/config"
	"hotel/infras/otel/mocks"
	checkInMocks "hotel/internal/domains/checkin/mocks"
	"hotel/jobs"
	"hotel/shared/constant"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestScheduler_CompleteStays(t *testing.T) {
	t.Run("runs the sweep as the system user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		checkIn := checkInMocks.NewMockCheckInService(ctrl)

		checkIn.EXPECT().CompleteDueStays(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, asOf time.Time) (int, error) {
			assert.Equal(t, constant.SystemUser, ctx.Value(constant.ContextKeyUserID))
			assert.WithinDuration(t, time.Now(), asOf, time.Minute)

			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)

			return 2, nil
		})

		jobs.New(checkIn, &config.Config{}, mocks.NewOtel()).CompleteStays()
	})

	t.Run("failures are logged, not raised", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		checkIn := checkInMocks.NewMockCheckInService(ctrl)

		checkIn.EXPECT().CompleteDueStays(gomock.Any(), gomock.Any()).Return(0, errors.New("db down"))

		assert.NotPanics(t, func() {
			jobs.New(checkIn, &config.Config{}, mocks.NewOtel()).CompleteStays()
		})
	})
}

func TestScheduler_Start(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		scheduler := jobs.New(checkInMocks.NewMockCheckInService(ctrl), &config.Config{}, mocks.NewOtel())

		assert.NoError(t, scheduler.Start())
		scheduler.Stop(context.Background())
	})

	t.Run("invalid spec", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		cfg := &config.Config{}
		cfg.Jobs.Enable = true
		cfg.Jobs.CompleteStaysSpec = "not a spec"

		scheduler := jobs.New(checkInMocks.NewMockCheckInService(ctrl), cfg, mocks.NewOtel())

		assert.Error(t, scheduler.Start())
	})

	t.Run("valid spec", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		cfg := &config.Config{}
		cfg.Jobs.Enable = true
		cfg.Jobs.CompleteStaysSpec = "@hourly"

		scheduler := jobs.New(checkInMocks.NewMockCheckInService(ctrl), cfg, mocks.NewOtel())

		assert.NoError(t, scheduler.Start())

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		scheduler.Stop(ctx)
	})
}
