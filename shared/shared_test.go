package shared_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel/shared"
	"hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/shared/dto"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "true", input: "true", expected: boolPtr(true)},
		{name: "false", input: "false", expected: boolPtr(false)},
		{name: "1", input: "1", expected: boolPtr(true)},
		{name: "invalid returns nil", input: "maybe", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestConvertStringToInt(t *testing.T) {
	value, err := shared.ConvertStringToInt(" 42 ")
	assert.NoError(t, err)
	assert.Equal(t, 42, value)

	_, err = shared.ConvertStringToInt("forty-two")
	assert.Error(t, err)
}

func TestConvertStringToFloat(t *testing.T) {
	value, err := shared.ConvertStringToFloat("450000.50")
	assert.NoError(t, err)
	assert.InDelta(t, 450000.50, value, 0.001)

	_, err = shared.ConvertStringToFloat("")
	assert.Error(t, err)
}

func TestSplitCommaSeparated(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "blank", input: "   ", expected: nil},
		{name: "single", input: "101", expected: []string{"101"}},
		{name: "trims and drops empty items", input: " a, ,b ,", expected: []string{"a", "b"}},
		{name: "collapses duplicates", input: "a,b,a", expected: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.SplitCommaSeparated(tt.input))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		total, limit, expected int
	}{
		{total: 0, limit: 10, expected: 1},
		{total: 10, limit: 0, expected: 1},
		{total: 10, limit: 10, expected: 1},
		{total: 11, limit: 10, expected: 2},
		{total: 95, limit: 10, expected: 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
	}
}

func TestTransformFields(t *testing.T) {
	type request struct {
		RoomID  string `db:"room_id"`
		Price   *int   `db:"price"`
		Notes   string `db:"notes"`
		NoDBTag string
	}

	price := 0
	result := shared.TransformFields(request{RoomID: "r-1", Price: &price, NoDBTag: "ignored"}, "staff-1")

	assert.Equal(t, "r-1", result["room_id"])
	assert.Equal(t, &price, result["price"])
	assert.NotContains(t, result, "notes")
	assert.NotContains(t, result, "NoDBTag")
	assert.Equal(t, "staff-1", result[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("123", "id", "rooms")

	where, args := filter.GetWhereClause()
	assert.Equal(t, "(rooms.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "123"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get", shared.BuildCacheKey("room:get"))
	assert.Equal(t, "room:get:abc", shared.BuildCacheKey("room:get", "abc"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filterA := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "number", Value: "101", Operator: dto.FilterOperatorEq},
		},
	}
	filterB := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "number", Value: "102", Operator: dto.FilterOperatorEq},
		},
	}

	keyA := shared.BuildCacheKeyWithQuery("room:gets", params, filterA)

	assert.Equal(t, keyA, shared.BuildCacheKeyWithQuery("room:gets", params, filterA))
	assert.NotEqual(t, keyA, shared.BuildCacheKeyWithQuery("room:gets", params, filterB))
	assert.NotEqual(t, keyA, shared.BuildCacheKeyWithQuery("room:gets", dto.QueryParams{Page: 2, Limit: 10}, filterA))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := mocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Clear(gomock.Any(), "room:gets*").Return(nil)
	mockCache.EXPECT().Clear(gomock.Any(), "room:count*").Return(errors.New("redis down"))

	shared.InvalidateCaches(context.Background(), mockCache, "room:gets")
	shared.InvalidateCaches(context.Background(), mockCache, "room:count")
}

func boolPtr(b bool) *bool {
	return &b
}
