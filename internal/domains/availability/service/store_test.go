package service_test

import (
	"context"
	"reflect"

	gDto "hotel/shared/dto"
)

// serve answers GetAll calls from rows, honouring the filters the resolver builds.
func serve[T any](rows *[]T) func(context.Context, gDto.QueryParams, gDto.FilterGroup, ...string) ([]T, error) {
	return func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]T, error) {
		res := []T{}

		for _, row := range *rows {
			if matchGroup(columns(row), filter) {
				res = append(res, row)
			}
		}

		return res, nil
	}
}

func columns(row any) map[string]any {
	values := map[string]any{}
	val := reflect.ValueOf(row)
	typ := val.Type()

	for i := range typ.NumField() {
		if tag := typ.Field(i).Tag.Get("db"); tag != "" {
			values[tag] = val.Field(i).Interface()
		}
	}

	return values
}

func matchGroup(values map[string]any, group gDto.FilterGroup) bool {
	if len(group.Filters) == 0 {
		return true
	}

	for _, filter := range group.Filters {
		var ok bool

		switch f := filter.(type) {
		case gDto.Filter:
			ok = matchFilter(values, f)
		case gDto.FilterGroup:
			ok = matchGroup(values, f)
		}

		if group.Operator == gDto.FilterGroupOperatorOr && ok {
			return true
		}

		if group.Operator != gDto.FilterGroupOperatorOr && !ok {
			return false
		}
	}

	return group.Operator != gDto.FilterGroupOperatorOr
}

func matchFilter(values map[string]any, filter gDto.Filter) bool {
	value := values[filter.Field]

	switch filter.Operator {
	case gDto.FilterOperatorEq:
		return value == filter.Value
	case gDto.FilterOperatorNotEq:
		return value != filter.Value
	case gDto.FilterOperatorIn:
		list := reflect.ValueOf(filter.Value)
		for i := range list.Len() {
			if list.Index(i).Interface() == value {
				return true
			}
		}

		return false
	default:
		return false
	}
}
