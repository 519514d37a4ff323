package ioclimate

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnagro/pkg/errcode"
)

// RequestError is returned when the archive request cannot be made or
// does not finish in time.
func RequestError(lat, lon float64, err error) error {
	return &gn.Error{
		Code: errcode.ClimateRequestError,
		Msg:  "Climate archive request failed for <em>%v, %v</em>",
		Vars: []any{lat, lon},
		Err:  fmt.Errorf("archive request (%v, %v): %w", lat, lon, err),
	}
}

// StatusError is returned for non-200 archive responses.
func StatusError(lat, lon float64, status int) error {
	return &gn.Error{
		Code: errcode.ClimateStatusError,
		Msg:  "Climate archive returned status <em>%d</em>",
		Vars: []any{status},
		Err:  fmt.Errorf("archive status %d for (%v, %v)", status, lat, lon),
	}
}

// DecodeError is returned when the archive response is not valid JSON.
func DecodeError(lat, lon float64, err error) error {
	return &gn.Error{
		Code: errcode.ClimateDecodeError,
		Msg:  "Cannot decode climate archive response",
		Err:  fmt.Errorf("archive decode (%v, %v): %w", lat, lon, err),
	}
}

// EmptySeriesError is returned when the response has no usable values.
func EmptySeriesError(lat, lon float64, err error) error {
	return &gn.Error{
		Code: errcode.ClimateEmptySeriesError,
		Msg:  "Climate archive has no data for <em>%v, %v</em>",
		Vars: []any{lat, lon},
		Err:  fmt.Errorf("archive empty series (%v, %v): %w", lat, lon, err),
	}
}
