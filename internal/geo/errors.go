package geo

import (
	"fmt"
	"strconv"
)

// LocationErrorCode mirrors the browser geolocation error codes.
type LocationErrorCode int

const (
	Unsupported      LocationErrorCode = 0
	PermissionDenied LocationErrorCode = 1
	Unavailable      LocationErrorCode = 2
	Timeout          LocationErrorCode = 3
)

// LocationError reports why the user's position could not be used.
// Callers fall back to the unfiltered event set.
type LocationError struct {
	Code    LocationErrorCode `json:"code"`
	Message string            `json:"message"`
}

func (e *LocationError) Error() string { return e.Message }

// NewLocationError builds a LocationError with the standard message for code.
func NewLocationError(code LocationErrorCode) *LocationError {
	msg := "Unknown error occurred"
	switch code {
	case Unsupported:
		msg = "Geolocation is not supported by this browser."
	case PermissionDenied:
		msg = "User denied the request for Geolocation."
	case Unavailable:
		msg = "Location information is unavailable."
	case Timeout:
		msg = "The request to get user location timed out."
	}
	return &LocationError{Code: code, Message: msg}
}

// ParseOrigin reads a user position from raw latitude/longitude strings.
// A geoError code reported by the client takes precedence.
func ParseOrigin(lat, lng, geoError string) (Coordinate, error) {
	if geoError != "" {
		code, err := strconv.Atoi(geoError)
		if err != nil {
			return Coordinate{}, NewLocationError(-1)
		}
		return Coordinate{}, NewLocationError(LocationErrorCode(code))
	}
	la, errLat := strconv.ParseFloat(lat, 64)
	ln, errLng := strconv.ParseFloat(lng, 64)
	if errLat != nil || errLng != nil {
		return Coordinate{}, NewLocationError(Unavailable)
	}
	c := Coordinate{Lat: la, Lng: ln}
	if !c.Valid() {
		return Coordinate{}, fmt.Errorf("coordinate %v out of range: %w", c, NewLocationError(Unavailable))
	}
	return c, nil
}
