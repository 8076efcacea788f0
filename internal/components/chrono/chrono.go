package chrono

import "time"

type API interface {
	Now() time.Time
	Location() *time.Location
}

// StandardImpl reads the system clock in a fixed location.
type StandardImpl struct {
	location *time.Location
}

// NewStandardImpl loads the named IANA location, "" means the local one.
func NewStandardImpl(location string) (StandardImpl, error) {
	if location == "" {
		return StandardImpl{location: time.Local}, nil
	}
	loc, err := time.LoadLocation(location)
	if err != nil {
		return StandardImpl{}, err
	}
	return StandardImpl{location: loc}, nil
}

func (s StandardImpl) Now() time.Time {
	return time.Now().In(s.location)
}

func (s StandardImpl) Location() *time.Location {
	return s.location
}
