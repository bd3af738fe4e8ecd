package discovery

import "time"

// DateOfBirthLayout is the wire format for child birth dates.
const DateOfBirthLayout = "2006-01-02"

// AgeAt returns the age in completed years at the reference date. If the
// reference month/day falls before the birthday's month/day the age is
// reduced by one.
func AgeAt(dateOfBirth, at time.Time) int {
	age := at.Year() - dateOfBirth.Year()
	if at.Month() < dateOfBirth.Month() ||
		(at.Month() == dateOfBirth.Month() && at.Day() < dateOfBirth.Day()) {
		age--
	}
	if age < 0 {
		age = 0
	}
	return age
}

// AgeFromString parses a YYYY-MM-DD birth date and returns the age at the
// reference date. Unparseable dates yield -1 so callers can skip them.
func AgeFromString(dateOfBirth string, at time.Time) int {
	dob, err := time.Parse(DateOfBirthLayout, dateOfBirth)
	if err != nil {
		return -1
	}
	return AgeAt(dob, at)
}
