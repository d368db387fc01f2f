package curve

import "strconv"

// Unit is the temperature scale appended to column labels.
type Unit uint8

const (
	Celsius Unit = iota
	Fahrenheit
	Kelvin
)

func (u Unit) String() string {
	switch u {
	case Celsius:
		return "℃"
	case Fahrenheit:
		return "℉"
	case Kelvin:
		return "K"
	default:
		return "?"
	}
}

// Label formats a sample as a rounded integer followed by the unit, e.g.
// "36℃".
func (u Unit) Label(value float32) string {
	return strconv.Itoa(int(round(value))) + u.String()
}
