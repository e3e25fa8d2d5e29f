package physics

// Units describes how simulation quantities are shown to people. Systems
// using the SI constant are shown in days and AU; anything else is in the
// system's own natural units.
type Units struct {
	SI         bool
	Time       float64 // simulation seconds per displayed time unit
	TimeName   string
	Length     float64 // simulation metres per displayed length unit
	LengthName string
}

// UnitsFor picks the display units for a system with gravitational constant g.
func UnitsFor(g float64) Units {
	if g == G {
		return Units{SI: true, Time: Day, TimeName: "days", Length: AU, LengthName: "AU"}
	}
	return Units{Time: 1, TimeName: "t", Length: 1, LengthName: "L"}
}
