package grades

// Grade is an ECTS letter band.
type Grade string

const (
	A Grade = "A"
	B Grade = "B"
	C Grade = "C"
	D Grade = "D"
	E Grade = "E"
	F Grade = "F"
)

// Order lists the bands from best to worst.
var Order = []Grade{A, B, C, D, E, F}

// ECTS classifies a numeric score. A nil value has no grade.
func ECTS(value *float64) (Grade, bool) {
	if value == nil {
		return "", false
	}
	v := *value
	switch {
	case v >= 90:
		return A, true
	case v >= 82:
		return B, true
	case v >= 74:
		return C, true
	case v >= 65:
		return D, true
	case v >= 60:
		return E, true
	default:
		return F, true
	}
}

// Sample is one (course, value) pair as read from the points table. Value is
// nil for ungraded entries and for courses without any points.
type Sample struct {
	CourseID int64
	Title    string
	Semester int64
	Value    *float64
}

type Distribution struct {
	CourseID int64
	Title    string
	Semester int64
	Counts   map[Grade]int
	Total    int
}

func (d Distribution) Count(g Grade) int {
	return d.Counts[g]
}

// Tally groups samples by course and counts the grade bands. Courses keep the
// order in which they first appear; ungraded samples still produce a row.
func Tally(samples []Sample) []Distribution {
	index := make(map[int64]int)
	result := make([]Distribution, 0)
	for _, s := range samples {
		i, ok := index[s.CourseID]
		if !ok {
			i = len(result)
			index[s.CourseID] = i
			result = append(result, Distribution{
				CourseID: s.CourseID,
				Title:    s.Title,
				Semester: s.Semester,
				Counts:   make(map[Grade]int, len(Order)),
			})
		}
		if g, ok := ECTS(s.Value); ok {
			result[i].Counts[g]++
			result[i].Total++
		}
	}
	return result
}
