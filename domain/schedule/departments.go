package schedule

import "strings"

// Faculty names.
const (
	FacultyBusiness       = "Bang College of Business"
	FacultySocialSciences = "College of Social Sciences"
	FacultyHumanSciences  = "College of Human Sciences & Education"
	FacultyLaw            = "Law School"
	FacultyComputing      = "School of Computer Science & Mathematics"
)

// facultyByPrefix is the fixed course-code prefix table. It is never mutated.
var facultyByPrefix = map[string]string{
	"ACC": FacultyBusiness,
	"BUS": FacultyBusiness,
	"FIN": FacultyBusiness,
	"MGT": FacultyBusiness,
	"MKT": FacultyBusiness,
	"OPM": FacultyBusiness,
	"IFS": FacultyBusiness,
	"EBA": FacultyBusiness,
	"MM":  FacultyBusiness,

	"ECN": FacultySocialSciences,
	"IRL": FacultySocialSciences,
	"POL": FacultySocialSciences,
	"PAD": FacultySocialSciences,
	"PAF": FacultySocialSciences,
	"SOC": FacultySocialSciences,
	"CSS": FacultySocialSciences,
	"GEN": FacultySocialSciences,

	"JMC":  FacultyHumanSciences,
	"PSY":  FacultyHumanSciences,
	"EPM":  FacultyHumanSciences,
	"TFL":  FacultyHumanSciences,
	"TRN":  FacultyHumanSciences,
	"LING": FacultyHumanSciences,
	"COGN": FacultyHumanSciences,
	"ENG":  FacultyHumanSciences,
	"KAZ":  FacultyHumanSciences,
	"RUS":  FacultyHumanSciences,
	"CHN":  FacultyHumanSciences,
	"GER":  FacultyHumanSciences,
	"KOR":  FacultyHumanSciences,
	"LDP":  FacultyHumanSciences,
	"FOP":  FacultyHumanSciences,

	"LAW": FacultyLaw,

	"CIT":  FacultyComputing,
	"CLP":  FacultyComputing,
	"SCS":  FacultyComputing,
	"MATH": FacultyComputing,
}

// CodePrefix returns the leading run of ASCII letters of the upper-cased code.
func CodePrefix(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	end := 0
	for end < len(code) && code[end] >= 'A' && code[end] <= 'Z' {
		end++
	}
	return code[:end]
}

// DepartmentFor maps a course code to its faculty. Blank codes and codes with
// no alphabetic prefix are Unknown; prefixes outside the table are Other.
func DepartmentFor(code string) string {
	prefix := CodePrefix(code)
	if prefix == "" {
		return Unknown
	}
	if faculty, ok := facultyByPrefix[prefix]; ok {
		return faculty
	}
	return Other
}

// Faculties returns the distinct faculty names of the prefix table.
func Faculties() []string {
	return []string{FacultyBusiness, FacultySocialSciences, FacultyHumanSciences, FacultyLaw, FacultyComputing}
}
