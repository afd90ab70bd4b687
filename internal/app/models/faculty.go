package models

// Faculty represents a faculty of the institution
type Faculty struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// The recognised faculties and their 3-letter codes. Registration
// numbers are prefixed with the faculty code.
var FacultyCodes = map[string]string{
	"Computing and Information Technology":  "CIT",
	"Engineering and Technology":            "ENG",
	"Business and Economics":                "BUS",
	"Health Sciences":                       "HSC",
	"Education and Social Sciences":         "EDU",
	"Agriculture and Environmental Studies": "AGR",
}

// FacultyCode returns the 3-letter code for a faculty name, and whether
// the faculty is recognised.
func FacultyCode(name string) (string, bool) {
	code, ok := FacultyCodes[name]
	return code, ok
}
