package vocab

import "strings"

// Service types accepted by the appointment endpoint.
const (
	ServiceLasik       = "LASIK CONSULTANT"
	ServiceExam        = "COMPREHENSIVE EYE EXAM"
	ServiceContactLens = "CONTACT LENS FITTING"
	ServiceDryEye      = "DRY EYE TREATMENT"
)

// InsuranceProviders lists the accepted insurance values; anything else
// normalizes to "Other".
var InsuranceProviders = []string{
	"VSP",
	"EyeMed",
	"Spectera",
	"Humana Vision",
	"Cigna",
	"UnitedHealthcare",
	"Other",
}

// Locations lists the clinic locations the backend accepts.
var Locations = []string{"Plantation", "Boca Raton", "West Palm"}

// ServiceToBackend maps the display service name to the appointment
// endpoint's service_type. Unknown services return false and are omitted
// from the payload.
func ServiceToBackend(service string) (string, bool) {
	switch service {
	case "Comprehensive Exam":
		return ServiceExam, true
	case "Contact Lens Fitting":
		return ServiceContactLens, true
	case "Dry Eye Treatment":
		return ServiceDryEye, true
	case "LASIK Consult":
		return ServiceLasik, true
	default:
		return "", false
	}
}

// NormalizeLocation returns the backend location if the value matches one of
// the known clinics, otherwise false.
func NormalizeLocation(loc string) (string, bool) {
	for _, l := range Locations {
		if l == loc {
			return l, true
		}
	}
	return "", false
}

// NormalizeInsurance matches case-insensitively against the known providers.
// Any custom input collapses to "Other".
func NormalizeInsurance(ins string) (string, bool) {
	if ins == "" {
		return "", false
	}
	for _, p := range InsuranceProviders {
		if strings.EqualFold(p, ins) {
			return p, true
		}
	}
	return "Other", true
}
