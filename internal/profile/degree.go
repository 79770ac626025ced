package profile

import "strings"

// DegreeLevel orders academic degrees from unknown to doctorate.
type DegreeLevel int

const (
	DegreeUnknown DegreeLevel = iota
	DegreeCertificate
	DegreeAssociate
	DegreeBachelor
	DegreeMaster
	DegreeDoctorate
)

func (d DegreeLevel) String() string {
	switch d {
	case DegreeCertificate:
		return "Certificate"
	case DegreeAssociate:
		return "Associate"
	case DegreeBachelor:
		return "Bachelor's"
	case DegreeMaster:
		return "Master's"
	case DegreeDoctorate:
		return "PhD"
	}
	return "Unknown"
}

var degreeTokens = map[string]DegreeLevel{
	"phd":           DegreeDoctorate,
	"doctorate":     DegreeDoctorate,
	"doctoral":      DegreeDoctorate,
	"dphil":         DegreeDoctorate,
	"master":        DegreeMaster,
	"masters":       DegreeMaster,
	"mba":           DegreeMaster,
	"msc":           DegreeMaster,
	"ms":            DegreeMaster,
	"ma":            DegreeMaster,
	"meng":          DegreeMaster,
	"bachelor":      DegreeBachelor,
	"bachelors":     DegreeBachelor,
	"bsc":           DegreeBachelor,
	"bs":            DegreeBachelor,
	"ba":            DegreeBachelor,
	"beng":          DegreeBachelor,
	"associate":     DegreeAssociate,
	"associates":    DegreeAssociate,
	"diploma":       DegreeCertificate,
	"certificate":   DegreeCertificate,
	"certification": DegreeCertificate,
	"bootcamp":      DegreeCertificate,
}

// ParseDegreeLevel scans free degree text ("M.S. in Systems Engineering")
// and returns the highest level named in it. Matching is token-based so
// that "ms" inside a longer word never counts.
func ParseDegreeLevel(s string) DegreeLevel {
	best := DegreeUnknown
	for _, tok := range degreeFields(s) {
		if lvl, ok := degreeTokens[tok]; ok && lvl > best {
			best = lvl
		}
	}
	return best
}

func degreeFields(s string) []string {
	s = strings.ToLower(s)
	s = strings.NewReplacer(".", "", "'", "", "’", "").Replace(s)
	return strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
}
