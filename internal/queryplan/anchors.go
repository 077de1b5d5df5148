package queryplan

import (
	"strings"

	"lingoreel/internal/lexicon"
)

var domainAnchors = map[lexicon.Domain][]string{
	lexicon.DomainFood:       {"cafe interior", "coffee shop interior", "barista making coffee"},
	lexicon.DomainPharmacy:   {"pharmacy interior shelves", "medicine counter pharmacy"},
	lexicon.DomainAirport:    {"modern airport interior", "airport departure hall"},
	lexicon.DomainBank:       {"bank counter interior", "atm machine"},
	lexicon.DomainClothing:   {"clothing store interior", "fashion display"},
	lexicon.DomainDirections: {"city street view", "town square plaza"},
	lexicon.DomainDoctor:     {"clinic waiting room", "doctor with patient"},
	lexicon.DomainHotel:      {"hotel reception front desk", "hotel lobby"},
	lexicon.DomainPhone:      {"electronics store interior", "phone shop display"},
	lexicon.DomainPost:       {"post office counter", "mail shipping counter"},
	lexicon.DomainGeneric:    {"people indoors", "object closeup"},
}

// Anchors returns the curated fallback phrases for a domain. Unknown
// domains get the generic anchors.
func Anchors(domain lexicon.Domain) []string {
	if a, ok := domainAnchors[domain]; ok {
		return append([]string(nil), a...)
	}
	return append([]string(nil), domainAnchors[lexicon.DomainGeneric]...)
}

type domainKeyword struct {
	keyword string
	domain  lexicon.Domain
}

// domainKeywords is checked in order; the first keyword that prefixes a
// sentence token decides the domain.
var domainKeywords = []domainKeyword{
	{"airport", lexicon.DomainAirport}, {"gate", lexicon.DomainAirport},
	{"boarding", lexicon.DomainAirport}, {"passport", lexicon.DomainAirport},
	{"bank", lexicon.DomainBank}, {"transfer", lexicon.DomainBank}, {"pin", lexicon.DomainBank},
	{"parcel", lexicon.DomainPost}, {"post", lexicon.DomainPost}, {"stamp", lexicon.DomainPost},
	{"pharmacy", lexicon.DomainPharmacy}, {"thermometer", lexicon.DomainPharmacy}, {"vitamin", lexicon.DomainPharmacy},
	{"hotel", lexicon.DomainHotel}, {"towel", lexicon.DomainHotel}, {"pillow", lexicon.DomainHotel}, {"invoice", lexicon.DomainHotel},
	{"sim", lexicon.DomainPhone}, {"smartphone", lexicon.DomainPhone}, {"charger", lexicon.DomainPhone},
	{"cable", lexicon.DomainPhone}, {"case", lexicon.DomainPhone},
	{"jacket", lexicon.DomainClothing}, {"dress", lexicon.DomainClothing}, {"belt", lexicon.DomainClothing},
	{"shoes", lexicon.DomainClothing}, {"fitting", lexicon.DomainClothing},
	{"bus", lexicon.DomainDirections}, {"bridge", lexicon.DomainDirections}, {"map", lexicon.DomainDirections},
	{"street", lexicon.DomainDirections}, {"square", lexicon.DomainDirections},
	{"fever", lexicon.DomainDoctor}, {"cough", lexicon.DomainDoctor}, {"throat", lexicon.DomainDoctor},
	{"stomach", lexicon.DomainDoctor},
	{"coffee", lexicon.DomainFood}, {"cafe", lexicon.DomainFood}, {"tea", lexicon.DomainFood},
}

// GuessDomain picks a domain from sentence tokens when no concept matched.
func GuessDomain(tokens []string) lexicon.Domain {
	for _, kw := range domainKeywords {
		for _, tok := range tokens {
			if strings.HasPrefix(tok, kw.keyword) {
				return kw.domain
			}
		}
	}
	return lexicon.DomainGeneric
}

// DomainFromFileName infers the scenario domain of a reference text from
// its file name.
func DomainFromFileName(name string) lexicon.Domain {
	f := strings.ToLower(name)
	switch {
	case strings.Contains(f, "pharmacy"):
		return lexicon.DomainPharmacy
	case strings.Contains(f, "airport"):
		return lexicon.DomainAirport
	case strings.Contains(f, "bank"):
		return lexicon.DomainBank
	case strings.Contains(f, "clothing"), strings.Contains(f, "clothes"):
		return lexicon.DomainClothing
	case strings.Contains(f, "directions"):
		return lexicon.DomainDirections
	case strings.Contains(f, "doctor"):
		return lexicon.DomainDoctor
	case strings.Contains(f, "hotel"):
		return lexicon.DomainHotel
	case strings.Contains(f, "phone"):
		return lexicon.DomainPhone
	case strings.Contains(f, "post"):
		return lexicon.DomainPost
	case strings.Contains(f, "cafe"):
		return lexicon.DomainFood
	}
	return lexicon.DomainGeneric
}
