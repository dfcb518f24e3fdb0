package model

import (
	"fmt"
	"strings"
)

// Province is a Canadian province or territory code.
type Province string

const (
	ProvinceON Province = "ON"
	ProvinceBC Province = "BC"
	ProvinceAB Province = "AB"
	ProvinceQC Province = "QC"
	ProvinceSK Province = "SK"
	ProvinceMB Province = "MB"
	ProvinceNB Province = "NB"
	ProvinceNS Province = "NS"
	ProvincePE Province = "PE"
	ProvinceNL Province = "NL"
	ProvinceYT Province = "YT"
	ProvinceNT Province = "NT"
	ProvinceNU Province = "NU"
)

var provinceNames = map[Province]string{
	ProvinceON: "Ontario",
	ProvinceBC: "British Columbia",
	ProvinceAB: "Alberta",
	ProvinceQC: "Quebec",
	ProvinceSK: "Saskatchewan",
	ProvinceMB: "Manitoba",
	ProvinceNB: "New Brunswick",
	ProvinceNS: "Nova Scotia",
	ProvincePE: "Prince Edward Island",
	ProvinceNL: "Newfoundland and Labrador",
	ProvinceYT: "Yukon",
	ProvinceNT: "Northwest Territories",
	ProvinceNU: "Nunavut",
}

// Provinces lists every province and territory in display order.
var Provinces = []Province{
	ProvinceON, ProvinceBC, ProvinceAB, ProvinceQC, ProvinceSK, ProvinceMB, ProvinceNB,
	ProvinceNS, ProvincePE, ProvinceNL, ProvinceYT, ProvinceNT, ProvinceNU,
}

// Valid reports whether p is a known province code.
func (p Province) Valid() bool {
	_, ok := provinceNames[p]
	return ok
}

// Name returns the full province name, or the code itself when unknown.
func (p Province) Name() string {
	if n, ok := provinceNames[p]; ok {
		return n
	}
	return string(p)
}

// ParseProvince accepts a code in any case ("on", "ON").
func ParseProvince(s string) (Province, error) {
	p := Province(strings.ToUpper(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown province %q", s)
	}
	return p, nil
}
