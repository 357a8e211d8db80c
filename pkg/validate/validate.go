// Package validate holds the field validators shared by the request wizard,
// domain management and the migration loaders.
package validate

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/asaskevich/govalidator"
)

// maxEmailLength is the longest address a mailbox path may hold.
const maxEmailLength = "254"

var (
	labelRe   = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)
	zipcodeRe = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	phoneRe   = regexp.MustCompile(`^\+?[0-9().\-\s]{7,20}$`)
)

// Email reports whether s is a bare address such as name@agency.gov.
func Email(s string) bool {
	return govalidator.StringLength(s, "3", maxEmailLength) && govalidator.IsEmail(s)
}

// Label reports whether s is a valid lower-case DNS label.
func Label(s string) bool {
	return labelRe.MatchString(s)
}

// Hostname reports whether s is a fully qualified host name with at least two
// labels. A trailing dot is accepted.
func Hostname(s string) bool {
	s = strings.TrimSuffix(strings.ToLower(s), ".")
	if len(s) > 253 || !govalidator.IsDNSName(s) {
		return false
	}
	labels := strings.Split(s, ".")
	if len(labels) < 2 {
		return false
	}
	for _, l := range labels {
		if !Label(l) {
			return false
		}
	}

	return true
}

// IP reports whether s is a valid IPv4 or IPv6 address.
func IP(s string) bool {
	return govalidator.IsIP(strings.TrimSpace(s))
}

// Zipcode accepts five digit and ZIP+4 codes.
func Zipcode(s string) bool {
	return zipcodeRe.MatchString(s)
}

// Hex reports whether s is a non-empty hexadecimal string.
func Hex(s string) bool {
	return s != "" && govalidator.IsHexadecimal(s)
}

// Phone accepts common US phone notations.
func Phone(s string) bool {
	return phoneRe.MatchString(s)
}

// Website accepts host names optionally prefixed with http(s) and followed by a path.
func Website(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	if !govalidator.IsRequestURL(s) || !govalidator.IsURL(s) {
		return false
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}

	return Hostname(u.Hostname())
}
