package domains

import (
	"fmt"
	"slices"
	"strings"

	"registrar/pkg/domain"
	"registrar/pkg/serrors"
	"registrar/pkg/validate"
)

const (
	minNameservers = 2
	maxNameservers = 13
	maxDSRecords   = 8
)

// dsAlgorithms are the DNSSEC algorithm numbers accepted for DS records.
var dsAlgorithms = []int{3, 5, 6, 7, 8, 10, 13, 14, 15, 16} //nolint: gochecknoglobals

// dsDigestLengths maps a digest type to the hex length of its digest.
var dsDigestLengths = map[int]int{ //nolint: gochecknoglobals
	1: 40, // SHA-1
	2: 64, // SHA-256
}

func isSubdomain(host, domainName string) bool {
	return host == domainName || strings.HasSuffix(host, "."+domainName)
}

// NormalizeNameservers lower-cases hosts, drops trailing dots and blank rows
// and trims addresses.
func NormalizeNameservers(in []domain.Nameserver) []domain.Nameserver {
	out := make([]domain.Nameserver, 0, len(in))
	for _, ns := range in {
		host := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(ns.Host)), ".")
		ips := make([]string, 0, len(ns.IPs))
		for _, ip := range ns.IPs {
			if ip = strings.TrimSpace(ip); ip != "" {
				ips = append(ips, ip)
			}
		}
		if host == "" && len(ips) == 0 {
			continue
		}
		out = append(out, domain.Nameserver{Host: host, IPs: ips})
	}

	return out
}

// ValidateNameservers checks a normalized list of name servers of domainName.
// An empty list is valid and clears the delegation.
func ValidateNameservers(domainName string, nameservers []domain.Nameserver) serrors.FieldErrors {
	errs := serrors.FieldErrors{}
	if len(nameservers) == 0 {
		return errs
	}
	if len(nameservers) < minNameservers {
		errs.Add("nameservers", "At least two name servers are required.")
	}
	if len(nameservers) > maxNameservers {
		errs.Add("nameservers", fmt.Sprintf("You can't have more than %d name servers.", maxNameservers))
	}

	seen := map[string]bool{}
	for i, ns := range nameservers {
		field := fmt.Sprintf("nameservers.%d", i)
		switch {
		case ns.Host == "":
			errs.Add(field+".host", "Enter a name server in the required format, like ns1.example.com.")

			continue
		case !validate.Hostname(ns.Host):
			errs.Add(field+".host", "Enter a name server in the required format, like ns1.example.com.")
		case seen[ns.Host]:
			errs.Add(field+".host", "You already entered this name server address.")
		}
		seen[ns.Host] = true

		inZone := isSubdomain(ns.Host, domainName)
		switch {
		case inZone && len(ns.IPs) == 0:
			errs.Add(field+".ips", "Name server address is required when the name server is a subdomain of this domain.")
		case !inZone && len(ns.IPs) > 0:
			errs.Add(field+".ips", "Name server addresses are only allowed when the name server is a subdomain "+
				"of this domain, like ns1."+domainName+".")
		}
		for _, ip := range ns.IPs {
			if !validate.IP(ip) {
				errs.Add(field+".ips", fmt.Sprintf("%q is not a valid IPv4 or IPv6 address.", ip))
			}
		}
	}

	return errs
}

// ValidateDSData checks DNSSEC delegation signer records. Digests are
// upper-cased in place.
func ValidateDSData(records []domain.DSData) serrors.FieldErrors {
	errs := serrors.FieldErrors{}
	if len(records) > maxDSRecords {
		errs.Add("ds_data", fmt.Sprintf("You can't have more than %d DS records.", maxDSRecords))
	}

	for i := range records {
		field := fmt.Sprintf("ds_data.%d", i)
		r := &records[i]
		r.Digest = strings.ToUpper(strings.TrimSpace(r.Digest))

		if r.KeyTag < 0 || r.KeyTag > 65535 {
			errs.Add(field+".key_tag", "Enter a number between 0 and 65535.")
		}
		if !slices.Contains(dsAlgorithms, r.Algorithm) {
			errs.Add(field+".algorithm", "Select an algorithm.")
		}
		length, ok := dsDigestLengths[r.DigestType]
		if !ok {
			errs.Add(field+".digest_type", "Select a digest type.")
		}
		switch {
		case r.Digest == "":
			errs.Add(field+".digest", "Digest is required.")
		case !validate.Hex(r.Digest):
			errs.Add(field+".digest", "Enter a digest using only hexadecimal characters (0-9, A-F).")
		case ok && len(r.Digest) != length:
			errs.Add(field+".digest", fmt.Sprintf("Digest must be %d characters long for digest type %d.",
				length, r.DigestType))
		}
	}

	return errs
}
