// Package clientrouting encodes client network metadata (IP subnet, address
// family, a reserved content group identifier, and a format version) into a
// single DNS label, and decodes such a label back into its structured form.
//
// The label is prepended to an outgoing query's domain so that an upstream
// resolver can route on the requesting client's subnet without out-of-band
// data. Only a fixed-precision prefix of the address is encoded (/24 for
// IPv4, /48 for IPv6); everything past it is zeroed before encoding, so the
// label never carries a full client address.
//
// Wire format:
//
//	[version:10][is_ipv6:1][client_subnet:64][subnet_mask:6][cgid:64]
//
// packed MSB-first and rendered as 29 characters of the lowercase RFC 4648
// base32 alphabet, which satisfies DNS label character and length rules.
//
// Both directions are pure and stateless: any failure is returned as an
// error value, nothing is logged, and calls may run concurrently without
// coordination.
package clientrouting

import (
	"strings"

	"github.com/jroosing/clientrouting/internal/cgid"
	"github.com/jroosing/clientrouting/internal/subnet"
)

// Encode returns fqdn with a client routing label prepended as a new
// leftmost DNS label.
//
// clientIP must be a valid dotted-decimal IPv4 or colon-form IPv6 address;
// anything else is rejected with *InvalidInputError. contentGroupID is
// reserved and must be empty; a non-empty value is rejected rather than
// silently dropped (use EncodeWithContentGroup to populate the field). fqdn
// is not validated and is appended verbatim after the label and a dot.
func Encode(clientIP, contentGroupID, fqdn string) (string, error) {
	if contentGroupID != "" {
		return "", &InvalidInputError{
			Field:  "content_group_id",
			Value:  contentGroupID,
			Reason: "field is reserved and must be empty",
		}
	}
	return encodeDomain(clientIP, 0, fqdn)
}

// EncodeWithContentGroup is Encode with the content group field populated:
// a non-empty contentGroupID is hashed into the label's 64-bit cgid field
// (an empty one encodes as 0, same as Encode).
func EncodeWithContentGroup(clientIP, contentGroupID, fqdn string) (string, error) {
	return encodeDomain(clientIP, cgid.Hash(contentGroupID), fqdn)
}

func encodeDomain(clientIP string, cgidHash uint64, fqdn string) (string, error) {
	data, err := subnet.Parse(clientIP)
	if err != nil {
		return "", &InvalidInputError{
			Field:  "client_ip",
			Value:  clientIP,
			Reason: "not an IPv4 or IPv6 address",
		}
	}
	return encodeLabel(data, cgidHash) + "." + fqdn, nil
}

// Decode extracts and decodes the client routing label from domain, which
// may be a bare label or a full multi-label domain. Only the first label is
// inspected; the suffix never influences the result.
//
// A label of the wrong length yields *DecodeLengthError with the actual and
// expected character counts. An empty label, or a length-correct label with
// a character outside the label alphabet, yields *DecodeContentError.
// Matching is case-insensitive.
func Decode(domain string) (DecodedClientRoutingLabel, error) {
	label, _, _ := strings.Cut(domain, ".")
	return decodeLabel(label)
}
