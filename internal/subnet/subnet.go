// Package subnet turns a client IP string into the subnet data carried by a
// client routing label: a left-aligned 64-bit subnet value, the canonical
// mask for the address family, and the family flag.
//
// The mask is not caller-supplied. Each family has a fixed default precision
// chosen to balance routing granularity and privacy: /24 for IPv4, /48 for
// IPv6. Every bit past the mask is zeroed before the value leaves this
// package, so the truncation is part of the encoded value, not a decode-time
// interpretation.
package subnet

import (
	"encoding/binary"
	"fmt"
	"net/netip"
)

// Canonical per-family mask widths, in significant leading bits.
const (
	IPv4Mask = 24
	IPv6Mask = 48
)

// Data holds the three subnet-derived fields of a client routing label.
type Data struct {
	// Subnet is the client address left-aligned in 64 bits: IPv4 octets fill
	// the 4 most significant bytes, IPv6 contributes the most significant
	// 64 bits of the address. Bits past Mask are zero.
	Subnet uint64
	// Mask is the number of leading bits of Subnet that are significant.
	Mask uint8
	// IsIPv6 reports the address family.
	IsIPv6 bool
}

// Parse parses clientIP and returns its mask-truncated subnet data.
// IPv4-mapped IPv6 addresses (::ffff:a.b.c.d) are treated as IPv6, matching
// the family declared by the textual form.
func Parse(clientIP string) (Data, error) {
	addr, err := netip.ParseAddr(clientIP)
	if err != nil {
		return Data{}, fmt.Errorf("parse client ip: %w", err)
	}

	if addr.Is4() {
		b := addr.As4()
		v := uint64(binary.BigEndian.Uint32(b[:])) << 32
		return Data{Subnet: truncate(v, IPv4Mask), Mask: IPv4Mask}, nil
	}

	b := addr.As16()
	v := binary.BigEndian.Uint64(b[:8])
	return Data{Subnet: truncate(v, IPv6Mask), Mask: IPv6Mask, IsIPv6: true}, nil
}

// truncate zeroes every bit of v past the leading `mask` bits.
func truncate(v uint64, mask uint8) uint64 {
	return v &^ (^uint64(0) >> mask)
}
