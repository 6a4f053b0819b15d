package clientrouting

import (
	"github.com/jroosing/clientrouting/internal/bitpack"
	"github.com/jroosing/clientrouting/internal/subnet"
)

// LabelVersion is the format version written into every encoded label.
const LabelVersion = 1

// Field widths in bits, in wire order. These are compatibility constants:
// the upstream routing tier slices the bit stream at exactly these offsets.
const (
	versionBits = 10
	familyBits  = 1
	subnetBits  = 64
	maskBits    = 6
	cgidBits    = 64

	labelBits = versionBits + familyBits + subnetBits + maskBits + cgidBits
)

// encodedLabelLength is the character count of a client routing label. The
// field widths are family-independent in version 1, so the length is the
// same for IPv4 and IPv6 labels.
const encodedLabelLength = (labelBits + bitpack.SymbolBits - 1) / bitpack.SymbolBits

// DecodedClientRoutingLabel is the structured form of a client routing
// label.
type DecodedClientRoutingLabel struct {
	// ClientSDKVersion is the format version the label declares.
	ClientSDKVersion uint16
	// IsIPv6 reports the address family of ClientSubnet.
	IsIPv6 bool
	// ClientSubnet is the client address, left-aligned: for IPv4 only the
	// first 4 bytes are meaningful, for IPv6 the 8 bytes hold the most
	// significant 64 bits of the address. Bytes past SubnetMask bits are
	// zero.
	ClientSubnet [8]byte
	// SubnetMask is the number of leading bits of ClientSubnet that are
	// significant. Everything past it was zeroed at encode time.
	SubnetMask uint8
	// CGID is the content group identifier hash, 0 when none was supplied.
	CGID uint64
}

// encodeLabel packs subnet data and a cgid hash into a label string.
func encodeLabel(data subnet.Data, cgidHash uint64) string {
	var family uint64
	if data.IsIPv6 {
		family = 1
	}

	var w bitpack.Writer
	w.WriteBits(LabelVersion, versionBits)
	w.WriteBits(family, familyBits)
	w.WriteBits(data.Subnet, subnetBits)
	w.WriteBits(uint64(data.Mask), maskBits)
	w.WriteBits(cgidHash, cgidBits)
	return w.String()
}

// decodeLabel validates and unpacks a single bare label. DNS is
// case-insensitive, so uppercase ASCII letters are folded before the
// alphabet lookup; a content error still reports the character as passed.
func decodeLabel(label string) (DecodedClientRoutingLabel, error) {
	if label == "" {
		return DecodedClientRoutingLabel{}, &DecodeContentError{Position: -1}
	}

	if len(label) != encodedLabelLength {
		return DecodedClientRoutingLabel{}, &DecodeLengthError{
			NumChars:         len(label),
			ExpectedNumChars: encodedLabelLength,
		}
	}

	values := make([]byte, len(label))
	for i := 0; i < len(label); i++ {
		c := label[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		v, ok := bitpack.SymbolValue(c)
		if !ok {
			return DecodedClientRoutingLabel{}, &DecodeContentError{
				Position: i,
				Char:     label[i],
			}
		}
		values[i] = v
	}

	r := bitpack.NewReader(values)
	out := DecodedClientRoutingLabel{
		ClientSDKVersion: uint16(r.ReadBits(versionBits)),
		IsIPv6:           r.ReadBits(familyBits) != 0,
	}
	rawSubnet := r.ReadBits(subnetBits)
	out.SubnetMask = uint8(r.ReadBits(maskBits))
	out.CGID = r.ReadBits(cgidBits)

	for i := 0; i < 8; i++ {
		out.ClientSubnet[i] = byte(rawSubnet >> (56 - 8*i))
	}
	return out, nil
}
