package model

// AddressPair holds the public addresses observed in one publish run
type AddressPair struct {
	IPv4 string
	IPv6 string
}

// Content renders the pair in the record file format: "<ipv4>;<ipv6>"
func (p AddressPair) Content() string {
	return p.IPv4 + ";" + p.IPv6
}
