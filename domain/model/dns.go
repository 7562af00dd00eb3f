package model

import "context"

// DNSRecordType represents provider-agnostic DNS record types.
type DNSRecordType string

const (
	DNSRecordTypeA     DNSRecordType = "A"
	DNSRecordTypeAAAA  DNSRecordType = "AAAA"
	DNSRecordTypeCNAME DNSRecordType = "CNAME"
)

// DefaultDNSRecordTTL is the TTL in seconds applied when a record set has none.
const DefaultDNSRecordTTL = 120

// DNSRecordSet describes a single DNS record set identified by FQDN and type.
type DNSRecordSet struct {
	FQDN  string // Absolute FQDN. Trailing dot is optional.
	Type  DNSRecordType
	TTL   uint32   // TTL in seconds. DefaultDNSRecordTTL when zero.
	RData []string // Presentation-format RDATA.
}

// InstancePort looks up compute instances.
type InstancePort interface {
	// InstancePublicIP returns the public IPv4 address of the instance.
	InstancePublicIP(ctx context.Context, instanceID string) (string, error)
}

// DNSPort mutates record sets in a hosted zone.
type DNSPort interface {
	// DNSUpsert creates or replaces the record set in the zone.
	DNSUpsert(ctx context.Context, zoneID string, rset DNSRecordSet) error
}
