package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/route53"
	"github.com/kompox/mcstack/domain/model"
	"github.com/kompox/mcstack/internal/logging"
)

// normalizeZoneID strips the "/hostedzone/" prefix returned by some APIs.
func normalizeZoneID(id string) string {
	return strings.TrimPrefix(strings.TrimSpace(id), "/hostedzone/")
}

// normalizeDNSRecordSet validates and normalizes the input record set.
func normalizeDNSRecordSet(rset *model.DNSRecordSet) error {
	if rset.FQDN == "" {
		return fmt.Errorf("FQDN is required")
	}
	rset.FQDN = strings.TrimSuffix(rset.FQDN, ".")

	switch rset.Type {
	case model.DNSRecordTypeA, model.DNSRecordTypeAAAA, model.DNSRecordTypeCNAME:
	default:
		return fmt.Errorf("unsupported DNS record type: %s", rset.Type)
	}
	if len(rset.RData) == 0 {
		return fmt.Errorf("record set %s has no RData", rset.FQDN)
	}
	if rset.Type == model.DNSRecordTypeCNAME && len(rset.RData) > 1 {
		return fmt.Errorf("CNAME record must have exactly one RData entry, got %d", len(rset.RData))
	}
	if rset.TTL == 0 {
		rset.TTL = model.DefaultDNSRecordTTL
	}
	return nil
}

// DNSUpsert creates or replaces the record set in the hosted zone.
func (d *Driver) DNSUpsert(ctx context.Context, zoneID string, rset model.DNSRecordSet) error {
	log := logging.FromContext(ctx)
	if err := normalizeDNSRecordSet(&rset); err != nil {
		return err
	}
	zoneID = normalizeZoneID(zoneID)
	if zoneID == "" {
		return fmt.Errorf("hosted zone id is required")
	}

	records := make([]*route53.ResourceRecord, 0, len(rset.RData))
	for _, v := range rset.RData {
		records = append(records, &route53.ResourceRecord{Value: aws.String(v)})
	}
	_, err := d.Route53.ChangeResourceRecordSetsWithContext(ctx, &route53.ChangeResourceRecordSetsInput{
		HostedZoneId: aws.String(zoneID),
		ChangeBatch: &route53.ChangeBatch{
			Comment: aws.String("Updating"),
			Changes: []*route53.Change{{
				Action: aws.String(route53.ChangeActionUpsert),
				ResourceRecordSet: &route53.ResourceRecordSet{
					Name:            aws.String(rset.FQDN),
					Type:            aws.String(string(rset.Type)),
					TTL:             aws.Int64(int64(rset.TTL)),
					ResourceRecords: records,
				},
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("upsert %s %s in zone %s: %w", rset.Type, rset.FQDN, zoneID, err)
	}
	log.Info(ctx, "DNS record upserted", "fqdn", rset.FQDN, "type", rset.Type, "zone", zoneID)
	return nil
}
