package dns

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kompox/mcstack/domain/model"
	"github.com/kompox/mcstack/internal/logging"
)

// DefaultTTL is the TTL of records written by Update, in seconds.
const DefaultTTL = model.DefaultDNSRecordTTL

// UpdateInput holds parameters for pointing the domain at a launched instance.
type UpdateInput struct {
	// Event is the instance launch event as delivered by the event rule.
	Event        json.RawMessage `json:"event"`
	HostedZoneID string          `json:"hosted_zone_id"`
	DomainName   string          `json:"domain_name"`
	TTL          uint32          `json:"ttl,omitempty"`
	DryRun       bool            `json:"dry_run,omitempty"`
}

// UpdateOutput holds the result of the record update.
type UpdateOutput struct {
	InstanceID string          `json:"instance_id"`
	Result     DNSRecordResult `json:"result"`
}

// DNSRecordResult describes the result of a DNS operation.
type DNSRecordResult struct {
	FQDN    string              `json:"fqdn"`
	Type    model.DNSRecordType `json:"type"`
	Action  string              `json:"action"` // "updated" or "planned"
	Message string              `json:"message"`
}

// launchEvent accepts the instance id under detail (event bus delivery) or
// under event (direct invocation payload).
type launchEvent struct {
	Detail *struct {
		EC2InstanceID string `json:"EC2InstanceId"`
	} `json:"detail"`
	Event *struct {
		EC2InstanceID string `json:"EC2InstanceId"`
	} `json:"event"`
}

// InstanceIDFromEvent extracts the launched instance id from an event payload.
func InstanceIDFromEvent(data []byte) (string, error) {
	var ev launchEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return "", fmt.Errorf("decode event: %w", err)
	}
	switch {
	case ev.Detail != nil && ev.Detail.EC2InstanceID != "":
		return ev.Detail.EC2InstanceID, nil
	case ev.Event != nil && ev.Event.EC2InstanceID != "":
		return ev.Event.EC2InstanceID, nil
	default:
		return "", fmt.Errorf("event has no EC2InstanceId")
	}
}

// Update UPSERTs an A record for the domain pointing at the instance's public address.
func (u *UseCase) Update(ctx context.Context, in *UpdateInput) (*UpdateOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}
	if in.HostedZoneID == "" {
		return nil, fmt.Errorf("HostedZoneID is required")
	}
	if in.DomainName == "" {
		return nil, fmt.Errorf("DomainName is required")
	}
	instanceID, err := InstanceIDFromEvent(in.Event)
	if err != nil {
		return nil, err
	}
	logger := logging.FromContext(ctx).With("instance", instanceID)

	ip, err := u.InstancePort.InstancePublicIP(ctx, instanceID)
	if err != nil {
		return nil, fmt.Errorf("get instance %s: %w", instanceID, err)
	}

	ttl := in.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	rset := model.DNSRecordSet{
		FQDN:  strings.TrimSuffix(in.DomainName, "."),
		Type:  model.DNSRecordTypeA,
		TTL:   ttl,
		RData: []string{ip},
	}
	result := DNSRecordResult{FQDN: rset.FQDN, Type: rset.Type}
	if in.DryRun {
		result.Action = "planned"
		result.Message = fmt.Sprintf("would upsert %s -> %s", rset.Type, ip)
		logger.Info(ctx, "dns update planned", "fqdn", rset.FQDN, "ip", ip)
		return &UpdateOutput{InstanceID: instanceID, Result: result}, nil
	}
	if err := u.DNSPort.DNSUpsert(ctx, in.HostedZoneID, rset); err != nil {
		return nil, fmt.Errorf("apply DNS for %s: %w", rset.FQDN, err)
	}
	result.Action = "updated"
	result.Message = fmt.Sprintf("%s -> %s", rset.Type, ip)
	logger.Info(ctx, "dns updated", "fqdn", rset.FQDN, "ip", ip, "zone", in.HostedZoneID)
	return &UpdateOutput{InstanceID: instanceID, Result: result}, nil
}
