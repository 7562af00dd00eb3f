package stack

import (
	"context"
	"strings"

	"github.com/kompox/mcstack/domain/model"
)

// DNS updater function settings.
const (
	DNSUpdaterHandler      = "mcstack dns update"
	EnvHostedZoneID        = "HOSTED_ZONE_ID"
	EnvDomainName          = "DOMAIN_NAME"
	LaunchEventSource      = "aws.autoscaling"
	LaunchEventDetailType  = "EC2 Instance Launch Successful"
	LaunchEventGroupDetail = "AutoScalingGroupName"
)

// HostedZoneARN returns the ARN of a Route 53 hosted zone.
func HostedZoneARN(zoneID string) string {
	return "arn:aws:route53:::hostedzone/" + zoneID
}

// composeCustomDomain wires a function that keeps the domain pointing at
// each newly launched host of the cluster's capacity group.
func composeCustomDomain(ctx context.Context, sc *synthContext) error {
	d := sc.stack.CustomDomain
	if d == nil {
		return nil
	}
	b := sc.builder
	// The hosted zone belongs to the caller and is only referenced.
	zoneID := strings.TrimPrefix(d.HostedZoneID, "/hostedzone/")
	zone := model.ExternalRef(model.KindDNSZone, zoneID)
	fn, err := b.CreateResource(ctx, model.Resource{
		ID:   "dns-updater",
		Kind: model.KindFunction,
		Properties: map[string]any{
			"name":    sc.names.PhysicalName("dns"),
			"handler": DNSUpdaterHandler,
			"timeout": 30,
			"environment": map[string]string{
				EnvHostedZoneID: d.HostedZoneID,
				EnvDomainName:   d.DomainName,
			},
		},
	})
	if err != nil {
		return err
	}
	if _, err := createGrant(ctx, b, "dns-updater-records", fn.Attr("roleArn"),
		[]string{"route53:ChangeResourceRecordSets"}, HostedZoneARN(zoneID), fn, zone); err != nil {
		return err
	}
	if _, err := createGrant(ctx, b, "dns-updater-instances", fn.Attr("roleArn"),
		[]string{"ec2:DescribeInstances"}, "*", fn); err != nil {
		return err
	}
	trigger, err := b.RegisterEventRule(ctx, model.EventRule{
		ID: "dns-updater-trigger",
		Pattern: model.EventPattern{
			Source:     []string{LaunchEventSource},
			DetailType: []string{LaunchEventDetailType},
			Detail:     map[string][]string{LaunchEventGroupDetail: {sc.cluster.CapacityGroupName}},
		},
		Target: fn,
	})
	if err != nil {
		return err
	}
	return b.DependOn(ctx, trigger, sc.cluster.CapacityGroup)
}
