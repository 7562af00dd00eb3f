package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/aws/aws-sdk-go/service/ec2/ec2iface"
	"github.com/aws/aws-sdk-go/service/route53"
	"github.com/aws/aws-sdk-go/service/route53/route53iface"
	"github.com/kompox/mcstack/domain/model"
	"k8s.io/utils/ptr"
)

type fakeEC2 struct {
	ec2iface.EC2API
	out *ec2.DescribeInstancesOutput
	err error
	got *ec2.DescribeInstancesInput
}

func (f *fakeEC2) DescribeInstancesWithContext(_ aws.Context, in *ec2.DescribeInstancesInput, _ ...request.Option) (*ec2.DescribeInstancesOutput, error) {
	f.got = in
	return f.out, f.err
}

type fakeRoute53 struct {
	route53iface.Route53API
	got *route53.ChangeResourceRecordSetsInput
	err error
}

func (f *fakeRoute53) ChangeResourceRecordSetsWithContext(_ aws.Context, in *route53.ChangeResourceRecordSetsInput, _ ...request.Option) (*route53.ChangeResourceRecordSetsOutput, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return &route53.ChangeResourceRecordSetsOutput{}, nil
}

func reservation(id string, ip *string) *ec2.Reservation {
	return &ec2.Reservation{Instances: []*ec2.Instance{{InstanceId: ptr.To(id), PublicIpAddress: ip}}}
}

func TestInstancePublicIP(t *testing.T) {
	tests := []struct {
		name   string
		out    *ec2.DescribeInstancesOutput
		err    error
		want   string
		wantIs error
	}{
		{
			name: "found",
			out:  &ec2.DescribeInstancesOutput{Reservations: []*ec2.Reservation{reservation("i-0aaa", ptr.To("203.0.113.7"))}},
			want: "203.0.113.7",
		},
		{
			name:   "no public ip",
			out:    &ec2.DescribeInstancesOutput{Reservations: []*ec2.Reservation{reservation("i-0aaa", nil)}},
			wantIs: model.ErrNoPublicIPAddress,
		},
		{
			name:   "not found",
			out:    &ec2.DescribeInstancesOutput{},
			wantIs: model.ErrInstanceNotFound,
		},
		{
			name:   "api error",
			err:    errors.New("UnauthorizedOperation"),
			wantIs: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeEC2{out: tt.out, err: tt.err}
			d := &Driver{EC2: f}
			got, err := d.InstancePublicIP(context.Background(), "i-0aaa")
			if aws.StringValue(f.got.InstanceIds[0]) != "i-0aaa" {
				t.Errorf("InstanceIds = %v", f.got.InstanceIds)
			}
			if tt.want != "" {
				if err != nil {
					t.Fatalf("InstancePublicIP() error = %v", err)
				}
				if got != tt.want {
					t.Errorf("InstancePublicIP() = %q, want %q", got, tt.want)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("error = %v, want %v", err, tt.wantIs)
			}
		})
	}
}

func TestDNSUpsert(t *testing.T) {
	f := &fakeRoute53{}
	d := &Driver{Route53: f}
	err := d.DNSUpsert(context.Background(), "/hostedzone/Z0123", model.DNSRecordSet{
		FQDN:  "mc.example.com.",
		Type:  model.DNSRecordTypeA,
		RData: []string{"203.0.113.7"},
	})
	if err != nil {
		t.Fatalf("DNSUpsert() error = %v", err)
	}
	if got := aws.StringValue(f.got.HostedZoneId); got != "Z0123" {
		t.Errorf("HostedZoneId = %q, want Z0123", got)
	}
	changes := f.got.ChangeBatch.Changes
	if len(changes) != 1 {
		t.Fatalf("len(Changes) = %d, want 1", len(changes))
	}
	c := changes[0]
	rrs := c.ResourceRecordSet
	if aws.StringValue(c.Action) != "UPSERT" || aws.StringValue(rrs.Name) != "mc.example.com" ||
		aws.StringValue(rrs.Type) != "A" || aws.Int64Value(rrs.TTL) != model.DefaultDNSRecordTTL {
		t.Errorf("change = %v", c)
	}
	if len(rrs.ResourceRecords) != 1 || aws.StringValue(rrs.ResourceRecords[0].Value) != "203.0.113.7" {
		t.Errorf("ResourceRecords = %v", rrs.ResourceRecords)
	}
}

func TestDNSUpsert_TTL(t *testing.T) {
	tests := []struct {
		name string
		ttl  uint32
		want int64
	}{
		{name: "zero uses default", ttl: 0, want: model.DefaultDNSRecordTTL},
		{name: "explicit", ttl: 300, want: 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeRoute53{}
			d := &Driver{Route53: f}
			err := d.DNSUpsert(context.Background(), "Z0123", model.DNSRecordSet{
				FQDN:  "mc.example.com",
				Type:  model.DNSRecordTypeA,
				TTL:   tt.ttl,
				RData: []string{"203.0.113.7"},
			})
			if err != nil {
				t.Fatalf("DNSUpsert() error = %v", err)
			}
			if got := aws.Int64Value(f.got.ChangeBatch.Changes[0].ResourceRecordSet.TTL); got != tt.want {
				t.Errorf("TTL = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDNSUpsert_Invalid(t *testing.T) {
	tests := []struct {
		name string
		zone string
		rset model.DNSRecordSet
	}{
		{name: "no fqdn", zone: "Z", rset: model.DNSRecordSet{Type: model.DNSRecordTypeA, RData: []string{"1.2.3.4"}}},
		{name: "bad type", zone: "Z", rset: model.DNSRecordSet{FQDN: "a", Type: "MX", RData: []string{"x"}}},
		{name: "no rdata", zone: "Z", rset: model.DNSRecordSet{FQDN: "a", Type: model.DNSRecordTypeA}},
		{name: "multi cname", zone: "Z", rset: model.DNSRecordSet{FQDN: "a", Type: model.DNSRecordTypeCNAME, RData: []string{"b", "c"}}},
		{name: "no zone", zone: " ", rset: model.DNSRecordSet{FQDN: "a", Type: model.DNSRecordTypeA, RData: []string{"1.2.3.4"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeRoute53{}
			d := &Driver{Route53: f}
			if err := d.DNSUpsert(context.Background(), tt.zone, tt.rset); err == nil {
				t.Fatal("expected error")
			}
			if f.got != nil {
				t.Error("Route 53 called for invalid input")
			}
		})
	}
}
