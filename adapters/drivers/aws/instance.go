package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/kompox/mcstack/domain/model"
	"github.com/kompox/mcstack/internal/logging"
)

// InstancePublicIP returns the public IPv4 address of the instance.
func (d *Driver) InstancePublicIP(ctx context.Context, instanceID string) (string, error) {
	log := logging.FromContext(ctx)
	out, err := d.EC2.DescribeInstancesWithContext(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []*string{aws.String(instanceID)},
	})
	if err != nil {
		return "", fmt.Errorf("describe instance %s: %w", instanceID, err)
	}
	for _, r := range out.Reservations {
		for _, inst := range r.Instances {
			if aws.StringValue(inst.InstanceId) != instanceID {
				continue
			}
			ip := aws.StringValue(inst.PublicIpAddress)
			if ip == "" {
				return "", fmt.Errorf("%w: %s", model.ErrNoPublicIPAddress, instanceID)
			}
			log.Debug(ctx, "instance address resolved", "instance", instanceID, "ip", ip)
			return ip, nil
		}
	}
	return "", fmt.Errorf("%w: %s", model.ErrInstanceNotFound, instanceID)
}
