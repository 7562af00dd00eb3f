// Package aws implements the DNS updater ports on EC2 and Route 53.
package aws

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/aws/aws-sdk-go/service/ec2/ec2iface"
	"github.com/aws/aws-sdk-go/service/route53"
	"github.com/aws/aws-sdk-go/service/route53/route53iface"
	"github.com/kompox/mcstack/domain/model"
)

// Driver looks up instances and writes record sets.
type Driver struct {
	EC2     ec2iface.EC2API
	Route53 route53iface.Route53API
}

// New creates a driver from the shared AWS configuration. An empty region
// falls back to AWS_REGION and the shared config file.
func New(region string) (*Driver, error) {
	opts := session.Options{SharedConfigState: session.SharedConfigEnable}
	if region != "" {
		opts.Config.Region = aws.String(region)
	}
	sess, err := session.NewSessionWithOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("create AWS session: %w", err)
	}
	return &Driver{EC2: ec2.New(sess), Route53: route53.New(sess)}, nil
}

var (
	_ model.InstancePort = (*Driver)(nil)
	_ model.DNSPort      = (*Driver)(nil)
)
