package stack

import (
	"context"

	"github.com/kompox/mcstack/domain/model"
)

// RCONSecretLength is the length of the generated remote console password.
const RCONSecretLength = 32

// rconFeature generates the remote console password and opens its port.
type rconFeature struct{}

func (rconFeature) name() string { return "rcon" }

func (rconFeature) enabled(s *model.Stack) bool { return s.RCON }

func (rconFeature) compose(ctx context.Context, sc *synthContext) (contribution, error) {
	b := sc.builder
	secret, err := b.CreateResource(ctx, model.Resource{
		ID:   "rcon-secret",
		Kind: model.KindSecret,
		Properties: map[string]any{
			"name": sc.names.PhysicalName("rcon"),
			"generate": map[string]any{
				"length":             RCONSecretLength,
				"excludePunctuation": true,
			},
		},
	})
	if err != nil {
		return contribution{}, err
	}
	grant, err := createGrant(ctx, b, "rcon-secret-read", sc.role.Attr("arn"),
		[]string{"secretsmanager:GetSecretValue", "secretsmanager:DescribeSecret"}, secret.Attr("arn"), secret, sc.role)
	if err != nil {
		return contribution{}, err
	}
	if _, err := b.AddIngressRule(ctx, sc.cluster.Boundary, model.IngressRule{
		Protocol:    model.ProtocolTCP,
		Port:        PortRCON,
		Source:      model.AnyIPv4,
		Description: "rcon",
	}); err != nil {
		return contribution{}, err
	}
	sc.workload.dependsOn = append(sc.workload.dependsOn, secret, grant)
	return contribution{rconSecret: &secret}, nil
}
