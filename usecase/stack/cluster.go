package stack

import (
	"context"
	"fmt"
	"net"

	"github.com/apparentlymart/go-cidr/cidr"
	"github.com/kompox/mcstack/domain/model"
)

// Network layout of a provisioned cluster.
const (
	NetworkCIDR       = "10.0.0.0/16"
	SubnetMaskSize    = 26
	AvailabilityZones = 2
)

// Ports referenced by ingress rules and port mappings.
const (
	PortSSH      = 22
	PortGame     = 25565
	PortRCON     = 25575
	PortNFS      = 2049
	ICMPEchoType = 8
)

const capacityLabel = "capacity"

// resolveCluster adopts or provisions the cluster selected by source.
func resolveCluster(ctx context.Context, sc *synthContext, source model.ClusterSource) (*model.ResolvedCluster, error) {
	switch src := source.(type) {
	case model.AdoptedCluster:
		return adoptCluster(src.Cluster), nil
	case model.ProvisionedCluster:
		return provisionCluster(ctx, sc, src.Options)
	default:
		return nil, fmt.Errorf("unsupported cluster source %T", source)
	}
}

// adoptCluster references the caller's resources without creating any.
func adoptCluster(c model.ExistingCluster) *model.ResolvedCluster {
	clusterID := c.ARN
	if clusterID == "" {
		clusterID = c.Name
	}
	return &model.ResolvedCluster{
		Network:           model.ExternalRef(model.KindNetwork, c.Network.ID),
		Cluster:           model.ExternalRef(model.KindCluster, clusterID),
		Boundary:          model.ExternalRef(model.KindSecurityGroup, c.SecurityGroupID),
		CapacityGroup:     model.ExternalRef(model.KindCapacityGroup, c.CapacityGroupName),
		CapacityGroupName: c.CapacityGroupName,
		Capacity:          model.Capacity{Min: model.ClusterMinCapacity, Max: model.ClusterMaxCapacity},
		Adopted:           true,
	}
}

func provisionCluster(ctx context.Context, sc *synthContext, o model.ClusterOptions) (*model.ResolvedCluster, error) {
	b := sc.builder
	rc := &model.ResolvedCluster{
		Capacity: model.Capacity{Min: model.ClusterMinCapacity, Max: model.ClusterMaxCapacity},
	}

	var subnets []model.ResourceRef
	if o.Network != nil {
		rc.Network = model.ExternalRef(model.KindNetwork, o.Network.ID)
	} else {
		network, err := b.CreateResource(ctx, model.Resource{
			ID:   "network",
			Kind: model.KindNetwork,
			Properties: map[string]any{
				"name":              sc.names.PhysicalName("network"),
				"cidr":              NetworkCIDR,
				"availabilityZones": AvailabilityZones,
			},
		})
		if err != nil {
			return nil, err
		}
		rc.Network = network
		subnets, err = createSubnets(ctx, sc, network)
		if err != nil {
			return nil, err
		}
	}

	boundary, err := b.CreateResource(ctx, model.Resource{
		ID:   "cluster-security-group",
		Kind: model.KindSecurityGroup,
		Properties: map[string]any{
			"name":        sc.names.PhysicalName("hosts"),
			"network":     rc.Network.Attr("id"),
			"description": "game server hosts",
		},
	})
	if err != nil {
		return nil, err
	}
	if err := b.DependOn(ctx, boundary, rc.Network); err != nil {
		return nil, err
	}
	rc.Boundary = boundary

	cluster, err := b.CreateResource(ctx, model.Resource{
		ID:   "cluster",
		Kind: model.KindCluster,
		Properties: map[string]any{
			"name":    sc.names.PhysicalName("cluster"),
			"network": rc.Network.Attr("id"),
		},
	})
	if err != nil {
		return nil, err
	}
	if err := b.DependOn(ctx, cluster, rc.Network); err != nil {
		return nil, err
	}
	rc.Cluster = cluster

	props := map[string]any{
		"name":           sc.names.PhysicalName(capacityLabel),
		"cluster":        cluster.Attr("name"),
		"instanceType":   o.InstanceType,
		"minCapacity":    rc.Capacity.Min,
		"maxCapacity":    rc.Capacity.Max,
		"securityGroups": []string{boundary.Attr("id")},
		"publicAddress":  true,
	}
	if o.KeyName != "" {
		props["keyName"] = o.KeyName
	}
	if o.SpotPrice != "" {
		props["spotPrice"] = o.SpotPrice
	}
	if len(subnets) > 0 {
		ids := make([]string, 0, len(subnets))
		for _, s := range subnets {
			ids = append(ids, s.Attr("id"))
		}
		props["subnets"] = ids
	} else {
		props["network"] = rc.Network.Attr("id")
		if len(o.Network.AvailabilityZones) > 0 {
			props["availabilityZones"] = o.Network.AvailabilityZones
		}
	}
	group, err := b.CreateResource(ctx, model.Resource{ID: "capacity-group", Kind: model.KindCapacityGroup, Properties: props})
	if err != nil {
		return nil, err
	}
	for _, dep := range append([]model.ResourceRef{cluster, boundary}, subnets...) {
		if err := b.DependOn(ctx, group, dep); err != nil {
			return nil, err
		}
	}
	rc.CapacityGroup = group
	rc.CapacityGroupName = sc.names.PhysicalName(capacityLabel)
	return rc, nil
}

// createSubnets carves one public /26 per availability zone out of NetworkCIDR.
func createSubnets(ctx context.Context, sc *synthContext, network model.ResourceRef) ([]model.ResourceRef, error) {
	_, base, err := net.ParseCIDR(NetworkCIDR)
	if err != nil {
		return nil, err
	}
	ones, _ := base.Mask.Size()
	refs := make([]model.ResourceRef, 0, AvailabilityZones)
	for i := 0; i < AvailabilityZones; i++ {
		subnet, err := cidr.Subnet(base, SubnetMaskSize-ones, i)
		if err != nil {
			return nil, fmt.Errorf("subnet %d: %w", i, err)
		}
		ref, err := sc.builder.CreateResource(ctx, model.Resource{
			ID:   fmt.Sprintf("public-subnet-%d", i),
			Kind: model.KindSubnet,
			Properties: map[string]any{
				"network":               network.Attr("id"),
				"cidr":                  subnet.String(),
				"availabilityZoneIndex": i,
				"mapPublicIpOnLaunch":   true,
			},
		})
		if err != nil {
			return nil, err
		}
		if err := sc.builder.DependOn(ctx, ref, network); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// attachBaselineIngress opens administrative, game and echo access on the
// cluster boundary regardless of how the cluster was resolved.
func attachBaselineIngress(ctx context.Context, b model.GraphBuilder, rc *model.ResolvedCluster) error {
	rules := []model.IngressRule{
		{Protocol: model.ProtocolTCP, Port: PortSSH, Source: model.AnyIPv4, Description: "ssh"},
		{Protocol: model.ProtocolTCP, Port: PortGame, Source: model.AnyIPv4, Description: "game"},
		{Protocol: model.ProtocolICMP, Port: ICMPEchoType, Source: model.AnyIPv4, Description: "ping"},
	}
	for _, r := range rules {
		if _, err := b.AddIngressRule(ctx, rc.Boundary, r); err != nil {
			return err
		}
	}
	return nil
}
