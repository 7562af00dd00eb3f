package stack

import (
	"context"

	"github.com/kompox/mcstack/domain/model"
)

// Data volume of the workload.
const (
	DataVolumeName = "data"
	DataMountPath  = "/data"
)

// createStorage declares the shared file system reachable only from the cluster
// boundary. The file system depends on its connectivity rule so creation and
// teardown never race with the workload.
func createStorage(ctx context.Context, sc *synthContext) error {
	b := sc.builder
	rc := sc.cluster

	boundary, err := b.CreateResource(ctx, model.Resource{
		ID:   "storage-security-group",
		Kind: model.KindSecurityGroup,
		Properties: map[string]any{
			"name":        sc.names.PhysicalName("storage"),
			"network":     rc.Network.Attr("id"),
			"description": "shared storage",
		},
	})
	if err != nil {
		return err
	}
	if err := b.DependOn(ctx, boundary, rc.Network); err != nil {
		return err
	}
	rule, err := b.AddIngressRule(ctx, boundary, model.IngressRule{
		Protocol:    model.ProtocolTCP,
		Port:        PortNFS,
		Source:      rc.Boundary.Attr("id"),
		Description: "nfs from cluster",
	})
	if err != nil {
		return err
	}

	fs, err := b.CreateResource(ctx, model.Resource{
		ID:   "file-system",
		Kind: model.KindFileSystem,
		Properties: map[string]any{
			"name":            sc.storageName(),
			"network":         rc.Network.Attr("id"),
			"securityGroups":  []string{boundary.Attr("id")},
			"encrypted":       true,
			"performanceMode": "generalPurpose",
			"throughputMode":  "bursting",
			"removalPolicy":   "retain",
		},
	})
	if err != nil {
		return err
	}
	for _, dep := range []model.ResourceRef{boundary, rule} {
		if err := b.DependOn(ctx, fs, dep); err != nil {
			return err
		}
	}
	sc.fileSystem = fs
	return nil
}

func (sc *synthContext) storageName() string { return sc.names.PhysicalName("data") }

// createWorkloadSkeleton declares the execution identity and mounts the data volume.
func createWorkloadSkeleton(ctx context.Context, sc *synthContext) error {
	b := sc.builder
	role, err := b.CreateResource(ctx, model.Resource{
		ID:   "workload-role",
		Kind: model.KindRole,
		Properties: map[string]any{
			"name":      sc.names.PhysicalName("workload"),
			"assumedBy": "ecs-tasks.amazonaws.com",
		},
	})
	if err != nil {
		return err
	}
	sc.role = role
	grant, err := createGrant(ctx, b, "storage-grant", role.Attr("arn"),
		[]string{"elasticfilesystem:ClientMount", "elasticfilesystem:ClientWrite"}, sc.fileSystem.Attr("arn"), sc.fileSystem, role)
	if err != nil {
		return err
	}
	sc.workload = &workloadDraft{
		volumes: []map[string]any{{
			"name":       DataVolumeName,
			"fileSystem": sc.fileSystem.Attr("id"),
			"encryption": "transit",
		}},
		mounts: []map[string]any{{
			"sourceVolume":  DataVolumeName,
			"containerPath": DataMountPath,
			"readOnly":      false,
		}},
		dependsOn: []model.ResourceRef{sc.fileSystem, role, grant},
	}
	return nil
}
