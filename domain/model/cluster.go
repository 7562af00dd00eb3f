package model

// Capacity bounds of the cluster's capacity group. The workload runs on a single host.
const (
	ClusterMinCapacity = 0
	ClusterMaxCapacity = 1
)

// Capacity is the min/max host count of a capacity group.
type Capacity struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ResolvedCluster is the network and cluster used downstream of cluster resolution,
// whether adopted or newly provisioned.
type ResolvedCluster struct {
	Network           ResourceRef `json:"network"`
	Cluster           ResourceRef `json:"cluster"`
	Boundary          ResourceRef `json:"boundary"`          // default connection boundary (security group)
	CapacityGroup     ResourceRef `json:"capacityGroup"`     // underlying scaling unit
	CapacityGroupName string      `json:"capacityGroupName"` // literal name or attribute token
	Capacity          Capacity    `json:"capacity"`
	Adopted           bool        `json:"adopted"`
}
