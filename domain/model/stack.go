package model

// Workload defaults applied when the stack leaves them unset.
const (
	WorkloadImage               = "itzg/minecraft-server"
	DefaultImageTag             = "latest"
	DefaultMemoryReservationMiB = 1024
)

// Stack is the top-level stack configuration (read-only input to synthesis).
// Exactly one of ExistingCluster and ClusterOptions must be set.
type Stack struct {
	Name                 string
	ImageTag             string
	ExistingCluster      *ExistingCluster
	ClusterOptions       *ClusterOptions
	Server               *ServerOptions
	PluginsPath          string
	Backup               *BackupRule
	RCON                 bool
	MemoryReservationMiB int
	CustomDomain         *CustomDomain
}

// Image returns the workload image reference including the tag.
func (s *Stack) Image() string {
	tag := s.ImageTag
	if tag == "" {
		tag = DefaultImageTag
	}
	return WorkloadImage + ":" + tag
}

// MemoryReservation returns the soft memory limit for the workload in MiB.
func (s *Stack) MemoryReservation() int {
	if s.MemoryReservationMiB <= 0 {
		return DefaultMemoryReservationMiB
	}
	return s.MemoryReservationMiB
}

// NetworkRef references an existing network and the availability zones it spans.
type NetworkRef struct {
	ID                string
	AvailabilityZones []string
}

// ClusterOptions describes a compute cluster to provision.
// Network is optional; a new isolated network is created when nil.
type ClusterOptions struct {
	InstanceType string
	KeyName      string
	SpotPrice    string
	Network      *NetworkRef
}

// ExistingCluster is a handle to a cluster provisioned outside of the stack.
type ExistingCluster struct {
	Name              string
	ARN               string
	Network           NetworkRef
	SecurityGroupID   string // default connection boundary of the cluster
	CapacityGroupName string // empty when no compute capacity is attached
}

// HasCapacity reports whether the cluster has compute capacity attached.
func (c *ExistingCluster) HasCapacity() bool {
	return c != nil && c.CapacityGroupName != ""
}

// ClusterSource is the validated choice between adopting and provisioning a cluster.
// Implementations: AdoptedCluster, ProvisionedCluster.
type ClusterSource interface {
	clusterSource()
}

// AdoptedCluster selects a caller-supplied cluster.
type AdoptedCluster struct {
	Cluster ExistingCluster
}

// ProvisionedCluster selects a new network and cluster built from Options.
type ProvisionedCluster struct {
	Options ClusterOptions
}

func (AdoptedCluster) clusterSource()     {}
func (ProvisionedCluster) clusterSource() {}

// Difficulty is the game difficulty passed to the workload verbatim.
type Difficulty string

const (
	DifficultyPeaceful Difficulty = "peaceful"
	DifficultyEasy     Difficulty = "easy"
	DifficultyNormal   Difficulty = "normal"
	DifficultyHard     Difficulty = "hard"
)

// Difficulties lists the accepted difficulty values.
var Difficulties = []Difficulty{DifficultyPeaceful, DifficultyEasy, DifficultyNormal, DifficultyHard}

// Valid reports whether d is one of Difficulties.
func (d Difficulty) Valid() bool {
	for _, v := range Difficulties {
		if d == v {
			return true
		}
	}
	return false
}

// ServerOptions tunes the game server. Zero values mean "use the workload default".
type ServerOptions struct {
	Version    string
	Difficulty Difficulty
	Ops        []string
	Mods       []string
	MOTD       string
}

// BackupRule is the schedule and retention policy of the storage backup plan.
type BackupRule struct {
	Name                 string
	Schedule             string // schedule expression, e.g. "cron(0 5 * * ? *)"
	DeleteAfterDays      int
	ColdStorageAfterDays int
}

// CustomDomain configures the DNS record kept pointing at the running host.
type CustomDomain struct {
	HostedZoneID string
	DomainName   string
}
