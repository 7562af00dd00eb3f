// Package mcstackcfg defines the configuration schema (structs) for mcstack.yml
// and its HCL equivalent mcstack.hcl.
package mcstackcfg

// Root is the root structure of mcstack.yml.
type Root struct {
	Version           string           `yaml:"version,omitempty" json:"version,omitempty" hcl:"version,optional"`
	Name              string           `yaml:"name" json:"name" hcl:"name"` // RFC1123-compliant DNS label
	ImageTag          string           `yaml:"imageTag,omitempty" json:"imageTag,omitempty" hcl:"image_tag,optional"`
	ExistingCluster   *ExistingCluster `yaml:"existingCluster,omitempty" json:"existingCluster,omitempty" hcl:"existing_cluster,block"`
	ClusterOptions    *ClusterOptions  `yaml:"clusterOptions,omitempty" json:"clusterOptions,omitempty" hcl:"cluster_options,block"`
	Server            *Server          `yaml:"server,omitempty" json:"server,omitempty" hcl:"server,block"`
	Plugins           string           `yaml:"plugins,omitempty" json:"plugins,omitempty" hcl:"plugins,optional"` // directory or file, relative to the config file
	Backup            *Backup          `yaml:"backup,omitempty" json:"backup,omitempty" hcl:"backup,block"`
	RCON              bool             `yaml:"rcon,omitempty" json:"rcon,omitempty" hcl:"rcon,optional"`
	MemoryReservation string           `yaml:"memoryReservation,omitempty" json:"memoryReservation,omitempty" hcl:"memory_reservation,optional"` // MiB or quantity, e.g. 1024, 2Gi
	CustomDomain      *CustomDomain    `yaml:"customDomain,omitempty" json:"customDomain,omitempty" hcl:"custom_domain,block"`

	dir string // directory of the loaded file
}

// ExistingCluster references a cluster that already runs on the account.
type ExistingCluster struct {
	Name              string   `yaml:"name,omitempty" json:"name,omitempty" hcl:"name,optional"`
	ARN               string   `yaml:"arn,omitempty" json:"arn,omitempty" hcl:"arn,optional"`
	VPCID             string   `yaml:"vpcId" json:"vpcId" hcl:"vpc_id"`
	AvailabilityZones []string `yaml:"availabilityZones,omitempty" json:"availabilityZones,omitempty" hcl:"availability_zones,optional"`
	SecurityGroupID   string   `yaml:"securityGroupId" json:"securityGroupId" hcl:"security_group_id"`
	CapacityGroup     string   `yaml:"capacityGroup,omitempty" json:"capacityGroup,omitempty" hcl:"capacity_group,optional"` // auto scaling group name
}

// ClusterOptions describes a cluster to provision.
type ClusterOptions struct {
	InstanceType      string   `yaml:"instanceType" json:"instanceType" hcl:"instance_type"`
	KeyName           string   `yaml:"keyName,omitempty" json:"keyName,omitempty" hcl:"key_name,optional"`
	SpotPrice         string   `yaml:"spotPrice,omitempty" json:"spotPrice,omitempty" hcl:"spot_price,optional"`
	VPCID             string   `yaml:"vpcId,omitempty" json:"vpcId,omitempty" hcl:"vpc_id,optional"` // reuse a network instead of creating one
	AvailabilityZones []string `yaml:"availabilityZones,omitempty" json:"availabilityZones,omitempty" hcl:"availability_zones,optional"`
}

// Server holds optional game server settings.
type Server struct {
	Version    string   `yaml:"version,omitempty" json:"version,omitempty" hcl:"version,optional"`
	Difficulty string   `yaml:"difficulty,omitempty" json:"difficulty,omitempty" hcl:"difficulty,optional"`
	Ops        []string `yaml:"ops,omitempty" json:"ops,omitempty" hcl:"ops,optional"`
	Mods       []string `yaml:"mods,omitempty" json:"mods,omitempty" hcl:"mods,optional"`
	MOTD       string   `yaml:"motd,omitempty" json:"motd,omitempty" hcl:"motd,optional"`
}

// Backup is the backup plan rule of the data volume.
type Backup struct {
	Name                 string `yaml:"name,omitempty" json:"name,omitempty" hcl:"name,optional"`
	Schedule             string `yaml:"schedule" json:"schedule" hcl:"schedule"`
	DeleteAfterDays      int    `yaml:"deleteAfterDays,omitempty" json:"deleteAfterDays,omitempty" hcl:"delete_after_days,optional"`
	ColdStorageAfterDays int    `yaml:"coldStorageAfterDays,omitempty" json:"coldStorageAfterDays,omitempty" hcl:"cold_storage_after_days,optional"`
}

// CustomDomain is the Route 53 record kept pointing at the server host.
type CustomDomain struct {
	HostedZoneID string `yaml:"hostedZoneId" json:"hostedZoneId" hcl:"hosted_zone_id"`
	DomainName   string `yaml:"domainName" json:"domainName" hcl:"domain_name"`
}
