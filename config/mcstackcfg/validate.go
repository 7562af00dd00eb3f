package mcstackcfg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/aws/aws-sdk-go/aws/arn"
	"github.com/kompox/mcstack/domain/model"
	"github.com/kompox/mcstack/internal/naming"
	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// SupportedVersion is the only accepted config file version.
const SupportedVersion = "v1"

const mib = 1024 * 1024

// Validate performs structural validation of the configuration. All problems
// are reported together and the result matches model.ErrConfiguration.
func (r *Root) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: config is nil", model.ErrConfiguration)
	}
	var errs field.ErrorList

	if r.Version != "" && r.Version != SupportedVersion {
		errs = append(errs, field.NotSupported(field.NewPath("version"), r.Version, []string{SupportedVersion}))
	}
	if err := naming.ValidateStackName(r.Name); err != nil {
		errs = append(errs, field.Invalid(field.NewPath("name"), r.Name, err.Error()))
	}

	switch {
	case r.ExistingCluster != nil && r.ClusterOptions != nil:
		errs = append(errs, field.Forbidden(field.NewPath("clusterOptions"), "existingCluster and clusterOptions are mutually exclusive"))
	case r.ExistingCluster == nil && r.ClusterOptions == nil:
		errs = append(errs, field.Required(field.NewPath("clusterOptions"), "one of existingCluster or clusterOptions is required"))
	}
	if c := r.ExistingCluster; c != nil {
		p := field.NewPath("existingCluster")
		if c.Name == "" && c.ARN == "" {
			errs = append(errs, field.Required(p.Child("name"), "name or arn is required"))
		}
		if c.ARN != "" {
			a, err := arn.Parse(c.ARN)
			switch {
			case err != nil:
				errs = append(errs, field.Invalid(p.Child("arn"), c.ARN, err.Error()))
			case a.Service != "ecs" || !strings.HasPrefix(a.Resource, "cluster/"):
				errs = append(errs, field.Invalid(p.Child("arn"), c.ARN, "must be an ECS cluster ARN"))
			case c.Name != "" && strings.TrimPrefix(a.Resource, "cluster/") != c.Name:
				errs = append(errs, field.Invalid(p.Child("name"), c.Name, "does not match the cluster in arn"))
			}
		}
		if c.VPCID == "" {
			errs = append(errs, field.Required(p.Child("vpcId"), ""))
		}
		if c.SecurityGroupID == "" {
			errs = append(errs, field.Required(p.Child("securityGroupId"), ""))
		}
		if c.CapacityGroup == "" {
			errs = append(errs, field.Required(p.Child("capacityGroup"), "cluster must have compute capacity attached"))
		}
	}
	if o := r.ClusterOptions; o != nil {
		p := field.NewPath("clusterOptions")
		if o.InstanceType == "" {
			errs = append(errs, field.Required(p.Child("instanceType"), ""))
		}
		if o.SpotPrice != "" {
			if v, err := strconv.ParseFloat(o.SpotPrice, 64); err != nil || v <= 0 {
				errs = append(errs, field.Invalid(p.Child("spotPrice"), o.SpotPrice, "must be a positive decimal"))
			}
		}
		if len(o.AvailabilityZones) > 0 && o.VPCID == "" {
			errs = append(errs, field.Forbidden(p.Child("availabilityZones"), "only valid together with vpcId"))
		}
	}

	if s := r.Server; s != nil && s.Difficulty != "" && !model.Difficulty(s.Difficulty).Valid() {
		valid := make([]string, 0, len(model.Difficulties))
		for _, d := range model.Difficulties {
			valid = append(valid, string(d))
		}
		errs = append(errs, field.NotSupported(field.NewPath("server", "difficulty"), s.Difficulty, valid))
	}

	if b := r.Backup; b != nil {
		p := field.NewPath("backup")
		if b.Schedule == "" {
			errs = append(errs, field.Required(p.Child("schedule"), ""))
		}
		if b.DeleteAfterDays < 0 {
			errs = append(errs, field.Invalid(p.Child("deleteAfterDays"), b.DeleteAfterDays, "must not be negative"))
		}
		if b.ColdStorageAfterDays < 0 {
			errs = append(errs, field.Invalid(p.Child("coldStorageAfterDays"), b.ColdStorageAfterDays, "must not be negative"))
		}
	}

	if _, err := r.memoryReservationMiB(); err != nil {
		errs = append(errs, field.Invalid(field.NewPath("memoryReservation"), r.MemoryReservation, err.Error()))
	}

	if d := r.CustomDomain; d != nil {
		p := field.NewPath("customDomain")
		if d.HostedZoneID == "" {
			errs = append(errs, field.Required(p.Child("hostedZoneId"), ""))
		}
		if d.DomainName == "" {
			errs = append(errs, field.Required(p.Child("domainName"), ""))
		}
	}

	if agg := errs.ToAggregate(); agg != nil {
		return fmt.Errorf("%w: %s", model.ErrConfiguration, agg.Error())
	}
	return nil
}

// memoryReservationMiB parses MemoryReservation. Plain integers are MiB,
// anything else is a quantity rounded up to whole MiB. Empty means default.
func (r *Root) memoryReservationMiB() (int, error) {
	s := strings.TrimSpace(r.MemoryReservation)
	if s == "" {
		return model.DefaultMemoryReservationMiB, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("must be positive")
		}
		return n, nil
	}
	q, err := resource.ParseQuantity(s)
	if err != nil {
		return 0, fmt.Errorf("must be MiB or a quantity like 2Gi: %v", err)
	}
	bytes := q.Value()
	if bytes <= 0 {
		return 0, fmt.Errorf("must be positive")
	}
	return int((bytes + mib - 1) / mib), nil
}

// Warnings returns non-fatal findings about the configuration.
func (r *Root) Warnings() []string {
	var out []string
	if s := r.Server; s != nil && s.Version != "" {
		switch strings.ToUpper(s.Version) {
		case "LATEST", "SNAPSHOT":
		default:
			if _, err := semver.NewVersion(s.Version); err != nil {
				out = append(out, fmt.Sprintf("server.version %q is not a release version, LATEST or SNAPSHOT", s.Version))
			}
		}
	}
	return out
}
