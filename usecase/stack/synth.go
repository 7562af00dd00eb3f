package stack

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kompox/mcstack/domain/model"
	"github.com/kompox/mcstack/internal/logging"
	"github.com/kompox/mcstack/internal/naming"
)

// Service deployment thresholds for the single-instance topology.
const (
	ServiceDesiredCount      = 1
	ServiceMinHealthyPercent = 0
	ServiceMaxHealthyPercent = 100
)

// SynthInput holds parameters for stack synthesis.
type SynthInput struct {
	Stack *model.Stack `json:"stack"`
	// Save persists the result as a build.
	Save bool `json:"save,omitempty"`
}

// SynthOutput is the synthesized resource graph.
type SynthOutput struct {
	BuildID     string                    `json:"buildId,omitempty"`
	Cluster     *model.ResolvedCluster    `json:"cluster"`
	Graph       *model.ResourceGraph      `json:"graph"`
	Environment *model.DerivedEnvironment `json:"environment"`
	Features    []string                  `json:"features"`
}

// Synth validates the stack and assembles its resource graph. A rejected
// configuration fails before the graph is created. Graph builder errors are
// returned unchanged apart from context.
func (u *UseCase) Synth(ctx context.Context, in *SynthInput) (*SynthOutput, error) {
	if in == nil || in.Stack == nil {
		return nil, fmt.Errorf("stack is required")
	}
	if u.GraphPort == nil {
		return nil, fmt.Errorf("graph port is not configured")
	}
	if in.Save && (u.Repos == nil || u.Repos.Build == nil) {
		return nil, fmt.Errorf("build repository is not configured")
	}
	logger := logging.FromContext(ctx).With("stack", in.Stack.Name)
	s := in.Stack

	v, err := validateStack(s)
	if err != nil {
		return nil, err
	}

	builder, err := u.GraphPort.NewGraph(ctx, s.Name)
	if err != nil {
		return nil, fmt.Errorf("new graph: %w", err)
	}
	sc := &synthContext{stack: s, names: naming.NewHashes(s.Name), builder: builder}

	logger.Debug(ctx, "resolving cluster")
	if sc.cluster, err = resolveCluster(ctx, sc, v.source); err != nil {
		return nil, fmt.Errorf("resolve cluster: %w", err)
	}
	if err := attachBaselineIngress(ctx, builder, sc.cluster); err != nil {
		return nil, fmt.Errorf("baseline ingress: %w", err)
	}

	logger.Debug(ctx, "declaring storage")
	if err := createStorage(ctx, sc); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	var features []string
	if s.Backup != nil {
		if err := composeBackup(ctx, sc); err != nil {
			return nil, fmt.Errorf("backup: %w", err)
		}
		features = append(features, "backup")
	}
	if err := createWorkloadSkeleton(ctx, sc); err != nil {
		return nil, fmt.Errorf("workload: %w", err)
	}

	logger.Debug(ctx, "composing features")
	state, enabled, err := runFeatures(ctx, sc, []feature{
		pluginsFeature{contentHash: v.pluginsHash},
		rconFeature{},
	})
	if err != nil {
		return nil, err
	}
	features = append(features, enabled...)

	env := DeriveEnvironment(s.Server, state)
	workload, err := finalizeWorkload(ctx, sc, env)
	if err != nil {
		return nil, fmt.Errorf("workload: %w", err)
	}
	if err := createService(ctx, sc, workload); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	if s.CustomDomain != nil {
		if err := composeCustomDomain(ctx, sc); err != nil {
			return nil, fmt.Errorf("custom domain: %w", err)
		}
		features = append(features, "custom-domain")
	}

	out := &SynthOutput{
		Cluster:     sc.cluster,
		Graph:       builder.Graph(),
		Environment: env,
		Features:    features,
	}
	logger.Info(ctx, "synthesized stack",
		"resources", len(out.Graph.Resources),
		"adopted", sc.cluster.Adopted,
		"features", strings.Join(features, ","))

	if in.Save {
		id, err := naming.NewCompactID()
		if err != nil {
			return nil, fmt.Errorf("build id: %w", err)
		}
		build := &model.Build{
			ID:          id,
			StackName:   s.Name,
			Graph:       out.Graph,
			Environment: env,
			CreatedAt:   time.Now().UTC(),
		}
		if err := u.Repos.Build.Create(ctx, build); err != nil {
			return nil, fmt.Errorf("save build: %w", err)
		}
		out.BuildID = build.ID
		logger.Info(ctx, "saved build", "build", build.ID)
	}
	return out, nil
}

// finalizeWorkload declares the workload definition with its derived environment.
func finalizeWorkload(ctx context.Context, sc *synthContext, env *model.DerivedEnvironment) (model.ResourceRef, error) {
	ports := []map[string]any{portMapping(PortGame)}
	if _, ok := env.Secrets[model.SecretRCONPassword]; ok {
		ports = append(ports, portMapping(PortRCON))
	}
	secrets := make(map[string]string, len(env.Secrets))
	for name, ref := range env.Secrets {
		secrets[name] = ref.Attr("arn")
	}
	environment := make(map[string]string, len(env.Environment))
	for k, v := range env.Environment {
		environment[k] = v
	}

	ref, err := sc.builder.CreateResource(ctx, model.Resource{
		ID:   "workload-definition",
		Kind: model.KindWorkloadDefinition,
		Properties: map[string]any{
			"family":               sc.names.PhysicalName("server"),
			"image":                sc.stack.Image(),
			"memoryReservationMiB": sc.stack.MemoryReservation(),
			"executionRole":        sc.role.Attr("arn"),
			"environment":          environment,
			"secrets":              secrets,
			"portMappings":         ports,
			"volumes":              sc.workload.volumes,
			"mountPoints":          sc.workload.mounts,
		},
	})
	if err != nil {
		return model.ResourceRef{}, err
	}
	for _, dep := range sc.workload.dependsOn {
		if err := sc.builder.DependOn(ctx, ref, dep); err != nil {
			return model.ResourceRef{}, err
		}
	}
	return ref, nil
}

func portMapping(port int) map[string]any {
	return map[string]any{
		"containerPort": port,
		"hostPort":      port,
		"protocol":      string(model.ProtocolTCP),
	}
}

// createService runs the workload on the resolved cluster. Zero healthy
// instances during deployment is accepted since there is only ever one.
func createService(ctx context.Context, sc *synthContext, workload model.ResourceRef) error {
	b := sc.builder
	svc, err := b.CreateResource(ctx, model.Resource{
		ID:   "service",
		Kind: model.KindService,
		Properties: map[string]any{
			"name":               sc.names.PhysicalName("service"),
			"cluster":            sc.cluster.Cluster.Attr("arn"),
			"workloadDefinition": workload.Attr("arn"),
			"desiredCount":       ServiceDesiredCount,
			"minHealthyPercent":  ServiceMinHealthyPercent,
			"maxHealthyPercent":  ServiceMaxHealthyPercent,
		},
	})
	if err != nil {
		return err
	}
	for _, dep := range []model.ResourceRef{workload, sc.cluster.Cluster, sc.cluster.CapacityGroup} {
		if err := b.DependOn(ctx, svc, dep); err != nil {
			return err
		}
	}
	return nil
}
