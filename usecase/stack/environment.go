package stack

import (
	"context"
	"fmt"
	"strings"

	"github.com/kompox/mcstack/domain/model"
)

// DeriveEnvironment computes the workload environment from server options and
// the folded feature state. Absent or empty options produce no variable.
func DeriveEnvironment(server *model.ServerOptions, state model.ComposerState) *model.DerivedEnvironment {
	env := map[string]string{
		model.EnvEULA:                     "TRUE",
		model.EnvType:                     model.ServerType,
		model.EnvOverrideServerProperties: "true",
		model.EnvForceRedownload:          "true",
	}
	if server != nil {
		if server.Version != "" {
			env[model.EnvVersion] = server.Version
		}
		if server.Difficulty != "" {
			env[model.EnvDifficulty] = string(server.Difficulty)
		}
		if ops := nonEmpty(server.Ops); len(ops) > 0 {
			env[model.EnvOps] = strings.Join(ops, ",")
		}
		if mods := nonEmpty(server.Mods); len(mods) > 0 {
			env[model.EnvMods] = strings.Join(mods, ",")
		}
		if server.MOTD != "" {
			env[model.EnvMOTD] = server.MOTD
		}
	}
	if state.PluginEndpoint != "" {
		env[model.EnvModpack] = state.PluginEndpoint
	}
	secrets := map[string]model.ResourceRef{}
	if state.RCONSecret != nil {
		env[model.EnvEnableRCON] = "true"
		secrets[model.SecretRCONPassword] = *state.RCONSecret
	}
	return &model.DerivedEnvironment{Environment: env, Secrets: secrets}
}

func nonEmpty(items []string) []string {
	var out []string
	for _, s := range items {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// EnvironmentInput holds parameters for environment preview.
type EnvironmentInput struct {
	Stack *model.Stack `json:"stack"`
}

// EnvironmentOutput is the derived environment of the stack.
type EnvironmentOutput struct {
	Environment *model.DerivedEnvironment `json:"environment"`
}

// Environment synthesizes the stack without saving and returns its environment.
func (u *UseCase) Environment(ctx context.Context, in *EnvironmentInput) (*EnvironmentOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}
	out, err := u.Synth(ctx, &SynthInput{Stack: in.Stack})
	if err != nil {
		return nil, err
	}
	return &EnvironmentOutput{Environment: out.Environment}, nil
}
