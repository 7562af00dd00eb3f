package model

import "sort"

// Workload environment variable names.
const (
	EnvEULA                     = "EULA"
	EnvType                     = "TYPE"
	EnvOverrideServerProperties = "OVERRIDE_SERVER_PROPERTIES"
	EnvForceRedownload          = "FORCE_REDOWNLOAD"
	EnvVersion                  = "VERSION"
	EnvDifficulty               = "DIFFICULTY"
	EnvOps                      = "OPS"
	EnvMods                     = "MODS"
	EnvMOTD                     = "MOTD"
	EnvModpack                  = "MODPACK"
	EnvEnableRCON               = "ENABLE_RCON"

	// SecretRCONPassword is the secret-bound variable carrying the remote console password.
	SecretRCONPassword = "RCON_PASSWORD"

	// ServerType is the fixed server variant of the workload.
	ServerType = "FORGE"
)

// ComposerState accumulates feature contributions that the environment depends on.
// Each field is written at most once and read only after all features have run.
type ComposerState struct {
	PluginEndpoint string       // public URL of the plugin asset; empty when absent
	RCONSecret     *ResourceRef // remote console secret; nil when absent
}

// DerivedEnvironment is the final workload environment and secret bindings.
type DerivedEnvironment struct {
	Environment map[string]string      `json:"environment"`
	Secrets     map[string]ResourceRef `json:"secrets"`
}

// Keys returns environment variable names in sorted order.
func (e *DerivedEnvironment) Keys() []string {
	keys := make([]string, 0, len(e.Environment))
	for k := range e.Environment {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SecretKeys returns secret variable names in sorted order.
func (e *DerivedEnvironment) SecretKeys() []string {
	keys := make([]string, 0, len(e.Secrets))
	for k := range e.Secrets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
