package dns

import "github.com/kompox/mcstack/domain/model"

// UseCase provides application logic for DNS operations.
type UseCase struct {
	InstancePort model.InstancePort
	DNSPort      model.DNSPort
}
