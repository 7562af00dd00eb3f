package stack

import (
	"github.com/kompox/mcstack/domain"
	"github.com/kompox/mcstack/domain/model"
)

// Repos holds repositories needed for stack use cases.
type Repos struct {
	Build domain.BuildRepository
}

// UseCase wires repositories and ports needed for stack use cases.
type UseCase struct {
	Repos     *Repos
	GraphPort model.GraphPort
}
