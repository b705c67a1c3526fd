package core

import "errors"

var (
	ErrUnknownTile      = errors.New("unknown tile")
	ErrUnknownTerrain   = errors.New("unknown terrain")
	ErrDanglingNeighbor = errors.New("neighbor references unknown tile")
	ErrDuplicateTile    = errors.New("duplicate tile")
	ErrInvalidScenario  = errors.New("invalid scenario")
)
