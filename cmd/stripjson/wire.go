//go:build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/hayeah/stripjson"
)

func InitCLI() (*stripjson.CLI, error) {
	wire.Build(stripjson.Wires)
	return nil, nil
}
