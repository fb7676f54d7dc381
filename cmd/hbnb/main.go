package main

import (
	"github.com/rpattn/hbnb/internal/command"
	"github.com/rpattn/hbnb/internal/command/record"
	"github.com/rpattn/hbnb/internal/command/sheet"
)

func main() {
	command.Main(
		"hbnb", "create, inspect and convert serialized records",
		append(record.Commands(), sheet.Commands()...)...,
	)
}
