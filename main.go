package main

import (
	"github.com/varsilias/crystal/cmd"
	"github.com/varsilias/crystal/internal/buildinfo"
)

func main() {
	cmd.Execute(buildinfo.Version, buildinfo.Commit, buildinfo.BuiltAt)
}
