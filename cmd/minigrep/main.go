package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/altinukshini/minigrep/internal/cli"
)

var version = "dev"

func init() {
	if version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
}

func main() {
	root := cli.NewRootCmd(os.LookupEnv, os.Environ())
	os.Exit(cli.Execute(context.Background(), root, version))
}
