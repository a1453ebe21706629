package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/MacroPower/kluars/internal/cli"
)

const (
	cmdName = "kluars"

	shortDesc = "Kubernetes manifests from Lua."
	longDesc  = `kluars evaluates Lua scripts into Kubernetes manifests.

A script returns one manifest as a table, or a list of manifest tables.
"translate" prints them as YAML. "apply" server-side applies them to the
cluster selected by your kubeconfig, in order.
`
)

func main() {
	cmd := cli.NewRootCmd(cmdName, shortDesc, longDesc)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
