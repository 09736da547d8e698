//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Parses the bundled sample meshes with optional vertex colors.
func (Run) Sample() error {
	mg.Deps(Build.Binary)
	fmt.Println("Run offmesh on assets/meshes...")
	args := withArgs("-ovc", "-vcc", "4", "assets/meshes/cube.off", "assets/meshes/square.off")
	if _, err := executeCmd("bin/offmesh", args, withStream()); err != nil {
		return err
	}
	return nil
}

// Watches assets/meshes and prints every mesh that changes.
func (Run) Watch() error {
	mg.Deps(Build.Binary)
	if _, err := executeCmd("bin/offmesh", withArgs("-config", "assets/offmesh.toml", "-watch", "assets/meshes"), withStream()); err != nil {
		return err
	}
	return nil
}
