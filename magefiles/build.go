//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Downloads the modules and builds the offmesh binary into bin/.
func (Build) Binary() error {
	if _, err := executeCmd("go", withArgs("mod", "download")); err != nil {
		return err
	}
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/offmesh", "."), withStream()); err != nil {
		return err
	}
	return nil
}

type Test mg.Namespace

// Runs vet and the whole test suite with the race detector.
func (Test) All() error {
	if _, err := executeCmd("go", withArgs("vet", "./...")); err != nil {
		return err
	}
	if _, err := executeCmd("go", withArgs("test", "-race", "-count=1", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}
