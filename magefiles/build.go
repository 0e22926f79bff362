//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

var examples = []string{"triangle", "texture", "deviceinfo"}

// Builds every example into bin/.
func (Build) Examples() error {
	for _, example := range examples {
		if _, err := executeCmd("go",
			withArgs("build", "-o", "bin/"+example, "./examples/"+example), withStream()); err != nil {
			return err
		}
	}
	return nil
}

// Runs go vet over the whole module.
func (Build) Lint() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}

// Runs the test suite.
func (Build) Test() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}
