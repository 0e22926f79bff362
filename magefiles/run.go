//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

func imageArg() string {
	if path := os.Getenv("IMAGE"); path != "" {
		return path
	}
	return "image.png"
}

// Runs the triangle example from its own directory so the shader files
// resolve.
func (Run) Triangle() error {
	_, err := executeCmd("go", withArgs("run", "."), withDir("examples/triangle"), withStream())
	return err
}

// Runs the textured quad example; pass the image through IMAGE.
func (Run) Texture() error {
	_, err := executeCmd("go", withArgs("run", ".", imageArg()), withDir("examples/texture"), withStream())
	return err
}

// Prints the device limits.
func (Run) Deviceinfo() error {
	_, err := executeCmd("go", withArgs("run", "."), withDir("examples/deviceinfo"), withStream())
	return err
}
