// Command strand reports toolkit metadata. The toolkit itself is a
// library; training entry points live under examples/.
package main

import (
	"fmt"
	"os"
	"runtime"
)

const version = "v0.0.1-dev"

var commands = map[string]func(){
	"version": func() {
		fmt.Printf("strand %s %s/%s (%s)\n", version, runtime.GOOS, runtime.GOARCH, runtime.Version())
	},
	"examples": func() {
		fmt.Println("Runnable training programs (go run ./examples/<name> <data-dir>):")
		fmt.Println("  mnist         multilayer perceptron on MNIST")
		fmt.Println("  mnist-aug     the same network with per-batch augmentation")
		fmt.Println("  cifar-resnet  residual network on CIFAR-10")
	},
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: strand <command>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  version     print the toolkit version")
	fmt.Fprintln(os.Stderr, "  examples    list the bundled training programs")
	os.Exit(2)
}

func main() {
	if len(os.Args) != 2 {
		usage()
	}
	cmd, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "strand: unknown command %q\n", os.Args[1])
		usage()
	}
	cmd()
}
