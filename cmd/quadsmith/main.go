// Command quadsmith generates Podman Quadlet unit files.
package main

import "github.com/cameronsjo/quadsmith/internal/cmd"

func main() {
	cmd.Execute()
}
