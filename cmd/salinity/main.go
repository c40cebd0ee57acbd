// Command salinity opens a scene in a window or renders it headless to a
// PNG.
//
//	salinity run --scene scene.toml --config salinity.toml
//	salinity render --scene scene.toml --out scene.png
package main

import (
	"os"
)

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}
