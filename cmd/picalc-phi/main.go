// cmd/picalc-phi/main.go
package main

import (
	"picalc/internal/appshell"
	"picalc/internal/phiapp"
)

func main() {
	appshell.Main(phiapp.RunContext)
}
