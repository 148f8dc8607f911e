// cmd/picalc/main.go
package main

import (
	"picalc/internal/app"
	"picalc/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
