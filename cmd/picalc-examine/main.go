// cmd/picalc-examine/main.go
package main

import (
	"picalc/internal/appshell"
	"picalc/internal/examineapp"
)

func main() {
	appshell.Main(examineapp.RunContext)
}
