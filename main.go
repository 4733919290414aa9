package main

import (
	"github.com/scrappystats/shipper/cmd/root"
)

func main() {
	root.Execute()
}
