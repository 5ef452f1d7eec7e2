package main

import "github.com/TheEMeraldNetwork/Kalimera/internal/cli"

func main() {
	cli.Execute()
}
