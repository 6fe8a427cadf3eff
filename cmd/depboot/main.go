package main

import "github.com/ift-infra/depboot/cmd/depboot/internal"

func main() {
	internal.Execute()
}
