package main

import "github.com/frahmantamala/hotel-pms/cmd"

func main() {
	cmd.Execute()
}
