/*
rota validates rotation plans and prints the rosters they generate.

Usage:

	rota <command> [arguments]

Commands:

	rota validate <plan>   Run every check and list all failures
	rota generate <plan>   Print the roster for a range of weeks

Plans are TOML, YAML or JSON documents; the format is picked by extension.
*/
package main

import (
	"os"

	"github.com/arnavshah/rotation-api-go/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
