// Command scopeguardcheck is a linter that checks scopeguard call-site
// discipline: guards must be exited or released, never used after Release,
// and conditional guards must defer Exit directly.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/mpyw/scopeguard/check"
)

func main() {
	singlechecker.Main(check.Analyzer)
}
