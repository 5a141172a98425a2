package io

import (
	"os"

	"github.com/matzehuels/facade/pkg/plan"
)

// ImportJSON loads a plan from a JSON file at path, or stdin when
// path is "-".
func ImportJSON(path string) (*plan.Plan, error) {
	if path == "-" {
		return plan.Read(os.Stdin)
	}
	return plan.ReadFile(path)
}
