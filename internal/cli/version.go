package cli

import (
	"context"
	"fmt"

	"github.com/TheMisteMince/MVP-API/internal"
)

// Represents the 'mvpd version' command.
type VersionCmd struct{}

// Executes the version command.
func (c *VersionCmd) Run(ctx context.Context) error {
	fmt.Println(internal.VersionString())
	return nil
}
