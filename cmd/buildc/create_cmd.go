package main

import (
	"fmt"

	"github.com/banksean/buildc/internal/scaffold"
)

// CreateCmd generates a new project skeleton.
type CreateCmd struct {
	Name string `arg:"" help:"name of the new project directory"`
}

func (c *CreateCmd) Run(cctx *Context) error {
	if err := scaffold.Create(c.Name); err != nil {
		return err
	}
	cctx.Sink.Info(fmt.Sprintf("Created project %s", c.Name))
	return nil
}
