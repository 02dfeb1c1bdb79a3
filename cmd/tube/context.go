package main

import (
	"io"
	"strings"
	"sync"

	"github.com/ytget/tube/internal/app"
)

type commandContext struct {
	configFlag *string

	once       sync.Once
	components *app.Components
	err        error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureComponents(logOutput io.Writer) (*app.Components, error) {
	c.once.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		c.components, c.err = app.Load(path, logOutput)
	})
	return c.components, c.err
}

func (c *commandContext) close() error {
	if c.components == nil {
		return nil
	}
	return c.components.Close()
}
