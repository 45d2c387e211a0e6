package cmd

import (
	"context"
	"path/filepath"

	"github.com/ardnew/smartscript/cli/cmd/repl"
)

// historyFile is the base name of the REPL history file in the cache
// directory.
const historyFile = "history"

// Repl executes template lines interactively against one session.
type Repl struct {
	Param  []string `help:"Bind parameter NAME to the value of expression EXPR (repeatable)." placeholder:"NAME=EXPR" sep:"none" short:"p"`
	Params string   `help:"Read parameters from a YAML mapping."                              placeholder:"FILE"                   type:"existingfile"`
	State  string   `help:"Load and save persistent parameters in a YAML file."               placeholder:"FILE"                   type:"path"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	params, err := loadParams(r.Params)
	if err != nil {
		return err
	}

	params, err = evalParams(params, r.Param)
	if err != nil {
		return err
	}

	persistent, err := loadState(r.State)
	if err != nil {
		return err
	}

	var history string
	if dir := kongVar(ctx, CacheIdentifier); dir != "" {
		history = filepath.Join(dir, historyFile)
	}

	persistent, err = repl.Run(ctx, repl.Options{
		Params:     params,
		Persistent: persistent,
		History:    history,
		Logger:     logger("repl"),
	})
	if err != nil {
		return err
	}

	return saveState(r.State, persistent)
}
