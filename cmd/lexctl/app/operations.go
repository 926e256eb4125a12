package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexchain/lexctl/internal/api"
	"github.com/lexchain/lexctl/internal/output"
	"github.com/lexchain/lexctl/internal/view"
)

// Output formats accepted by -o.
const (
	formatText  = "text"
	formatJSON  = "json"
	formatTable = "table"
)

// errReported marks a failure that has already been shown to the user.
var errReported = errors.New("operation failed")

// step runs one controller operation.
type step func(ctx context.Context, ctrl *view.Controller) error

// runOperations runs steps one after another on a fresh controller, then
// renders the slots of ops.
//
// Steps run sequentially, so the busy flag is never contended here. A
// failing step does not stop the ones after it; every failed operation is
// reported and the command exits non-zero.
func (o *GlobalOptions) runOperations(cmd *cobra.Command, format string, ops []view.Operation, steps ...step) error {
	ctrl, err := o.newController()
	if err != nil {
		return err
	}

	for _, s := range steps {
		// The outcome is recorded in the controller state.
		_ = s(cmd.Context(), ctrl)
	}

	state := ctrl.State()
	p := o.printer(cmd)
	if err := render(p, state, format, ops); err != nil {
		return err
	}

	failed := false
	for _, op := range ops {
		if oc := state.Outcome(op); oc.Phase == view.PhaseFailure {
			p.Error("%s: %s", op, oc.Message)
			failed = true
		}
	}
	if failed {
		return errReported
	}
	return nil
}

func render(p *output.Printer, state view.State, format string, ops []view.Operation) error {
	switch format {
	case formatText:
		return view.RenderText(p.Out(), state, ops...)
	case formatJSON:
		for _, op := range ops {
			p.Print(view.PrettyJSON(state.Outcome(op).Payload) + "\n")
		}
		return nil
	case formatTable:
		payload := state.Search.Payload
		items := api.DecodeSearchItems(payload)
		if len(items) == 0 {
			if payload != nil {
				p.Info("No matching cases.")
			}
			return nil
		}
		p.Heading("%d matching case(s)", len(items))
		return output.CaseTable(p.Out(), items)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func validateFormat(format string, allowed ...string) error {
	for _, f := range allowed {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid output format %q (allowed: %v)", format, allowed)
}
