package indexcmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-folio/internal/indexer"
)

const (
	buildIndexMessageType  = "folio.index.build"
	verifyIndexMessageType = "folio.index.verify"
)

// Triggers recorded with each build.
const (
	TriggerCLI   = "cli"
	TriggerWatch = "watch"
	TriggerHTTP  = "http"
)

// ResultCallback receives the build result produced by a command. It is
// invoked synchronously whenever the build returns a result, which includes
// the unwritten result of a build that fails strict integrity.
type ResultCallback func(*indexer.BuildResult)

// BuildIndexCommand runs one full index build.
type BuildIndexCommand struct {
	Policy         indexer.FailurePolicy `json:"policy,omitempty"`
	Strict         bool                  `json:"strict,omitempty"`
	DryRun         bool                  `json:"dry_run,omitempty"`
	Trigger        string                `json:"trigger,omitempty"`
	ResultCallback ResultCallback        `json:"-"`
}

// Type implements command.Message.
func (BuildIndexCommand) Type() string { return buildIndexMessageType }

// Validate checks the failure policy and trigger names.
func (cmd BuildIndexCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Policy, validation.In(indexer.FailFast, indexer.SkipAndReport).
			ErrorObject(validation.NewError("folio.index.build.policy_invalid", "policy must be fail_fast or skip_and_report"))),
		validation.Field(&cmd.Trigger, validation.In(TriggerCLI, TriggerWatch, TriggerHTTP).
			ErrorObject(validation.NewError("folio.index.build.trigger_invalid", "trigger is not recognised"))),
	)
}

// VerifyIndexCommand builds the index in memory and compares it with
// blogs.json without writing anything.
type VerifyIndexCommand struct {
	// RequireMeta fails verification when no metadata file exists.
	RequireMeta    bool           `json:"require_meta,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (VerifyIndexCommand) Type() string { return verifyIndexMessageType }

// Validate implements command.Message validation; the command has no
// required input.
func (VerifyIndexCommand) Validate() error { return nil }
