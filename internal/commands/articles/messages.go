package articlescmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	syncArticlesMessageType   = "mdsite.articles.sync"
	stripBacklinksMessageType = "mdsite.articles.strip_backlinks"
)

// Trigger names what started a run. It is carried into the logs.
type Trigger string

const (
	TriggerCLI    Trigger = "cli"
	TriggerCron   Trigger = "cron"
	TriggerManual Trigger = "manual"
)

var triggers = []any{TriggerCLI, TriggerCron, TriggerManual}

// SyncArticlesCommand runs one Markdown to article batch, mapping directly
// onto interfaces.SyncOptions.
type SyncArticlesCommand struct {
	// Trigger records what started the run. Empty means manual.
	Trigger Trigger `json:"trigger,omitempty"`
	// DryRun computes outcomes without touching pages or the store.
	DryRun bool `json:"dry_run,omitempty"`
	// DeleteOrphaned removes pages and records that no source produces anymore.
	DeleteOrphaned bool `json:"delete_orphaned,omitempty"`
	// SeedExample creates the source directory with an example article when missing.
	SeedExample bool `json:"seed_example,omitempty"`
}

// Type implements command.Message.
func (SyncArticlesCommand) Type() string { return syncArticlesMessageType }

// Validate rejects unknown triggers.
func (cmd SyncArticlesCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Trigger, validation.In(triggers...).
			ErrorObject(validation.NewError("mdsite.articles.sync.trigger_invalid", "trigger must be cli, cron or manual"))),
	)
}

// StripBacklinksCommand removes the legacy "back to blog" link from every
// generated page.
type StripBacklinksCommand struct {
	Trigger Trigger `json:"trigger,omitempty"`
	DryRun  bool    `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (StripBacklinksCommand) Type() string { return stripBacklinksMessageType }

// Validate rejects unknown triggers.
func (cmd StripBacklinksCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Trigger, validation.In(triggers...).
			ErrorObject(validation.NewError("mdsite.articles.strip_backlinks.trigger_invalid", "trigger must be cli, cron or manual"))),
	)
}

func triggerOrDefault(trigger Trigger) Trigger {
	if trigger == "" {
		return TriggerManual
	}
	return trigger
}
