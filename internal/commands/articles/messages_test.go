package articlescmd

import "testing"

func TestSyncArticlesCommandValidateTrigger(t *testing.T) {
	for _, trigger := range []Trigger{"", TriggerCLI, TriggerCron, TriggerManual} {
		if err := (SyncArticlesCommand{Trigger: trigger}).Validate(); err != nil {
			t.Fatalf("unexpected error for trigger %q: %v", trigger, err)
		}
	}
	if err := (SyncArticlesCommand{Trigger: "webhook"}).Validate(); err == nil {
		t.Fatal("expected error for unknown trigger")
	}
}

func TestStripBacklinksCommandValidateTrigger(t *testing.T) {
	if err := (StripBacklinksCommand{Trigger: TriggerCLI}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (StripBacklinksCommand{Trigger: "webhook"}).Validate(); err == nil {
		t.Fatal("expected error for unknown trigger")
	}
}

func TestMessageTypes(t *testing.T) {
	if (SyncArticlesCommand{}).Type() != "mdsite.articles.sync" {
		t.Fatalf("unexpected sync message type")
	}
	if (StripBacklinksCommand{}).Type() != "mdsite.articles.strip_backlinks" {
		t.Fatalf("unexpected strip message type")
	}
}
