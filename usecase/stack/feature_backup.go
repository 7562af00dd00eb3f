package stack

import (
	"context"

	"github.com/kompox/mcstack/domain/model"
)

// composeBackup attaches a backup plan with one rule and one selection scoped
// to the shared file system.
func composeBackup(ctx context.Context, sc *synthContext) error {
	r := sc.stack.Backup
	if r == nil {
		return nil
	}
	b := sc.builder
	ruleName := r.Name
	if ruleName == "" {
		ruleName = "default"
	}
	rule := map[string]any{
		"name":     ruleName,
		"schedule": r.Schedule,
	}
	if r.DeleteAfterDays > 0 {
		rule["deleteAfterDays"] = r.DeleteAfterDays
	}
	if r.ColdStorageAfterDays > 0 {
		rule["moveToColdStorageAfterDays"] = r.ColdStorageAfterDays
	}
	plan, err := b.CreateResource(ctx, model.Resource{
		ID:   "backup-plan",
		Kind: model.KindBackupPlan,
		Properties: map[string]any{
			"name":  sc.storageName(),
			"rules": []map[string]any{rule},
		},
	})
	if err != nil {
		return err
	}
	selection, err := b.CreateResource(ctx, model.Resource{
		ID:   "backup-selection",
		Kind: model.KindBackupSelection,
		Properties: map[string]any{
			"plan":      plan.Attr("id"),
			"resources": []string{sc.fileSystem.Attr("arn")},
		},
	})
	if err != nil {
		return err
	}
	for _, dep := range []model.ResourceRef{plan, sc.fileSystem} {
		if err := b.DependOn(ctx, selection, dep); err != nil {
			return err
		}
	}
	return nil
}
