// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package journal

import "time"

// Kind tags the intent an IntentRecord logs, mirroring the list
// of tagged variants the core consumes from the view.
type Kind string

const (
	KindSetCellValue       Kind = "set_cell_value"
	KindDeleteContents     Kind = "delete_contents"
	KindInsertRows         Kind = "insert_rows"
	KindInsertColumns      Kind = "insert_columns"
	KindDeleteRows         Kind = "delete_rows"
	KindDeleteColumns      Kind = "delete_columns"
	KindMergeCells         Kind = "merge_cells"
	KindUnmergeCells       Kind = "unmerge_cells"
	KindApplyFormat        Kind = "apply_format"
	KindClipboardAction    Kind = "clipboard_action"
	KindBeginFillDrag      Kind = "begin_fill_drag"
	KindUpdateFillDrag     Kind = "update_fill_drag"
	KindEndFillDrag        Kind = "end_fill_drag"
	KindApplyFilter        Kind = "apply_filter"
	KindClearFilter        Kind = "clear_filter"
	KindAddConditionalRule Kind = "add_conditional_rule"
	KindRemoveConditional  Kind = "remove_conditional_rule"
	KindPickFormat         Kind = "pick_format"
	KindApplyPaintedFormat Kind = "apply_painted_format"
)

// IntentRecord is one entry in the append-only replay log: every tagged
// intent the engine accepts gets one row, never mutated afterward. It is
// read-only from the engine's perspective; nothing in store, merge,
// filter, or condfmt ever reads it back.
type IntentRecord struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Kind      Kind      `gorm:"index;not null"`
	Payload   string    `gorm:"type:text;not null"` // JSON-encoded intent body
	AppliedAt time.Time `gorm:"index;not null"`
	Version   int64     `gorm:"not null"` // monotonic sequence, assigned by the store
}

func (IntentRecord) TableName() string {
	return "intent_records"
}
