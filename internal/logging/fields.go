package logging

// Field names shared by the CLI's structured log records.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldWorkingDir = "working_dir"

	// Resolved configuration.
	FieldFlavor    = "flavor"
	FieldDryRun    = "dry_run"
	FieldJobs      = "jobs"
	FieldTabWidth  = "tab_width"
	FieldMarkLimit = "mark_limit"
	FieldDisabled  = "disabled"

	// One conversion.
	FieldConverter = "converter"
	FieldBytes     = "bytes"

	// Build totals.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesWritten    = "files_written"
	FieldFilesUnchanged  = "files_unchanged"
	FieldFilesErrored    = "files_errored"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
