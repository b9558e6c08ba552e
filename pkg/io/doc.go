// Package io writes rendered artifacts and reads back exported network
// documents.
//
// # Atomic Writes
//
// [WriteFileAtomic] writes to a temporary file next to the target and
// renames it into place, so a reader never observes a half-written image:
//
//	err := io.WriteFileAtomic(afero.NewOsFs(), "familiarity-network.png", data)
//
// The temporary file is removed on every error path. Callers render all
// artifacts in memory first and only then write them.
//
// # Documents
//
// [ExportDocument] and [ImportDocument] store a [graph.Document], the JSON
// form of a rendered network, on any [afero.Fs]. An exported document can
// be re-imported to inspect the counts and positions of an earlier run
// without re-reading the survey.
package io
