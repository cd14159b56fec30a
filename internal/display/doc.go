// Package display provides the user-facing terminal output of the tools:
// progress lines for shuffle's verbose mode and warning blocks for
// non-fatal problems.
//
// Progress for a run over many files:
//
//	progress := display.NewProgressIndicator(os.Stdout)
//	progress.Start()
//	files := find()
//	progress.Found(len(files))
//	for _, file := range files {
//	    progress.Step(file)
//	    // ... play file ...
//	}
//
// Warnings with optional components:
//
//	warning := display.Warning{
//	    Title:      "Some paths were skipped",
//	    Files:      []string{"/music/locked"},
//	    Suggestion: "Check the directory permissions",
//	}
//	warning.Display(os.Stderr)
//
// Colors are only emitted when the writer is a terminal.
package display
