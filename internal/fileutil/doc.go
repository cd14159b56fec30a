// Package fileutil walks directory trees for the file tools.
//
// There are two walkers with opposite error policies:
//
//   - Catalog collects every regular file below a set of paths together with
//     its size, for packing onto disks. It is strict: the first unreadable
//     entry, special file or file too large for a disk aborts it.
//   - ScanDirectory finds files by name suffix or sniffed media type, for
//     shuffle. It is tolerant: unreadable entries are collected in
//     ScanResult.Errors and the walk goes on.
//
// Catalog keeps paths as given so reports show what the user typed;
// ScanDirectory returns sorted absolute paths.
//
// Example:
//
//	files, err := fileutil.Catalog([]string{"photos"}, fileutil.CatalogOptions{
//	    Recursive: true,
//	    Capacity:  4_700_000_000,
//	})
//
//	result, err := fileutil.ScanDirectory(".", fileutil.ScanOptions{
//	    Suffix:    ".mp3",
//	    Recursive: true,
//	})
package fileutil
