package runner

import "path/filepath"

// 📄 FileResult is the outcome of processing one file
type FileResult struct {
	// Path of the file as selected
	Path string
	// Modified is true when the transformed content differs from what was read
	Modified bool
	// Changes lists the rules that fired, in rule order
	Changes []string
	// Diff is a patch of the changes, set only when diffs are requested
	Diff string
	// Err is set when the file could not be processed
	Err error
}

// Name returns the base name of the file
func (r FileResult) Name() string {
	return filepath.Base(r.Path)
}

// 📊 Summary accumulates the outcome of a whole run
type Summary struct {
	Found    int
	Modified int
	Failed   int
	DryRun   bool
	Results  []FileResult
}

func (s *Summary) add(result FileResult) {
	s.Results = append(s.Results, result)
	switch {
	case result.Err != nil:
		s.Failed++
	case result.Modified:
		s.Modified++
	}
}
