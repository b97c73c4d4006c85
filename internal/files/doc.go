// Package files provides input discovery and output writing for report runs.
//
// Discovery lists candidate files and dated subdirectories. Locator picks the
// input of a run from those candidates using a Matcher strategy:
//
//	SubstringMatcher    file name contains a token (ALARM, BATCH)
//	DatedFolderMatcher  latest DDMMYY folder, then a substring match inside it
//
// The newest modification time wins; equal times fall back to the greatest
// file name. Manager writes outputs through a temporary file so readers never
// see a half-written document.
//
// Example usage:
//
//	locator := files.NewLocator(files.NewDiscovery(""), logger)
//	input, err := locator.Locate("data", files.SubstringMatcher{Token: "ALARM"}, "")
//	if errors.Is(err, apperrors.ErrNotFound) {
//	    // nothing to report
//	}
package files
