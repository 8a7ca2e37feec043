package dlq

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Extension is the suffix of every batch file written by Store.Persist; it
// is also the filter List uses to recognize batch files among whatever
// else might live under a table directory (stray .tmp files, operator
// notes, etc).
const Extension = ".batch"

// tmpSuffix marks an in-progress write; Store.Persist never leaves one
// behind on success.
const tmpSuffix = ".tmp"

// timeLayout renders the millisecond-precision UTC timestamp with hyphens
// in place of colons in the time-of-day portion, so the result is safe to
// use verbatim as a filename component on every common filesystem.
const timeLayout = "2006-01-02T15-04-05.000"

// dashedISOLayout is timeLayout with the substitution reversed, i.e. a
// standard (colon-separated) ISO-8601 instant, used to parse the prefix
// back into a time.Time.
const dashedISOLayout = "2006-01-02T15:04:05.000"

// buildName returns the canonical filename for a batch persisted at ts:
// <YYYY>-<MM>-<DD>T<HH>-<mm>-<ss>.<mmm>_<uuid><ext>. Lexicographic order
// of names produced by this function is chronological order.
func buildName(ts time.Time) string {
	return fmt.Sprintf("%s_%s%s", ts.UTC().Format(timeLayout), uuid.NewString(), Extension)
}

// parseNameTimestamp recovers the persistence timestamp embedded in a
// batch filename. It reverses the hyphen-for-colon substitution in the
// time-of-day portion only; the date portion's hyphens are left alone.
func parseNameTimestamp(name string) (time.Time, error) {
	prefix, _, found := strings.Cut(name, "_")
	if !found {
		return time.Time{}, fmt.Errorf("malformed batch filename %q: no timestamp/uuid separator", name)
	}

	datePart, timePart, found := strings.Cut(prefix, "T")
	if !found {
		return time.Time{}, fmt.Errorf("malformed batch filename %q: no date/time separator", name)
	}
	restoredTime := strings.ReplaceAll(timePart, "-", ":")
	restored := datePart + "T" + restoredTime

	t, err := time.Parse(dashedISOLayout, restored)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed batch filename %q: %w", name, err)
	}
	return t.UTC(), nil
}
