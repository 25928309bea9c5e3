package importers

import "github.com/davinci-coder-club/clubsite/internal/entities"

// DuplicateDetector tracks member identity keys seen so far, seeded with the
// emails already in storage.
type DuplicateDetector struct {
	known map[string]struct{}
}

func NewDuplicateDetector(existingEmails []string) *DuplicateDetector {
	known := make(map[string]struct{}, len(existingEmails))
	for _, email := range existingEmails {
		if key := entities.MemberEmailKey(email); key != "" {
			known[key] = struct{}{}
		}
	}
	return &DuplicateDetector{known: known}
}

// Check reports whether email was already seen. A new email is recorded
// immediately, so a repeat later in the same batch is a duplicate.
func (d *DuplicateDetector) Check(email string) bool {
	key := entities.MemberEmailKey(email)
	if _, exists := d.known[key]; exists {
		return true
	}
	d.known[key] = struct{}{}
	return false
}

// Len returns the number of known identity keys.
func (d *DuplicateDetector) Len() int {
	return len(d.known)
}
