package loadtest

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// generateStudents returns n distinct emails tagged with a per-run prefix so
// repeated runs against the same server never collide.
func generateStudents(n int) []string {
	run := strings.SplitN(uuid.NewString(), "-", 2)[0]
	emails := make([]string, n)
	for i := range emails {
		emails[i] = fmt.Sprintf("load-%s-%05d@%s", run, i, emailDomain)
	}
	return emails
}
