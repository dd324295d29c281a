package prints

import "github.com/amilmether/fundEd-Web/app/models"

// eligibleStudents returns the students who may still receive a print:
// those holding a paid payment for the event minus those already in the
// distribution list.
func eligibleStudents(paid []models.Student, distributedIDs []string) []models.Student {
	distributed := make(map[string]bool, len(distributedIDs))
	for _, id := range distributedIDs {
		distributed[id] = true
	}

	var eligible []models.Student
	for _, s := range paid {
		if !distributed[s.ID] {
			eligible = append(eligible, s)
		}
	}
	return eligible
}
