package prints

import (
	"testing"

	"github.com/amilmether/fundEd-Web/app/models"
)

func TestEligibleStudents(t *testing.T) {
	paid := []models.Student{
		{ID: "s1", RollNo: "1", Name: "Asha"},
		{ID: "s2", RollNo: "2", Name: "Bilal"},
		{ID: "s3", RollNo: "3", Name: "Chitra"},
	}

	t.Run("nobody distributed yet", func(t *testing.T) {
		eligible := eligibleStudents(paid, nil)
		if len(eligible) != 3 {
			t.Fatalf("Expected 3 eligible students, got %d", len(eligible))
		}
	})

	t.Run("distributed students are filtered out", func(t *testing.T) {
		eligible := eligibleStudents(paid, []string{"s2"})
		if len(eligible) != 2 {
			t.Fatalf("Expected 2 eligible students, got %d", len(eligible))
		}
		for _, s := range eligible {
			if s.ID == "s2" {
				t.Error("Expected s2 to be filtered out after distribution")
			}
		}
	})

	t.Run("repeat distribution is not offered", func(t *testing.T) {
		// After everyone received their print, the eligible list is empty;
		// the normal path cannot distribute twice.
		eligible := eligibleStudents(paid, []string{"s1", "s2", "s3"})
		if len(eligible) != 0 {
			t.Fatalf("Expected no eligible students, got %d", len(eligible))
		}
	})

	t.Run("unpaid students never appear", func(t *testing.T) {
		// The paid list is the input universe; a student without a paid
		// payment is simply absent from it.
		eligible := eligibleStudents(nil, []string{"s9"})
		if len(eligible) != 0 {
			t.Fatalf("Expected no eligible students, got %d", len(eligible))
		}
	})
}
