package harness

import (
	"slices"

	"github.com/dannycalleri/usergraph/internal/model"
	"github.com/dannycalleri/usergraph/internal/store"
)

// runAssertions validates the final state and records violations on the result.
func runAssertions(assertions []Assertion, result *Result) {
	for i, a := range assertions {
		switch a.Type {
		case "symmetric":
			if err := store.CheckSymmetry(result.Final); err != nil {
				result.AddError("assertions[%d]: symmetry: %v", i, err)
			}

		case "user_count":
			if got := len(result.Final); got != a.Count {
				result.AddError("assertions[%d]: expected %d users, got %d", i, a.Count, got)
			}

		case "friends_of":
			idx, found := model.FindByID(result.Final, a.ID)
			if !found {
				result.AddError("assertions[%d]: user %d not in final state", i, a.ID)
				continue
			}
			want := a.Friends
			if want == nil {
				want = []int{}
			}
			if !slices.Equal(result.Final[idx].Friends, want) {
				result.AddError("assertions[%d]: user %d friends = %v, expected %v",
					i, a.ID, result.Final[idx].Friends, want)
			}

		default:
			// Unreachable for schema-validated scenarios.
			result.AddError("assertions[%d]: unknown type %q", i, a.Type)
		}
	}
}
