package progress

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/megamounds/sitetrack-api/internal/models"
)

// SortMilestones orders milestone keys by the integer formed from their
// digits ("WEEK 3" sorts as 3). Keys without digits follow every numbered
// key and Unscheduled is always last. Equal keys keep their input order.
func SortMilestones(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.SliceStable(out, func(i, j int) bool {
		return milestoneRank(out[i]).less(milestoneRank(out[j]))
	})
	return out
}

type rank struct {
	bucket int
	num    int
}

func (a rank) less(b rank) bool {
	if a.bucket != b.bucket {
		return a.bucket < b.bucket
	}
	return a.num < b.num
}

func milestoneRank(key string) rank {
	if key == models.Unscheduled {
		return rank{bucket: 2}
	}
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, key)
	if digits == "" {
		return rank{bucket: 1}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		n = math.MaxInt
	}
	return rank{bucket: 0, num: n}
}

// SortWeeks returns the distinct week labels in plain lexical order.
// "WEEK 10" sorts before "WEEK 2".
func SortWeeks(labels []string) []string {
	seen := make(map[string]bool, len(labels))
	var out []string
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	sort.Strings(out)
	return out
}
