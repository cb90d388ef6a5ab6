// Package scene reconciles a previously drawn mark set with the next desired one.
package scene

// Plan lists what a render pass must do, keyed by identity and never by position.
type Plan[K comparable] struct {
	Enter  []K // in next order
	Update []K // in next order
	Exit   []K // in prev order
}

// Empty reports whether the plan has nothing to do.
func (p Plan[K]) Empty() bool {
	return len(p.Enter) == 0 && len(p.Update) == 0 && len(p.Exit) == 0
}

// Diff compares prev and next key sequences. Repeated keys in next are collapsed
// onto their first occurrence.
func Diff[K comparable](prev, next []K) Plan[K] {
	had := make(map[K]struct{}, len(prev))
	for _, k := range prev {
		had[k] = struct{}{}
	}
	seen := make(map[K]struct{}, len(next))
	var p Plan[K]
	for _, k := range next {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if _, ok := had[k]; ok {
			p.Update = append(p.Update, k)
		} else {
			p.Enter = append(p.Enter, k)
		}
	}
	for _, k := range prev {
		if _, keep := seen[k]; !keep {
			p.Exit = append(p.Exit, k)
		}
	}
	return p
}
