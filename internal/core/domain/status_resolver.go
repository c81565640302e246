package domain

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/club_finance_app/internal/apperrors"
)

// StatusResolver derives the aggregate status of a dues calendar.
// Implementations must be pure: the same slots and reference date always
// produce the same status.
type StatusResolver interface {
	Resolve(slots []CalendarSlot, ref time.Time) FinancialStatus
}

// StatusPolicy names a registered resolver.
type StatusPolicy string

const (
	// PolicyStrict counts every unpaid month up to and including the current one.
	PolicyStrict StatusPolicy = "strict"
	// PolicyGracePeriod lets the current month run until its due date.
	PolicyGracePeriod StatusPolicy = "grace_period"
)

// StrictMonthlyResolver marks a player delinquent as soon as any month up to
// the reference month is neither paid nor exempt.
type StrictMonthlyResolver struct{}

func (StrictMonthlyResolver) Resolve(slots []CalendarSlot, ref time.Time) FinancialStatus {
	current := int(ref.Month()) - 1
	for i, s := range slots {
		if i > current {
			break
		}
		if !s.Paid && !s.Exempt {
			return StatusDelinquent
		}
	}
	return StatusCompliant
}

// GracePeriodResolver behaves like StrictMonthlyResolver for past months but
// only counts the current month once its due date has passed.
type GracePeriodResolver struct{}

func (GracePeriodResolver) Resolve(slots []CalendarSlot, ref time.Time) FinancialStatus {
	current := int(ref.Month()) - 1
	for i, s := range slots {
		if i > current {
			break
		}
		if s.Paid || s.Exempt {
			continue
		}
		if i < current || s.DueDate.IsZero() || ref.After(s.DueDate) {
			return StatusDelinquent
		}
	}
	return StatusCompliant
}

var (
	resolversMu sync.RWMutex
	resolvers   = map[StatusPolicy]StatusResolver{
		PolicyStrict:      StrictMonthlyResolver{},
		PolicyGracePeriod: GracePeriodResolver{},
	}
)

// ResolverForPolicy returns the resolver registered under policy.
// An empty policy selects PolicyStrict.
func ResolverForPolicy(policy StatusPolicy) (StatusResolver, error) {
	if policy == "" {
		policy = PolicyStrict
	}
	resolversMu.RLock()
	defer resolversMu.RUnlock()
	r, ok := resolvers[policy]
	if !ok {
		return nil, fmt.Errorf("%w: unknown dues status policy %q", apperrors.ErrValidation, policy)
	}
	return r, nil
}

// RegisterStatusResolver adds or replaces a named resolver.
func RegisterStatusResolver(policy StatusPolicy, r StatusResolver) {
	resolversMu.Lock()
	defer resolversMu.Unlock()
	resolvers[policy] = r
}

// StatusPolicies lists the registered policy names in sorted order.
func StatusPolicies() []StatusPolicy {
	resolversMu.RLock()
	defer resolversMu.RUnlock()
	out := make([]StatusPolicy, 0, len(resolvers))
	for p := range resolvers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
