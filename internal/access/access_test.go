package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/exam-trainer/internal/models"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestPolicy_HasActiveAccess(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		policy Policy
		user   *models.User
		want   bool
	}{
		{
			name:   "subscription in the future",
			policy: Policy{HonorTrial: false},
			user:   &models.User{SubscriptionExpiry: timePtr(now.Add(24 * time.Hour))},
			want:   true,
		},
		{
			name:   "subscription in the past",
			policy: Policy{HonorTrial: false},
			user:   &models.User{SubscriptionExpiry: timePtr(now.Add(-time.Minute))},
			want:   false,
		},
		{
			name:   "no subscription at all",
			policy: Policy{HonorTrial: false},
			user:   &models.User{},
			want:   false,
		},
		{
			name:   "subscription ends exactly now is expired",
			policy: Policy{HonorTrial: false},
			user:   &models.User{SubscriptionExpiry: timePtr(now)},
			want:   false,
		},
		{
			name:   "active trial counts when policy honors it",
			policy: Policy{HonorTrial: true},
			user:   &models.User{TrialEndDate: timePtr(now.Add(time.Hour))},
			want:   true,
		},
		{
			name:   "active trial ignored when policy does not honor it",
			policy: Policy{HonorTrial: false},
			user:   &models.User{TrialEndDate: timePtr(now.Add(time.Hour))},
			want:   false,
		},
		{
			name:   "expired trial with honor flag",
			policy: Policy{HonorTrial: true},
			user:   &models.User{TrialEndDate: timePtr(now.Add(-time.Hour))},
			want:   false,
		},
		{
			name:   "expired subscription but active trial",
			policy: Policy{HonorTrial: true},
			user: &models.User{
				SubscriptionExpiry: timePtr(now.Add(-time.Hour)),
				TrialEndDate:       timePtr(now.Add(time.Hour)),
			},
			want: true,
		},
		{
			name:   "nil user",
			policy: Policy{HonorTrial: true},
			user:   nil,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.HasActiveAccess(tt.user, now))
		})
	}
}

func TestPolicy_CanAccessContent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	policy := Policy{HonorTrial: false}

	expiredUser := &models.User{SubscriptionExpiry: timePtr(now.Add(-time.Hour))}
	activeUser := &models.User{SubscriptionExpiry: timePtr(now.Add(time.Hour))}

	tests := []struct {
		name     string
		user     *models.User
		isPublic bool
		want     bool
	}{
		{
			name:     "public content with no subscription",
			user:     &models.User{},
			isPublic: true,
			want:     true,
		},
		{
			name:     "public content with expired subscription",
			user:     expiredUser,
			isPublic: true,
			want:     true,
		},
		{
			name:     "premium content with active subscription",
			user:     activeUser,
			isPublic: false,
			want:     true,
		},
		{
			name:     "premium content with expired subscription",
			user:     expiredUser,
			isPublic: false,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.CanAccessContent(tt.user, tt.isPublic, now))
		})
	}

	// для непубличного контента ответ обязан совпадать с HasActiveAccess
	for _, u := range []*models.User{expiredUser, activeUser, {}} {
		assert.Equal(t, policy.HasActiveAccess(u, now), policy.CanAccessContent(u, false, now))
	}
}

func TestTimeRemaining(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want Remaining
	}{
		{
			name: "end in the past",
			end:  now.Add(-time.Second),
			want: Remaining{Expired: true},
		},
		{
			name: "end exactly now",
			end:  now,
			want: Remaining{Expired: true},
		},
		{
			name: "one hour one minute one second",
			end:  now.Add(3661 * time.Second),
			want: Remaining{Hours: 1, Minutes: 1, Seconds: 1},
		},
		{
			name: "multi-day remainder collapses into hours",
			end:  now.Add(49*time.Hour + 30*time.Minute),
			want: Remaining{Hours: 49, Minutes: 30, Seconds: 0},
		},
		{
			name: "sub-second remainder rounds down",
			end:  now.Add(500 * time.Millisecond),
			want: Remaining{Hours: 0, Minutes: 0, Seconds: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeRemaining(tt.end, now))
		})
	}
}

func TestTimeRemaining_RecomputesFromAbsoluteEnd(t *testing.T) {
	// повторный вызов с более поздним now должен давать меньший остаток
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	end := now.Add(10 * time.Second)

	first := TimeRemaining(end, now)
	second := TimeRemaining(end, now.Add(4*time.Second))

	assert.Equal(t, 10, first.Seconds)
	assert.Equal(t, 6, second.Seconds)
}
