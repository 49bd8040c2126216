package models

import (
	"testing"
	"time"
)

func TestRecomputeEnd(t *testing.T) {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	class := &Class{Start: start}

	class.RecomputeEnd()
	if got, want := class.End, start.Add(2*time.Hour); !got.Equal(want) {
		t.Errorf("End = %v, want %v", got, want)
	}

	// Moving the start must move the end with it.
	class.Start = start.Add(3 * time.Hour)
	class.RecomputeEnd()
	if got, want := class.End, class.Start.Add(2*time.Hour); !got.Equal(want) {
		t.Errorf("End after move = %v, want %v", got, want)
	}
}

func TestRecomputeEnrolled(t *testing.T) {
	class := &Class{Enrolled: 99}
	class.RecomputeEnrolled()
	if class.Enrolled != 0 {
		t.Errorf("Enrolled = %d, want 0", class.Enrolled)
	}

	class.Trainees = []User{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	class.RecomputeEnrolled()
	if class.Enrolled != 3 {
		t.Errorf("Enrolled = %d, want 3", class.Enrolled)
	}
}

func TestHasTrainee(t *testing.T) {
	class := &Class{Trainees: []User{{ID: "u1"}, {ID: "u2"}}}

	if !class.HasTrainee("u1") {
		t.Error("expected u1 to be enrolled")
	}
	if class.HasTrainee("u3") {
		t.Error("did not expect u3 to be enrolled")
	}
}

func TestIsFull(t *testing.T) {
	class := &Class{}
	for i := 0; i < MaxTraineesPerClass-1; i++ {
		class.Trainees = append(class.Trainees, User{ID: string(rune('a' + i))})
	}
	if class.IsFull() {
		t.Errorf("class with %d trainees reported full", len(class.Trainees))
	}

	class.Trainees = append(class.Trainees, User{ID: "last"})
	if !class.IsFull() {
		t.Errorf("class with %d trainees not reported full", len(class.Trainees))
	}
}

func TestBookable(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want bool
	}{
		{"ends in the future", now.Add(time.Hour), true},
		{"ends exactly now", now, false},
		{"already ended", now.Add(-time.Minute), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class := &Class{End: tt.end}
			if got := class.Bookable(now); got != tt.want {
				t.Errorf("Bookable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDayWindow(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)

	tests := []struct {
		name string
		t    time.Time
	}{
		{"midday", time.Date(2025, 6, 2, 13, 30, 0, 0, loc)},
		{"exact midnight", time.Date(2025, 6, 2, 0, 0, 0, 0, loc)},
		{"just before next midnight", time.Date(2025, 6, 2, 23, 59, 59, 0, loc)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := DayWindow(tt.t)

			wantFrom := time.Date(2025, 6, 2, 0, 0, 0, 0, loc)
			if !from.Equal(wantFrom) {
				t.Errorf("from = %v, want %v", from, wantFrom)
			}
			if want := wantFrom.Add(24 * time.Hour); !to.Equal(want) {
				t.Errorf("to = %v, want %v", to, want)
			}
			if tt.t.Before(from) || !tt.t.Before(to) {
				t.Errorf("%v not inside [%v, %v)", tt.t, from, to)
			}
		})
	}
}

func TestTokenIssuedBeforePasswordChange(t *testing.T) {
	changed := time.Date(2025, 6, 2, 10, 0, 0, 500_000_000, time.UTC)
	user := &User{PasswordChangedAt: &changed}

	tests := []struct {
		name     string
		issuedAt time.Time
		want     bool
	}{
		{"issued before change", changed.Add(-time.Minute), true},
		{"issued after change", changed.Add(time.Minute), false},
		// JWT iat carries seconds only; a token minted in the same second as
		// the change must not be treated as stale.
		{"issued same second as change", changed.Truncate(time.Second), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := user.TokenIssuedBeforePasswordChange(tt.issuedAt); got != tt.want {
				t.Errorf("TokenIssuedBeforePasswordChange() = %v, want %v", got, tt.want)
			}
		})
	}

	never := &User{}
	if never.TokenIssuedBeforePasswordChange(time.Now()) {
		t.Error("user without password change reported a stale token")
	}
}

func TestClearResetToken(t *testing.T) {
	token := "abc"
	expires := time.Now()
	user := &User{PasswordResetToken: &token, PasswordResetExpires: &expires}

	user.ClearResetToken()
	if user.PasswordResetToken != nil || user.PasswordResetExpires != nil {
		t.Error("reset token fields not cleared")
	}
}
