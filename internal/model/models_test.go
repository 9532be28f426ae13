package model

import (
	"testing"
	"time"
)

func TestEdited(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	editStamp := base.Add(time.Hour)

	cases := []struct {
		name      string
		createdAt time.Time
		updatedAt time.Time
		editedAt  *time.Time
		want      bool
	}{
		{name: "untouched", createdAt: base, updatedAt: base, want: false},
		{name: "within grace window", createdAt: base, updatedAt: base.Add(500 * time.Millisecond), want: false},
		{name: "at grace boundary", createdAt: base, updatedAt: base.Add(1000 * time.Millisecond), want: false},
		{name: "past grace window", createdAt: base, updatedAt: base.Add(1500 * time.Millisecond), want: true},
		{name: "explicit editedAt wins", createdAt: base, updatedAt: base.Add(500 * time.Millisecond), editedAt: &editStamp, want: true},
		{name: "zero timestamps", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Edited(tc.createdAt, tc.updatedAt, tc.editedAt); got != tc.want {
				t.Fatalf("Edited() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNormalizeRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{in: "member", want: RoleMember},
		{in: "moderator", want: RoleModerator},
		{in: "admin", want: RoleAdmin},
		{in: "superuser", want: RoleMember},
		{in: "", want: RoleMember},
	}

	for _, tc := range cases {
		if got := NormalizeRole(tc.in); got != tc.want {
			t.Errorf("NormalizeRole(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTopicOfficial(t *testing.T) {
	if !(Topic{ID: 1, Title: "Announcements"}).Official() {
		t.Error("topic without creator should be official")
	}
	if (Topic{ID: 2, Title: "Cats", CreatedByUserID: 7}).Official() {
		t.Error("user-created topic should not be official")
	}
}
