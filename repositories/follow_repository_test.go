package repositories

import (
	"errors"
	"testing"

	"warbler/models"
)

func TestFollowUnfollow(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)

	alice := seedUser(t, users, "alice", "alice@example.com")
	bob := seedUser(t, users, "bob", "bob@example.com")

	if err := follows.Follow(alice.ID, bob.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}

	following, err := follows.FollowingOf(alice.ID)
	if err != nil {
		t.Fatalf("following of: %v", err)
	}
	if len(following) != 1 || following[0].ID != bob.ID {
		t.Fatalf("following = %v, want [bob]", following)
	}
	followers, err := follows.FollowersOf(bob.ID)
	if err != nil {
		t.Fatalf("followers of: %v", err)
	}
	if len(followers) != 1 || followers[0].ID != alice.ID {
		t.Fatalf("followers = %v, want [alice]", followers)
	}

	if err := follows.Unfollow(alice.ID, bob.ID); err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	following, _ = follows.FollowingOf(alice.ID)
	if len(following) != 0 {
		t.Fatalf("still following after unfollow: %v", following)
	}
}

func TestIsFollowingIsFollowedBySymmetry(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)

	alice := seedUser(t, users, "alice", "alice@example.com")
	bob := seedUser(t, users, "bob", "bob@example.com")

	check := func(wantFollowing bool) {
		t.Helper()
		isFollowing, err := follows.IsFollowing(alice.ID, bob.ID)
		if err != nil {
			t.Fatalf("is following: %v", err)
		}
		isFollowedBy, err := follows.IsFollowedBy(bob.ID, alice.ID)
		if err != nil {
			t.Fatalf("is followed by: %v", err)
		}
		if isFollowing != isFollowedBy {
			t.Fatalf("IsFollowing(a,b)=%v but IsFollowedBy(b,a)=%v", isFollowing, isFollowedBy)
		}
		if isFollowing != wantFollowing {
			t.Fatalf("following = %v, want %v", isFollowing, wantFollowing)
		}
	}

	check(false)
	if err := follows.Follow(alice.ID, bob.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}
	check(true)

	// the reverse direction is its own edge
	if reverse, _ := follows.IsFollowing(bob.ID, alice.ID); reverse {
		t.Fatalf("follow created the reverse edge too")
	}
}

func TestFollowDuplicate(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)

	alice := seedUser(t, users, "alice", "alice@example.com")
	bob := seedUser(t, users, "bob", "bob@example.com")

	if err := follows.Follow(alice.ID, bob.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if err := follows.Follow(alice.ID, bob.ID); !errors.Is(err, models.ErrAlreadyFollowing) {
		t.Fatalf("duplicate follow err = %v, want ErrAlreadyFollowing", err)
	}
}

func TestFollowSelf(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)

	alice := seedUser(t, users, "alice", "alice@example.com")
	err := follows.Follow(alice.ID, alice.ID)
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("self follow err = %v, want ErrValidation", err)
	}
}

func TestFollowUnknownEndpoint(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)

	alice := seedUser(t, users, "alice", "alice@example.com")
	if err := follows.Follow(alice.ID, 9999); !errors.Is(err, models.ErrIntegrity) {
		t.Fatalf("follow unknown user err = %v, want ErrIntegrity", err)
	}
}

func TestUnfollowMissingEdge(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)

	alice := seedUser(t, users, "alice", "alice@example.com")
	bob := seedUser(t, users, "bob", "bob@example.com")

	err := follows.Unfollow(alice.ID, bob.ID)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("unfollow missing edge err = %v, want ErrNotFound", err)
	}
}
