package seed

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"warbler/internal/models"
)

func TestBuildWarble_TimestampsAndLength(t *testing.T) {
	opts := Options{DryRun: true, MaxDays: 30}
	f := NewFactory(nil, opts)
	user := &models.User{ID: 1}

	for i := 0; i < 50; i++ {
		m := f.BuildWarble(user)
		if strings.TrimSpace(m.Text) == "" {
			t.Fatalf("expected non-empty warble text")
		}
		if utf8.RuneCountInString(m.Text) > models.MaxMessageLen {
			t.Fatalf("warble text exceeds %d runes: %q", models.MaxMessageLen, m.Text)
		}
		if m.UserID != user.ID {
			t.Fatalf("warble attributed to wrong user: %d", m.UserID)
		}

		// timestamp should be within MaxDays
		if time.Since(m.CreatedAt) > (time.Duration(opts.MaxDays)+1)*24*time.Hour {
			t.Fatalf("created_at too old: %v", m.CreatedAt)
		}
	}
}

func TestCreateUser_DryRunAssignsSyntheticIDs(t *testing.T) {
	f := NewFactory(nil, Options{DryRun: true, SkipBcrypt: true})

	first, err := f.CreateUser()
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	second, err := f.CreateUser()
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	if first.ID == 0 || second.ID == 0 {
		t.Fatal("expected synthetic IDs in dry-run mode")
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct IDs, got %d twice", first.ID)
	}
	if first.Location == "" {
		t.Fatal("expected a generated location")
	}
	if first.Password != SeedPassword {
		t.Fatalf("expected plain seed password with SkipBcrypt, got %q", first.Password)
	}
}

func TestCreateUser_Overrides(t *testing.T) {
	f := NewFactory(nil, Options{DryRun: true, SkipBcrypt: true})

	user, err := f.CreateUser(func(u *models.User) {
		u.Username = "warblefan"
		u.Location = "US"
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.Username != "warblefan" || user.Location != "US" {
		t.Fatalf("overrides not applied: %+v", user)
	}
}
