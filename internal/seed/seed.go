package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"warbler/internal/models"

	"gorm.io/gorm"
)

// Seeder drives the full seed flow: users, warbles, and the social mesh
// of follows and likes between them.
type Seeder struct {
	db      *gorm.DB
	opts    Options
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, opts: opts, factory: NewFactory(db, opts)}
}

// Seed populates the database with test data.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d warbles...", opts.NumUsers, opts.NumWarbles)

	// Clear existing data to avoid conflicts if requested
	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	seeder := NewSeeder(db, opts)

	users, err := seeder.SeedSocialMesh(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to seed social mesh: %w", err)
	}
	log.Printf("✓ %d test users created and connected", len(users))

	warbles, err := seeder.seedWarbles(users, opts.NumWarbles)
	if err != nil {
		return fmt.Errorf("failed to create warbles: %w", err)
	}
	log.Printf("✓ %d warbles created", len(warbles))

	if err := seeder.seedLikes(users, warbles); err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	log.Println("✓ likes created")

	if err := SyncCounters(db); err != nil {
		return fmt.Errorf("failed to sync counters: %w", err)
	}

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

// SeedSocialMesh creates n users and a follow graph between them. Each user
// follows roughly a third of the others; nobody follows themselves.
func (s *Seeder) SeedSocialMesh(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if s.opts.DryRun {
		return users, nil
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, follower := range users {
		for _, followed := range users {
			if follower.ID == followed.ID {
				continue
			}
			if r.Intn(3) != 0 {
				continue
			}
			if err := s.factory.CreateFollow(follower, followed); err != nil {
				return nil, err
			}
		}
	}
	return users, nil
}

// seedWarbles distributes total warbles over the given users.
func (s *Seeder) seedWarbles(users []*models.User, total int) ([]*models.Message, error) {
	if len(users) == 0 || total <= 0 {
		return nil, nil
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	warbles := make([]*models.Message, 0, total)
	for i := 0; i < total; i++ {
		author := users[r.Intn(len(users))]
		warbles = append(warbles, s.factory.BuildWarble(author))
	}

	// Persist in chunks to keep statements bounded
	const batchSize = 100
	for start := 0; start < len(warbles); start += batchSize {
		end := start + batchSize
		if end > len(warbles) {
			end = len(warbles)
		}
		batch := warbles[start:end]
		if err := s.factory.CreateWarblesBatch(batch); err != nil {
			return nil, err
		}
	}
	return warbles, nil
}

// seedLikes makes each user like a sample of other users' warbles. Users
// never like their own warbles.
func (s *Seeder) seedLikes(users []*models.User, warbles []*models.Message) error {
	if s.opts.DryRun || len(warbles) == 0 {
		return nil
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, user := range users {
		liked := make(map[uint]bool)
		wanted := r.Intn(len(warbles)/2 + 1)
		for attempts := 0; attempts < wanted*3 && len(liked) < wanted; attempts++ {
			warble := warbles[r.Intn(len(warbles))]
			if warble.UserID == user.ID || liked[warble.ID] {
				continue
			}
			if err := s.factory.CreateLike(user, warble); err != nil {
				return err
			}
			liked[warble.ID] = true
		}
	}
	return nil
}

// SyncCounters recomputes the denormalized warble and like counters from the
// actual rows. Seeding writes edges directly, bypassing the transactional
// counter bumps the repositories do.
func SyncCounters(db *gorm.DB) error {
	statements := []string{
		`UPDATE users SET warbles_count = (SELECT COUNT(*) FROM messages WHERE messages.user_id = users.id)`,
		`UPDATE messages SET likes_count = (SELECT COUNT(*) FROM likes WHERE likes.message_id = messages.id)`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE likes, follows, messages, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
