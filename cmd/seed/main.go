// Command seed wipes and repopulates the database with a small random
// referral network: a handful of root users, a larger set of referred users
// attached to random referrers, and one to three donations per user.
package main

import (
	"context"
	"math/rand"

	"github.com/joho/godotenv"

	"givegraph/internal/adapter/repo"
	"givegraph/internal/domain"
	"givegraph/internal/infra"
)

var rootUsernames = []string{"Alice", "Bob", "Charlie", "David"}

var otherUsernames = []string{
	"Emma", "Frank", "Grace", "Henry", "Ivy", "Jack", "Kate", "Leo", "Mia", "Noah",
	"Olivia", "Paul", "Quinn", "Rose", "Sam", "Tara", "Uma", "Victor", "Wendy", "Xander",
	"Yara", "Zane", "Aiden", "Bella", "Caleb", "Daisy", "Ethan", "Fiona", "Gavin", "Hazel",
	"Ian", "Jade", "Kai", "Luna", "Mason", "Nora", "Owen", "Piper", "Reed", "Stella",
	"Theo", "Veda", "Wyatt", "Xena", "Yosef", "Zoe", "Aaron", "Brooks", "Clara", "Duke",
	"Elena", "Finn", "Gia", "Hugo", "Isla", "Jude", "Kira", "Luka", "Maya", "Nico",
	"Otis", "Phoebe", "Rhys", "Sienna", "Toby", "Uri", "Vera", "Wells", "Xia", "Yael",
	"Zion", "Amara", "Bodhi", "Callie", "Dante", "Elise", "Felix", "Gwen", "Holden", "Iris",
}

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	if err := repo.RunMigrations(cfg.DatabaseURL); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	logger.Info().Msg("clearing existing data")
	if _, err := dbpool.Exec(ctx, `DELETE FROM donations;`); err != nil {
		logger.Fatal().Err(err).Msg("failed to clear donations")
	}
	if _, err := dbpool.Exec(ctx, `DELETE FROM users;`); err != nil {
		logger.Fatal().Err(err).Msg("failed to clear users")
	}

	store := repo.NewReferralStore(dbpool)

	logger.Info().Int("count", len(rootUsernames)).Msg("seeding root users")
	var allIDs []string
	for _, username := range rootUsernames {
		user, err := store.CreateUser(ctx, username, nil)
		if err != nil {
			logger.Fatal().Err(err).Str("username", username).Msg("failed to seed root user")
		}
		allIDs = append(allIDs, user.ID)
	}

	logger.Info().Int("count", len(otherUsernames)).Msg("seeding referred users")
	for _, username := range otherUsernames {
		referrerID := allIDs[rand.Intn(len(allIDs))]
		user, err := store.CreateUser(ctx, username, &referrerID)
		if err != nil {
			logger.Fatal().Err(err).Str("username", username).Msg("failed to seed user")
		}
		allIDs = append(allIDs, user.ID)
	}

	logger.Info().Msg("seeding random donations")
	donations := 0
	for _, id := range allIDs {
		for n := rand.Intn(3) + 1; n > 0; n-- {
			amount := domain.Money{Cents: int64(rand.Intn(501)+10) * 100}
			if _, err := store.CreateDonation(ctx, id, amount); err != nil {
				logger.Fatal().Err(err).Str("user_id", id).Msg("failed to seed donation")
			}
			donations++
		}
	}

	logger.Info().
		Int("users", len(allIDs)).
		Int("donations", donations).
		Msg("seeding complete")
}
