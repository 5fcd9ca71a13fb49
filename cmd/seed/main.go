package main

import (
	"log"
	"os"

	"cinetrack/internal/database"
	"cinetrack/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds a local SQLite database with demo accounts and libraries.
// All demo users log in with the password "demo123".
func main() {
	dbPath := os.Getenv("DATABASE_URL")
	if dbPath == "" {
		dbPath = "cinetrack.db"
	}

	db, err := database.Connect(dbPath)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	if err := seed(db); err != nil {
		log.Fatal("Seed failed:", err)
	}
	log.Println("Seed complete.")
}

func seed(db *gorm.DB) error {
	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	for _, table := range []string{"suggestions", "friendships", "media", "user_profiles", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}

	log.Println("Creating users...")
	hash, err := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []domain.User{
		{Name: "Ana Silva", Email: "ana@cinetrack.local", PasswordHash: string(hash)},
		{Name: "Beto Costa", Email: "beto@cinetrack.local", PasswordHash: string(hash)},
		{Name: "Carla Mendes", Email: "carla@cinetrack.local", PasswordHash: string(hash)},
	}
	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			return err
		}
		if err := db.Create(&domain.Profile{UserID: users[i].ID}).Error; err != nil {
			return err
		}
		log.Printf("User created: %s / demo123", users[i].Email)
	}
	ana, beto, carla := users[0], users[1], users[2]

	log.Println("Creating libraries...")
	rating5, rating4 := 5, 4
	imdbMatrix, imdbDark := "tt0133093", "tt1839578"
	year99, year17 := "1999", "2017"
	media := []domain.Media{
		{UserID: ana.ID, Title: "The Matrix", Type: domain.TypeMovie,
			Status: domain.StatusWatched, Rating: &rating5, ImdbID: &imdbMatrix, Year: &year99},
		{UserID: ana.ID, Title: "Dark", Type: domain.TypeSeries,
			Status: domain.StatusWatching, ImdbID: &imdbDark, Year: &year17},
		{UserID: beto.ID, Title: "Cidade de Deus", Type: domain.TypeMovie,
			Status: domain.StatusWatched, Rating: &rating4},
		{UserID: carla.ID, Title: "O Poço", Type: domain.TypeMovie,
			Status: domain.StatusWantToWatch},
	}
	for i := range media {
		if err := db.Create(&media[i]).Error; err != nil {
			return err
		}
	}

	log.Println("Creating friendships...")
	lo, hi := domain.CanonicalPair(ana.ID, beto.ID)
	if err := db.Create(&domain.Friendship{UserLoID: lo, UserHiID: hi,
		RequesterID: ana.ID, Status: domain.FriendshipAccepted}).Error; err != nil {
		return err
	}

	// Carla's request to Ana is still pending
	lo, hi = domain.CanonicalPair(carla.ID, ana.ID)
	if err := db.Create(&domain.Friendship{UserLoID: lo, UserHiID: hi,
		RequesterID: carla.ID, Status: domain.FriendshipPending}).Error; err != nil {
		return err
	}

	log.Println("Creating suggestions...")
	msg := "Você precisa ver isso"
	return db.Create(&domain.Suggestion{SenderID: ana.ID, ReceiverID: beto.ID,
		MediaID: media[0].ID, Message: &msg, Status: domain.SuggestionPending}).Error
}
