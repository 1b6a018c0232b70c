package main

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"dabois-portal/config"
	"dabois-portal/engine"
	"dabois-portal/geo"
	"dabois-portal/middleware"
	"dabois-portal/models"
	"dabois-portal/pkg/db/sqlite"
	"dabois-portal/store"
	"dabois-portal/util/api"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	log.Info().Str("db", cfg.Database.Path).Msg("initializing")

	db, err := sqlite.ConnectAndMigrate(cfg.Database.Path, cfg.Database.MigrationsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("database setup failed")
	}
	defer db.Close()

	appStore := store.NewSQLiteStore(db)
	eng := engine.New(appStore)
	geocoder := geo.NewGeocoder(cfg.Geocoder.BaseURL)
	api.Init(appStore, eng, geocoder)

	if err := seedAdmin(appStore, cfg); err != nil {
		log.Fatal().Err(err).Msg("seeding admin user failed")
	}

	mux := http.NewServeMux()
	auth := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(h)
	}

	// Auth
	mux.HandleFunc("POST /login", api.LoginHandler)
	mux.HandleFunc("POST /logout", api.LogoutHandler)
	mux.Handle("GET /whoami", auth(api.WhoAmIHandler))

	// Users
	mux.Handle("POST /users", auth(api.CreateUserHandler))
	mux.Handle("GET /users", auth(api.ListUsersHandler))
	mux.Handle("PUT /users/me", auth(api.UpdateProfileHandler))
	mux.Handle("PUT /users/me/password", auth(api.ChangePasswordHandler))

	// Events
	mux.Handle("POST /events", auth(api.CreateEventHandler))
	mux.Handle("GET /events", auth(api.ListEventsHandler))
	mux.Handle("PUT /events/{eventID}", auth(api.UpdateEventHandler))
	mux.Handle("DELETE /events/{eventID}", auth(api.DeleteEventHandler))
	mux.Handle("POST /events/{eventID}/respond", auth(api.RespondToEventHandler))
	mux.Handle("POST /events/{eventID}/suggestions", auth(api.AddEventSuggestionHandler))
	mux.Handle("POST /events/import", auth(api.ImportCalendarHandler))

	// Calendar views
	mux.Handle("GET /calendar", auth(api.MainCalendarHandler))
	mux.Handle("GET /calendar/me", auth(api.MyCalendarHandler))
	mux.Handle("GET /calendar/birthdays", auth(api.BirthdaysHandler))

	// Trips
	mux.Handle("POST /trips", auth(api.CreateTripHandler))
	mux.Handle("GET /trips", auth(api.ListTripsHandler))
	mux.Handle("GET /trips/{tripID}", auth(api.GetTripHandler))
	mux.Handle("PUT /trips/{tripID}", auth(api.UpdateTripHandler))
	mux.Handle("DELETE /trips/{tripID}", auth(api.DeleteTripHandler))
	mux.Handle("PUT /trips/{tripID}/attendees", auth(api.SetTripAttendeesHandler))
	mux.Handle("POST /trips/{tripID}/suggestions", auth(api.AddTripSuggestionHandler))
	mux.Handle("POST /trips/{tripID}/publish", auth(api.PublishTripHandler))

	// Trip itinerary
	mux.Handle("POST /trips/{tripID}/itinerary", auth(api.AddItineraryItemHandler))
	mux.Handle("PUT /trips/{tripID}/itinerary/{activityID}", auth(api.UpdateItineraryItemHandler))
	mux.Handle("DELETE /trips/{tripID}/itinerary/{activityID}", auth(api.DeleteItineraryItemHandler))

	// Trip costs
	mux.Handle("POST /trips/{tripID}/costs", auth(api.AddCostItemHandler))
	mux.Handle("DELETE /trips/{tripID}/costs/{costID}", auth(api.DeleteCostItemHandler))
	mux.Handle("GET /trips/{tripID}/costs/summary", auth(api.CostSummaryHandler))

	// Wise words
	mux.Handle("GET /wisewords", auth(api.ListWiseWordsHandler))
	mux.Handle("POST /wisewords", auth(api.AddWiseWordHandler))
	mux.Handle("POST /wisewords/{wordID}/upvote", auth(api.UpvoteWiseWordHandler))
	mux.Handle("PATCH /wisewords/{wordID}/pin", auth(api.PinWiseWordHandler))
	mux.Handle("DELETE /wisewords/{wordID}", auth(api.DeleteWiseWordHandler))

	// Boards
	mux.Handle("GET /links", auth(api.ListLinksHandler))
	mux.Handle("POST /links", auth(api.AddLinkHandler))
	mux.Handle("DELETE /links/{linkID}", auth(api.DeleteLinkHandler))
	mux.Handle("GET /memories", auth(api.ListMemoriesHandler))
	mux.Handle("POST /memories", auth(api.AddMemoryHandler))
	mux.Handle("DELETE /memories/{memoryID}", auth(api.DeleteMemoryHandler))
	mux.Handle("GET /locations", auth(api.ListLocationsHandler))
	mux.Handle("POST /locations", auth(api.AddLocationHandler))
	mux.Handle("DELETE /locations/{locationID}", auth(api.DeleteLocationHandler))

	// Wiki
	mux.Handle("GET /wiki", auth(api.ListWikiPagesHandler))
	mux.Handle("GET /wiki/{slug}", auth(api.GetWikiPageHandler))
	mux.Handle("PUT /wiki/{slug}", auth(api.PutWikiPageHandler))
	mux.Handle("DELETE /wiki/{slug}", auth(api.DeleteWikiPageHandler))

	// Chat
	mux.Handle("GET /chat/messages", auth(api.ListMessagesHandler))
	mux.Handle("POST /chat/messages", auth(api.PostMessageHandler))
	mux.Handle("/ws", auth(api.ChatSocketHandler))

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true, // Required for cookies!
	})

	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      c.Handler(mux),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	log.Info().Str("addr", srv.Addr).Msg("server running")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// seedAdmin creates the first admin account when the user collection is
// empty, so a fresh install has someone who can add everyone else.
func seedAdmin(s store.Store, cfg *config.Config) error {
	users, err := s.LoadUsers()
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}
	if cfg.Seed.AdminPassword == "" {
		log.Warn().Msg("no users and SEED_ADMIN_PASSWORD unset, skipping admin seed")
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		ID:           "admin-" + cfg.Seed.AdminName,
		Name:         cfg.Seed.AdminName,
		Role:         models.RoleAdmin,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.SaveUsers([]models.User{admin}); err != nil {
		return err
	}
	log.Info().Str("name", admin.Name).Msg("seeded admin user")
	return nil
}
